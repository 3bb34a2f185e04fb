// Package opnsense implements the session used to talk to the appliance's REST API.
//
// Every API endpoint is addressed by a module/controller/command triple, for example
// firewall/filter/addRule, optionally followed by path parameters such as an object uuid:
//
//	https://<host>/api/<module>/<controller>/<command>[/<param>...]
//
// Requests authenticate with HTTP basic auth using the API key and secret. Reads use GET,
// mutations (add, set, delete and service reloads) use POST with a JSON body.
//
// # Errors
//
// A non-2xx status or a JSON body reporting "result": "failed" is returned as an *APIError
// carrying the call path and any field validations reported by the appliance. Callers
// propagate these unchanged; the session never retries.
//
// # Usage
//
//	client, err := opnsense.NewClient(cfg.API, logger, nil)
//	resp, err := client.Get(ctx, opnsense.Call{Module: "firewall", Controller: "filter", Command: "get"})
package opnsense
