// Package server holds the HTTP server configuration.
//
// The application entry point starts the Fiber app; this package only defines
// the listen address and the API key protecting the routes.
//
// # Usage
//
// This package is embedded by core/config and read by the start command:
//
//	app.Listen(cfg.Server.Address())
package server
