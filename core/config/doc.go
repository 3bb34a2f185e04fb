// Package config provides configuration management for the OPNsense manager.
//
// It uses Viper to read environment variables, optionally preloaded from a
// .env file. Every key is registered with its default from the struct tags,
// so AutomaticEnv resolves nested keys: API_URL maps to api.url and
// RECONCILE_CACHE_TTL_SECONDS maps to reconcile.cache_ttl_seconds.
//
// # Configuration Structure
//
//   - API: appliance URL, key, secret, TLS verification, timeout and rate limit
//   - Reconcile: search cache TTL
//   - Server: HTTP listen address and API key
//   - Database: change history ledger (sqlite or mysql)
//   - Storage: S3/MinIO report archive
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.URL)
package config
