// Package loader provides the feature loading system for the HTTP server.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager registers features with Register() and mounts every enabled one
// with LoadAll(). Disabled features are skipped and logged.
package loader
