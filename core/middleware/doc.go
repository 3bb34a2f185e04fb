// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation via the X-API-Key header. Public path prefixes
//     (metrics, swagger) skip the check and an empty key disables it.
//   - rayid: assigns every request a ray id, stores it under the "ray_id" local
//     for logger.WithRayID and echoes it in the X-Ray-ID response header.
//
// RayID is registered first so every log line of a request carries the id.
package middleware
