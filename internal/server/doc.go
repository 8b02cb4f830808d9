// Package server provides HTTP routing, middleware & handlers for the catalog proxy.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order so the first one added runs first, following the standard Go
// pattern. Middleware is applied when a route is registered, so [BasicRouter.Use] must come before any
// registration.
//
// The [BasicRouter] implementation uses [http.ServeMux] method and wildcard patterns. Requests that match no
// pattern get the JSON error body with status 404, or 405 when the path exists for GET only.
//
// # Catalog Handler
//
// [SirenHandler] implements [Handler] for the eleven catalog routes. Each route calls the catalog once and
// writes the upstream envelope back unchanged with status 200, whatever its code. Search routes reject a
// missing or blank keyword with 400 before any upstream call.
//
// # Errors
//
// [StatusFor] maps errors to statuses:
//
//   - upstream timeout: 408
//   - upstream unreachable, non-2xx or undecodable: 502
//   - bad request: 400
//   - not found: 404
//   - anything else: 500
//
// Failed requests are answered with {"error": message, "code": status}.
//
// # Documentation & Metrics
//
// A [DocsProvider] chosen at startup registers documentation routes. [OpenAPIDocs] serves
// /api-docs/openapi.json and a Swagger UI under /swagger-ui/; [NoDocs] registers nothing.
//
// [Metrics] keeps Prometheus collectors on a private registry, served at /metrics when enabled.
package server
