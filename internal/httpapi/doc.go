// Package httpapi implements the HTTP surface over a domain.UserStore.
//
// Routes
//
//	GET    /            plain-text liveness banner
//	GET    /healthz     {"ok":"true"}
//	GET    /users       the stored document, as read; ETag / If-None-Match aware
//	POST   /users       create; requires id, username and email
//	PUT    /users/{id}  shallow-merge update; required fields are configurable
//	DELETE /users/{id}  remove
//
// Behaviour
//
//   - Bodies are JSON or urlencoded forms, capped at 100 KiB; larger bodies
//     get 413.
//   - Validation and uniqueness failures are 400, unknown ids 404, storage
//     failures 500 with a generic message; the cause is only logged.
//   - Every response carries CORS headers and an X-Request-Id; one access
//     log line is written per request.
package httpapi
