// Package client provides an HTTP implementation of domain.UserClient for
// talking to a running userstore service.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx responses come back as *APIError, which matches the
// domain error kinds (ErrNotFound, ErrDuplicate, ErrValidation) under
// errors.Is.
package client
