// Package domain defines the user record model, the error kinds and the
// contracts shared across the app. It contains plain types and interfaces
// only; persistence lives in internal/store and transport in internal/httpapi.
package domain
