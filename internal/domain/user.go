package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field names with meaning to the store. Everything else in a User is opaque.
const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldEmail    = "email"
)

// UniqueFields must each be distinct across the collection. Collisions are
// reported in this order.
var UniqueFields = []string{FieldID, FieldUsername, FieldEmail}

// User is one record of the collection: a JSON object whose extra fields are
// stored and returned verbatim. Numbers decode as json.Number so they
// round-trip as written.
type User map[string]any

// Document is the persisted shape {"users": [...]}.
type Document struct {
	Users []User `json:"users"`
}

// Clone returns a shallow copy of u.
func (u User) Clone() User {
	out := make(User, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Merge returns a copy of u with every field of patch layered on top.
func (u User) Merge(patch User) User {
	out := u.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Missing returns the names whose values in u are absent or falsy.
func (u User) Missing(names ...string) []string {
	var out []string
	for _, n := range names {
		if !Truthy(u[n]) {
			out = append(out, n)
		}
	}
	return out
}

// IDString renders the id the way path parameters are compared against it.
func (u User) IDString() string {
	return render(u[FieldID])
}

// Collisions returns the unique fields u shares with other.
func (u User) Collisions(other User) []string {
	var out []string
	for _, f := range UniqueFields {
		v, ok := u[f]
		if !ok || v == nil {
			continue
		}
		if SameValue(v, other[f]) {
			out = append(out, f)
		}
	}
	return out
}

// Truthy reports whether v counts as present: null, false, zero and the
// empty string do not.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return true
}

// SameValue is strict equality over decoded JSON scalars. Objects and arrays
// are never equal to anything.
func SameValue(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	xf, ok := number(a)
	if !ok {
		return false
	}
	yf, ok := number(b)
	return ok && xf == yf
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
