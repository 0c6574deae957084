package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"userstore/internal/domain"
)

// maxBodyBytes matches the 100kb default of the original JSON parser.
const maxBodyBytes = 100 << 10

// decodeUser reads a JSON object or an urlencoded form into a User. An
// empty body decodes to an empty User so that required-field checks report
// it, not the decoder.
func decodeUser(w http.ResponseWriter, r *http.Request) (domain.User, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/x-www-form-urlencoded" {
		return decodeForm(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	u := domain.User{}
	if len(bytes.TrimSpace(body)) == 0 {
		return u, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&u); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("extra data")
	}
	if u == nil {
		return nil, errors.New("body is null")
	}
	return u, nil
}

func decodeForm(r *http.Request) (domain.User, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	u := make(domain.User, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) == 1 {
			u[k] = vs[0]
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		u[k] = list
	}
	return u, nil
}
