package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/mmynk/mealplanner/internal/service"
)

const maxBodyBytes = 1 << 20

// payload is a decoded request body: absent keys are missing fields.
type payload map[string]service.Field

// field returns the raw value of name.
func (p payload) field(name string) service.Field {
	return p[name]
}

// str returns the value of a plain string field, or "" if absent or null.
func (p payload) str(name string) string {
	return p[name].Value
}

// readPayload decodes a JSON, urlencoded or multipart request body.
func readPayload(w http.ResponseWriter, r *http.Request) (payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	contentType := r.Header.Get("Content-Type")
	mediaType := "application/json"
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, &requestError{http.StatusUnsupportedMediaType, fmt.Sprintf("Unsupported media type %q in request.", contentType)}
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		return readJSON(r.Body)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, &requestError{http.StatusBadRequest, "Malformed form data."}
		}
		return fromValues(r.PostForm), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, &requestError{http.StatusBadRequest, "Multipart form parse error."}
		}
		return fromValues(r.MultipartForm.Value), nil
	default:
		return nil, &requestError{http.StatusUnsupportedMediaType, fmt.Sprintf("Unsupported media type %q in request.", contentType)}
	}
}

func readJSON(body io.Reader) (payload, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(body)
	err := dec.Decode(&raw)
	if errors.Is(err, io.EOF) {
		return payload{}, nil
	}
	if err != nil {
		return nil, &requestError{http.StatusBadRequest, "JSON parse error - " + err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &requestError{http.StatusBadRequest, "JSON parse error - extra data after JSON object"}
	}

	p := make(payload, len(raw))
	for key, value := range raw {
		if string(value) == "null" {
			p[key] = service.Field{Set: true, Null: true}
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			// Non-string values are kept verbatim and fail field parsing downstream.
			s = string(value)
		}
		p[key] = service.FieldValue(s)
	}
	return p, nil
}

func fromValues(values url.Values) payload {
	p := make(payload, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			p[key] = service.FieldValue(vs[0])
		}
	}
	return p
}
