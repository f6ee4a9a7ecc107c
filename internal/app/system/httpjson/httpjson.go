// Package httpjson writes the API's canonical JSON shapes.
//
// Every handler converts errors at its own boundary into a
// {"message": "..."} body with the appropriate 4xx/5xx status. Successful
// responses are the bare entity or array with no wrapper object.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Message string `json:"message"`
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"message": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, errorBody{Message: msg})
}

// Decode reads the request body as JSON into dst. Unknown fields are
// ignored so clients can send extra display-only fields freely.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
