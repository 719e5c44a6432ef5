package utils

import "net/http"

// FormField returns a multipart form field and whether it was supplied at
// all, so handlers can tell "absent" from "empty".
func FormField(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
