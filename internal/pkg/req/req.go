/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates strict JSON decoding with a body size ceiling large enough for inline
image payloads, and translates decoding failures into application errors.
*/
package req

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"duochat/internal/pkg/errs"
)

// MaxJSONBodySize defines the maximum allowed size (20 MB) for a JSON request body.
// Inline images up to the 9.5 MB decoded ceiling need roughly 12.7 MB of base64 text.
const MaxJSONBodySize int64 = 20 << 20

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
