/*
Package req provides helper functions for HTTP request parsing and data binding.

It decodes JSON request bodies under a size limit and reports failures as
errs.CustomError values so handlers can respond uniformly.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"useracct/internal/pkg/errs"
)

// MaxRequestBodySize defines the maximum allowed size (1 MB) of a JSON request body.
const MaxRequestBodySize int64 = 1 << 20

// BindJSON decodes the JSON request body into dst. Unknown fields are ignored.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
