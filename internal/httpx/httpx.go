package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

// ParsePageLimit reads page/limit query parameters, tolerating absent or
// malformed values by falling back to defaults, and clamps limit to
// [1, maxLimit] and page to at least 1.
func ParsePageLimit(values url.Values, defaultLimit, maxLimit int64) (int64, int64) {
	page := int64(1)
	limit := defaultLimit

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// ParseForm handles both multipart/form-data and urlencoded bodies so
// image-bearing endpoints accept either encoding.
func ParseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

func FormFile(r *http.Request, field string) *multipart.FileHeader {
	files := FormFiles(r, field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func FormFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// FormPtr reports a form field's value only when the field was present
// in the submission, so partial updates can distinguish "absent" from
// "set to empty".
func FormPtr(r *http.Request, field string) *string {
	if values, ok := r.Form[field]; ok && len(values) > 0 {
		v := values[0]
		return &v
	}
	return nil
}
