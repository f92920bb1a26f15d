package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"snapshop/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps the size of JSON request bodies.
const maxBodyBytes = 1 << 20

// Func is an HTTP handler that reports failures by returning them.
type Func func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts fn to an http.HandlerFunc. Returned errors are translated into
// JSON error responses.
func Wrap(fn Func, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, r, err, logger)
		}
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing more can be reported.
		return
	}
}

// writeError maps err onto a status code and error body.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var (
		validationErr *model.ValidationError
		badRequestErr *model.BadRequestError
		domainErr     *model.DomainError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeValidationFailed,
			Message: validationErr.Error(),
		})
	case errors.As(err, &badRequestErr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeBadRequest,
			Message: badRequestErr.Message,
		})
	case errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeNotFound:
		notFound(w, err.Error())
	default:
		logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
	}
}

// notFound writes the shared 404 response.
func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, model.ErrorResponse{
		Error:   model.ErrCodeNotFound,
		Message: message,
	})
}

// decodeJSON reads a JSON request body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return &model.BadRequestError{Message: "request body is required"}
		case errors.As(err, &maxErr):
			return &model.BadRequestError{Message: "request body too large"}
		default:
			return &model.BadRequestError{Message: "invalid JSON body: " + err.Error()}
		}
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.BadRequestError{Message: "invalid " + name + " parameter"}
	}
	return n, nil
}

// queryString returns a pointer to an optional query parameter, or nil when
// it is absent.
func queryString(r *http.Request, name string) *string {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

// page parses the offset and limit query parameters.
func page(r *http.Request) (offset, limit int, err error) {
	if offset, err = queryInt(r, "offset"); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	return offset, limit, nil
}

// RouteNotFound responds to requests that match no route.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	notFound(w, "route not found")
}

// MethodNotAllowed responds to requests whose method the route does not
// support.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{
		Error:   model.ErrCodeBadRequest,
		Message: "method not allowed",
	})
}
