package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-market/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-market"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass ties a usecase sentinel to its HTTP rendering.
type errorClass struct {
	target     error
	httpStatus int
	reason     string
	status     string
}

var internalClass = errorClass{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

// errorClasses is matched in order; the first errors.Is hit wins.
var errorClasses = []errorClass{
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrConflict, http.StatusConflict, "conflict", "ALREADY_EXISTS"},
	{usecase.ErrInvalidState, http.StatusForbidden, "invalidState", "FAILED_PRECONDITION"},
	{usecase.ErrConstraintViolation, http.StatusUnprocessableEntity, "constraintViolation", "FAILED_PRECONDITION"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
}

func classify(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.target) {
			return class
		}
	}
	return internalClass
}

const fallbackBody = `{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`

func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallbackBody))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError renders err in the error envelope. The top-level message is the
// first user-facing hint when the error carries one. Unclassified errors
// never leak their text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	if class.httpStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	body := &googleErrorBody{
		Code:    class.httpStatus,
		Message: err.Error(),
		Status:  class.status,
		Errors:  []googleErrorItem{{Domain: errorDomain, Reason: class.reason, Message: err.Error()}},
	}
	for i, hint := range errorHints(err) {
		if i == 0 {
			body.Message = hint
		}
		body.Errors = append(body.Errors, googleErrorItem{Domain: errorDomain, Reason: "hint", Message: hint})
	}
	writeJSON(w, class.httpStatus, googleResponseEnvelope{APIVersion: googleAPIVersion, Error: body})
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  internalClass.status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: internalClass.reason, Message: msg}},
		},
	})
}

// errorHints collects user-facing hints from every branch of a joined error.
func errorHints(err error) []string {
	seen := make(map[string]struct{})
	var out []string

	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		for _, hint := range crerr.GetAllHints(err) {
			if _, ok := seen[hint]; ok {
				continue
			}
			seen[hint] = struct{}{}
			out = append(out, hint)
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		walk(errors.Unwrap(err))
	}
	walk(err)

	return out
}
