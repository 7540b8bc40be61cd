package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/usecase"
)

const (
	envelopeVersion = "2.0"
	errorDomain     = "voley-club"
)

// envelope follows the Google JSON style guide: exactly one of data or
// error is set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain       string `json:"domain"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	Location     string `json:"location,omitempty"`
	LocationType string `json:"locationType,omitempty"`
}

type errorClass struct {
	match  []error
	code   int
	reason string
	status string
}

// errorClasses is checked in order; the first match wins.
var errorClasses = []errorClass{
	{match: []error{usecase.ErrInvalidInput}, code: http.StatusBadRequest, reason: "invalidInput", status: "INVALID_ARGUMENT"},
	{match: []error{usecase.ErrNotFound}, code: http.StatusNotFound, reason: "notFound", status: "NOT_FOUND"},
	{match: []error{usecase.ErrConflict}, code: http.StatusConflict, reason: "conflict", status: "ALREADY_EXISTS"},
	{match: []error{usecase.ErrFeatureDisabled}, code: http.StatusForbidden, reason: "featureDisabled", status: "FAILED_PRECONDITION"},
	{match: []error{usecase.ErrUnauthorized}, code: http.StatusUnauthorized, reason: "unauthorized", status: "UNAUTHENTICATED"},
	{match: []error{usecase.ErrDependencyUnavailable, context.DeadlineExceeded}, code: http.StatusServiceUnavailable, reason: "dependencyUnavailable", status: "UNAVAILABLE"},
}

var internalClass = errorClass{code: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func classify(err error) errorClass {
	for _, class := range errorClasses {
		for _, target := range class.match {
			if errors.Is(err, target) {
				return class
			}
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: envelopeVersion, Data: data})
}

func writeError(_ context.Context, w http.ResponseWriter, err error) {
	class := classify(err)

	message := err.Error()
	if class.code >= http.StatusInternalServerError {
		// Store errors may carry SQL text; keep them in the logs only.
		message = http.StatusText(class.code)
	}

	item := errorItem{Domain: errorDomain, Reason: class.reason, Message: message}
	if fe, ok := usecase.FieldErrorOf(err); ok && fe.Field != "" {
		item.Message = fe.Reason
		item.Location = fe.Field
		item.LocationType = "field"
	}

	writeJSON(w, class.code, envelope{
		APIVersion: envelopeVersion,
		Error: &errorBody{
			Code:    class.code,
			Message: message,
			Status:  class.status,
			Errors:  []errorItem{item},
		},
	})
}
