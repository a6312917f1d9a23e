package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/israelis-abroad/footballmap/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	msgFeatureDisabled = "RapidAPI usage is disabled."
	msgUpstreamFailed  = "Unable to fetch data"
	msgInternal        = "internal server error"
)

type errorBody struct {
	Error string `json:"error"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500 instead of a half-written body.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		_ = sonic.ConfigDefault.NewEncoder(buf).Encode(errorBody{Error: msgInternal})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeErrorMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	ctx, span := startSpan(ctx, "httpapi.writeErrorMessage")
	defer span.End()

	writeJSON(ctx, w, status, errorBody{Error: message})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeErrorMessage(ctx, w, mapped.HTTPStatus, mapped.Message)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorMessage(ctx, w, http.StatusInternalServerError, msgInternal)
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	if status, ok := usecase.UpstreamStatus(err); ok {
		return mappedError{HTTPStatus: status, Message: msgUpstreamFailed}
	}

	switch {
	case errors.Is(err, usecase.ErrFeatureDisabled):
		return mappedError{HTTPStatus: http.StatusForbidden, Message: msgFeatureDisabled}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, usecase.ErrWomenTeamOnly):
		return mappedError{HTTPStatus: http.StatusNotFound, Message: "Only women's team found"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Message: "resource not found"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Message: msgUpstreamFailed}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: msgInternal}
	}
}
