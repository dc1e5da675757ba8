package utils

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Status  string    `json:"status"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Message string    `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONStatus(w, statusCode, errorResponse{
		Status:  "error",
		Message: message,
	})
}

// WriteAppError logs err with its internal cause and writes only the kind and
// the caller-facing message. Errors that are not AppErrors become a generic
// storage failure.
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindStorage, Message: "internal server error", Err: err}
	}

	entry := Logger.WithFields(logrus.Fields{"kind": appErr.Kind})
	if appErr.Err != nil {
		entry = entry.WithError(appErr.Err)
	}
	if appErr.Kind == KindValidation || appErr.Kind == KindUnauthorized {
		entry.Warn(appErr.Message)
	} else {
		entry.Error(appErr.Message)
	}

	WriteJSONStatus(w, statusForKind(appErr.Kind), errorResponse{
		Status:  "error",
		Kind:    appErr.Kind,
		Message: appErr.Message,
	})
}
