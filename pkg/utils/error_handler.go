package utils

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrorHandler logs err with any context fields and returns it wrapped with
// message. A nil err stays nil.
func ErrorHandler(err error, message string, fields ...logrus.Fields) error {
	if err == nil {
		return nil
	}

	entry := Logger.WithError(err)
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Error(message)

	return fmt.Errorf("%s: %w", message, err)
}
