package api

import (
	"fmt"
	"strings"
)

// APIError is a structured error response from the panel.
type APIError struct {
	Status int           `json:"-"`
	Errors []ErrorDetail `json:"errors"`
}

// ErrorDetail is a single error entry from the panel's errors array.
type ErrorDetail struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("panel returned HTTP %d", e.Status)
	}

	details := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		if d.Detail != "" {
			details = append(details, d.Detail)
		} else if d.Code != "" {
			details = append(details, d.Code)
		}
	}

	if len(details) == 0 {
		return fmt.Sprintf("panel returned HTTP %d", e.Status)
	}

	return fmt.Sprintf("panel returned HTTP %d: %s", e.Status, strings.Join(details, "; "))
}
