package errx

import (
	"fmt"
	"net/http"
)

// WrapBackend maps a conversation backend failure to AppError, keeping the
// provider name in the message for log correlation.
func WrapBackend(provider string, err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, fmt.Sprintf("%s: %s", BackendErrorMessage, provider))
}
