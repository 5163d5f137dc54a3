package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/ustwan/tzr-host-api-sub001/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	// The response body may be incomplete, but headers are already sent.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and error responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		WriteJSON(w, status, response)
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeNotInGroup, dErrors.CodeLimitExceeded:
		return http.StatusForbidden
	case dErrors.CodeLoginTaken:
		return http.StatusConflict
	case dErrors.CodeStorageUnavailable, dErrors.CodeInternal:
		return http.StatusInternalServerError
	case dErrors.CodeGameServerTimeout, dErrors.CodeGameServerUnreachable,
		dErrors.CodeGameServerNoResponse, dErrors.CodeGameServerError:
		return http.StatusBadGateway
	case dErrors.CodeUnavailable, dErrors.CodeQueueUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
