package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
)

// Error kinds surfaced by every operation. The layer performs no local
// recovery; remote failures are classified and wrapped so callers can branch
// with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("not authorized")
	ErrTransport    = errors.New("transport failure")
)

// classify maps a remote call failure onto one of the error kinds. Anything
// that never reached a service-reported status is a transport failure.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
	}

	kind := ErrTransport
	switch errResp.Response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrUnauthorized
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusConflict, http.StatusMethodNotAllowed:
		// 405 is how merges report conflicts and already-merged PRs.
		kind = ErrConflict
	case http.StatusUnprocessableEntity:
		if isAlreadyExists(errResp) {
			kind = ErrConflict
		} else {
			kind = ErrValidation
		}
	}

	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// isAlreadyExists reports whether a 422 response describes a duplicate
// resource rather than malformed input.
func isAlreadyExists(errResp *github.ErrorResponse) bool {
	if strings.Contains(strings.ToLower(errResp.Message), "already exists") {
		return true
	}
	for _, e := range errResp.Errors {
		if e.Code == "already_exists" {
			return true
		}
	}
	return false
}
