package etcd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrMemberNotFound is returned when resolving a member by name or peer
// URL matches nothing in the current member list. No delete request is
// issued in that case.
var ErrMemberNotFound = errors.New("member not found")

// StatusError reports a non-2xx response. Status is the response status
// line; Message carries the server's JSON "message" field when the body
// had one.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("etcd: %s", e.Status)
	}
	return fmt.Sprintf("etcd: %s: %s", e.Status, e.Message)
}

func newStatusError(code int, status string, body []byte) *StatusError {
	se := &StatusError{Code: code, Status: status}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		se.Message = envelope.Message
	}
	return se
}

// IsNotFound reports whether err is a StatusError for a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
