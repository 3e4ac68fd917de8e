package postgrest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a non-2xx response from the PostgREST endpoint.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "postgrest: status %d", e.Status)
	if e.Code != "" {
		b.WriteString(" [" + e.Code + "]")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// Temporary reports whether the failure is on the server side.
func (e *Error) Temporary() bool { return e.Status >= 500 }

func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if err := json.Unmarshal(body, e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	e.Status = status
	return e
}
