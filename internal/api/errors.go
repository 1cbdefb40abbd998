package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Op        string
	Code      int
	Message   string
	ErrorCode string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s returned %d: %s (%s)", e.Op, e.Code, msg, e.ErrorCode)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Op, e.Code, msg)
}

func newStatusError(op string, resp *http.Response) *StatusError {
	serr := &StatusError{Op: op, Code: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return serr
	}
	var body ErrorBody
	if json.Unmarshal(raw, &body) == nil && (body.Error != "" || body.Code != "") {
		serr.Message = body.Error
		serr.ErrorCode = body.Code
		return serr
	}
	serr.Message = string(raw)
	return serr
}
