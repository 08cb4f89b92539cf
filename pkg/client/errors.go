package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend. The backend reports
// failures as {"detail": "..."}; when present the detail is surfaced to
// the user verbatim.
type APIError struct {
	StatusCode int
	Detail     string
	Body       string
}

// Error returns the backend's detail message when available
func (x *APIError) Error() string {
	if x.Detail != "" {
		return x.Detail
	}
	if x.Body != "" {
		return fmt.Sprintf("request failed with status %d: %s", x.StatusCode, x.Body)
	}
	return fmt.Sprintf("request failed with status %d", x.StatusCode)
}

// AsAPIError extracts an APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type errorDetail struct {
	Detail string `json:"detail"`
}

// checkStatus converts a non-2xx response into an APIError
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		apiErr.Body = strings.TrimSpace(string(body))
		var detail errorDetail
		if json.Unmarshal(body, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
	}
	return apiErr
}
