package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
)

// downstreamError is the error envelope returned by services sharing
// the httputil response format.
type downstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes the body of a non-2xx response
// and translates it into an error. Structured envelopes keep their code.
func ParseResponseError(resp *http.Response, service string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", service, resp.StatusCode, err)
	}

	var env downstreamError
	if json.Unmarshal(body, &env) == nil && env.Error != nil {
		return mapDownstreamError(resp.StatusCode, env.Error.Code, env.Error.Message, service)
	}
	return mapDownstreamError(resp.StatusCode, "", string(body), service)
}

func mapDownstreamError(status int, code, message, service string) error {
	msg := fmt.Sprintf("%s: %s", service, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(service+" resource", message)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(msg)
	case status == http.StatusServiceUnavailable, status == http.StatusTooManyRequests:
		if code == "" {
			code = "UPSTREAM_UNAVAILABLE"
		}
		return &apperrors.AppError{
			Code:    code,
			Message: msg,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	case status >= 500:
		return fmt.Errorf("%s server error (%d %s): %s", service, status, code, message)
	default:
		return fmt.Errorf("%s returned status %d: %s", service, status, message)
	}
}
