// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package httpclient sends JSON and multipart requests to a REST API
// and decodes the responses into typed values.
//
//nolint:ireturn,wrapcheck
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func Get[R any](ctx context.Context, path string, opts ...Option) (R, error) {
	return do[R](ctx, http.MethodGet, path, nil, opts)
}

func Post[R any](ctx context.Context, path string, request any, opts ...Option) (R, error) {
	return do[R](ctx, http.MethodPost, path, request, opts)
}

func do[R any](ctx context.Context, method, path string, request any, opts []Option) (R, error) {
	var response R
	options := apply(opts)
	endpoint, err := url.JoinPath(options.baseURL, path)
	if err != nil {
		return response, err
	}
	if len(options.query) > 0 {
		endpoint += "?" + options.query.Encode()
	}

	body, contentType, err := marshalRequest(request)
	if err != nil {
		return response, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return response, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range options.headers {
		req.Header.Set(k, v)
	}
	// JSON bodies always declare their own type; raw bodies rely on the caller's header.
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := options.client.Do(req)
	if err != nil {
		return response, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err = checkStatus(resp); err != nil {
		return response, err
	}
	if err = unmarshalResponse(resp, &response); err != nil {
		return response, err
	}

	return response, nil
}

// marshalRequest returns the body of the request and its content type.
// Readers, strings and bytes are sent as is, other values are encoded as JSON.
func marshalRequest(request any) (io.Reader, string, error) {
	switch value := request.(type) {
	case nil:
		return http.NoBody, "", nil
	case io.Reader:
		return value, "", nil
	case string:
		return strings.NewReader(value), "", nil
	case []byte:
		return bytes.NewReader(value), "", nil
	default:
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(value); err != nil {
			return nil, "", err
		}

		return buf, "application/json", nil
	}
}

func unmarshalResponse(resp *http.Response, response any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch value := response.(type) {
	case *[]byte:
		*value = body
	case *string:
		*value = string(body)
	case *struct{}:
	default:
		if err := json.Unmarshal(body, value); err != nil {
			return err
		}
	}

	return nil
}

// StatusError is returned when the server responds with a non-2xx/3xx status code.
type StatusError struct {
	Code    int
	Message string
}

func (s *StatusError) Error() string {
	message := s.Message
	if message == "" {
		message = http.StatusText(s.Code)
	}

	return fmt.Sprintf("[%d] %s", s.Code, message)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)

	return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}
