// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package openai implements ontogen.Backend over the [OpenAI Assistants API] v2.
//
// [OpenAI Assistants API]: https://platform.openai.com/docs/api-reference/assistants
package openai

import (
	"os"

	"github.com/ktong/ontogen"
	"github.com/ktong/ontogen/internal/httpclient"
)

const DefaultBaseURL = "https://api.openai.com/v1"

var _ ontogen.Backend = Client{}

// Client provides access to the files, vector stores, threads and runs of the API.
// It is safe for concurrent use.
//
// To create a new Client, call [NewClient].
type Client struct {
	options []httpclient.Option
}

// NewClient creates a new Client with the given Option(s).
//
// By default, the API key is read from environment variable OPENAI_API_KEY.
func NewClient(opts ...Option) Client {
	return Client{options: append([]httpclient.Option{
		httpclient.WithBaseURL(DefaultBaseURL),
		httpclient.WithHeader("Authorization", "Bearer "+os.Getenv("OPENAI_API_KEY")),
		httpclient.WithHeader("OpenAI-Beta", "assistants=v2"),
	}, opts...)}
}

// Option configures a Client.
type Option = httpclient.Option

//nolint:gochecknoglobals
var (
	WithHTTPClient = httpclient.WithHTTPClient
	WithBaseURL    = httpclient.WithBaseURL
	WithHeader     = httpclient.WithHeader
)

// WithAPIKey provides the [OpenAI API key].
//
// [OpenAI API key]: https://platform.openai.com/account/api-keys
func WithAPIKey(apiKey string) Option {
	return httpclient.WithHeader("Authorization", "Bearer "+apiKey)
}

func (c Client) with(opts ...httpclient.Option) []httpclient.Option {
	return append(append(make([]httpclient.Option, 0, len(c.options)+len(opts)), c.options...), opts...)
}
