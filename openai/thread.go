// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package openai

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ktong/ontogen"
	"github.com/ktong/ontogen/internal/httpclient"
)

func (c Client) CreateThread(ctx context.Context) (string, error) {
	resp, err := httpclient.Post[id](ctx, "/threads", struct{}{}, c.options...)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	return resp.ID, nil
}

func (c Client) CreateMessage(ctx context.Context, threadID string, msg ontogen.Message) error {
	if _, err := httpclient.Post[struct{}](ctx, "/threads/"+threadID+"/messages", toMessageRequest(msg), c.options...); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (c Client) ListMessages(ctx context.Context, threadID string, limit int) ([]ontogen.Message, error) {
	type messages struct {
		Data []message `json:"data"`
	}
	opts := []httpclient.Option{httpclient.WithQuery("order", "desc")}
	if limit > 0 {
		opts = append(opts, httpclient.WithQuery("limit", strconv.Itoa(limit)))
	}
	resp, err := httpclient.Get[messages](ctx, "/threads/"+threadID+"/messages", c.with(opts...)...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	result := make([]ontogen.Message, 0, len(resp.Data))
	for _, m := range resp.Data {
		result = append(result, fromMessage(m))
	}

	return result, nil
}
