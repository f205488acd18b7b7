// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package openai

import (
	"context"
	"fmt"

	"github.com/ktong/ontogen"
	"github.com/ktong/ontogen/internal/httpclient"
)

func (c Client) CreateRun(ctx context.Context, threadID string, request ontogen.RunRequest) (string, error) {
	subject := struct {
		AssistantID            string `json:"assistant_id"`
		AdditionalInstructions string `json:"additional_instructions,omitempty"`
	}{
		AssistantID:            request.AssistantID,
		AdditionalInstructions: request.AdditionalInstructions,
	}
	resp, err := httpclient.Post[id](ctx, "/threads/"+threadID+"/runs", subject, c.options...)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	return resp.ID, nil
}

func (c Client) RetrieveRun(ctx context.Context, threadID, runID string) (ontogen.Run, error) {
	resp, err := httpclient.Get[run](ctx, "/threads/"+threadID+"/runs/"+runID, c.options...)
	if err != nil {
		return ontogen.Run{}, fmt.Errorf("retrieve run: %w", err)
	}

	return fromRun(resp), nil
}
