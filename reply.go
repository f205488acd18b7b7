// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import "context"

// Fetcher reads the reply of the assistant from a thread.
type Fetcher struct {
	backend Backend
}

func NewFetcher(backend Backend) Fetcher {
	return Fetcher{backend: backend}
}

// LatestReply returns the text of the first content element of the most recent message.
// It returns ErrNoReply if the thread has no message or the message does not start with text.
func (f Fetcher) LatestReply(ctx context.Context, threadID string) (string, error) {
	messages, err := f.backend.ListMessages(ctx, threadID, 1)
	if err != nil {
		return "", &FetchError{ThreadID: threadID, Err: err}
	}
	if len(messages) == 0 {
		return "", ErrNoReply
	}

	text, ok := messages[0].FirstText()
	if !ok {
		return "", ErrNoReply
	}

	return text, nil
}
