// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"context"
	"io"
)

// Backend is the subset of the assistant API used to generate an ontology.
// The openai package provides the implementation over the REST API.
//
// Backend implementations must be safe for concurrent use, since uploads of a batch
// may be issued from multiple goroutines.
type Backend interface {
	// UploadFile stores the content for assistant use and returns the file ID.
	UploadFile(ctx context.Context, name string, content io.Reader) (string, error)
	// AddVectorStoreFile registers an uploaded file with the vector store.
	AddVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) error

	CreateThread(ctx context.Context) (string, error)
	CreateMessage(ctx context.Context, threadID string, message Message) error
	// ListMessages returns at most limit messages of the thread, newest first.
	ListMessages(ctx context.Context, threadID string, limit int) ([]Message, error)

	CreateRun(ctx context.Context, threadID string, request RunRequest) (string, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (Run, error)
}
