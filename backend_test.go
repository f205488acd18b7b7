// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen_test

import (
	"context"
	"io"
	"sync"

	"github.com/ktong/ontogen"
)

// fakeBackend records the calls of the flow and replays the configured responses.
type fakeBackend struct {
	mu sync.Mutex

	uploadErrs  map[string]error // by file name
	vectorErrs  map[string]error // by file ID
	threadErr   error
	messageErr  error
	runErr      error
	retrieveErr error
	listErr     error
	statuses    []ontogen.RunStatus
	lastError   string
	messages    []ontogen.Message

	uploads      map[string]string // file ID to content
	vectorStores map[string][]string
	posted       []ontogen.Message
	runs         []ontogen.RunRequest
	polls        int
	listLimit    int
}

var _ ontogen.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) UploadFile(_ context.Context, name string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.uploadErrs[name]; err != nil {
		return "", err
	}
	body, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	id := "file-" + name
	f.uploads[id] = string(body)

	return id, nil
}

func (f *fakeBackend) AddVectorStoreFile(_ context.Context, vectorStoreID, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.vectorErrs[fileID]; err != nil {
		return err
	}
	if f.vectorStores == nil {
		f.vectorStores = map[string][]string{}
	}
	f.vectorStores[vectorStoreID] = append(f.vectorStores[vectorStoreID], fileID)

	return nil
}

func (f *fakeBackend) CreateThread(context.Context) (string, error) {
	if f.threadErr != nil {
		return "", f.threadErr
	}

	return "thread-1", nil
}

func (f *fakeBackend) CreateMessage(_ context.Context, _ string, message ontogen.Message) error {
	if f.messageErr != nil {
		return f.messageErr
	}
	f.posted = append(f.posted, message)

	return nil
}

func (f *fakeBackend) ListMessages(_ context.Context, _ string, limit int) ([]ontogen.Message, error) {
	f.listLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.messages, nil
}

func (f *fakeBackend) CreateRun(_ context.Context, _ string, request ontogen.RunRequest) (string, error) {
	if f.runErr != nil {
		return "", f.runErr
	}
	f.runs = append(f.runs, request)

	return "run-1", nil
}

func (f *fakeBackend) RetrieveRun(_ context.Context, threadID, runID string) (ontogen.Run, error) {
	f.polls++
	if f.retrieveErr != nil {
		return ontogen.Run{}, f.retrieveErr
	}
	status := ontogen.RunInProgress
	if len(f.statuses) > 0 {
		status = f.statuses[min(f.polls, len(f.statuses))-1]
	}

	return ontogen.Run{ID: runID, ThreadID: threadID, Status: status, LastError: f.lastError}, nil
}

func replyOf(text string) []ontogen.Message {
	return []ontogen.Message{{ID: "msg-2", Role: ontogen.RoleAssistant, Content: []ontogen.Content{ontogen.Text{Text: text}}}}
}
