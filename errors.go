// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"errors"
	"fmt"
)

var (
	// ErrPollTimeout is returned when a run is still not terminal after the poll limits.
	ErrPollTimeout = errors.New("run did not finish in time")
	// ErrNoReply is returned when the thread has no message with text content.
	ErrNoReply = errors.New("no reply in thread")
	// ErrNoFiles is returned when a generation is requested without any upload.
	ErrNoFiles = errors.New("no files to upload")
	// ErrNoUploads is returned when every upload of a generation failed.
	ErrNoUploads = errors.New("all file uploads failed")
	// ErrBusy is returned when the session already has a generation in flight.
	ErrBusy = errors.New("generation already in progress")
	// ErrNoArtifact is returned when editing a session that has nothing generated yet.
	ErrNoArtifact = errors.New("no artifact generated")
)

type (
	// UploadError reports a failed upload or vector store registration of one file.
	UploadError struct {
		Name string
		Err  error
	}

	// OrchestrationError reports a failure while creating the thread, message or run.
	OrchestrationError struct {
		Step string
		Err  error
	}

	// RunError reports a run that ended without completing,
	// or whose status could not be retrieved.
	RunError struct {
		RunID  string
		Status RunStatus
		// Reason is the last error reported by the server, if any.
		Reason string
		Err    error
	}

	// FetchError reports a failure while listing the thread messages.
	FetchError struct {
		ThreadID string
		Err      error
	}
)

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *OrchestrationError) Unwrap() error { return e.Err }

func (e *RunError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("retrieve run %s: %v", e.RunID, e.Err)
	case e.Status == RunRequiresAction:
		return fmt.Sprintf("run %s requires an action that is not supported", e.RunID)
	case e.Reason != "":
		return fmt.Sprintf("run %s %s: %s", e.RunID, e.Status, e.Reason)
	default:
		return fmt.Sprintf("run %s %s", e.RunID, e.Status)
	}
}

func (e *RunError) Unwrap() error { return e.Err }

func (e *FetchError) Error() string {
	return fmt.Sprintf("list messages of thread %s: %v", e.ThreadID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
