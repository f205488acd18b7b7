// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

// RunStatus is the lifecycle status of a run.
//
// See https://platform.openai.com/docs/api-reference/runs/object
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunCancelling     RunStatus = "cancelling"
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
	RunRequiresAction RunStatus = "requires_action"
	RunCancelled      RunStatus = "cancelled"
	RunExpired        RunStatus = "expired"
	RunIncomplete     RunStatus = "incomplete"
)

// Terminal reports whether no further transition is expected for the status.
// Unknown values are treated as non-terminal.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunRequiresAction, RunCancelled, RunExpired, RunIncomplete:
		return true
	case RunQueued, RunInProgress, RunCancelling:
		return false
	default:
		return false
	}
}

type (
	// Run is an execution of the assistant on a thread.
	Run struct {
		ID        string
		ThreadID  string
		Status    RunStatus
		LastError string
	}

	// RunRequest starts a run. AdditionalInstructions are appended to the
	// instructions configured on the assistant for this run only.
	RunRequest struct {
		AssistantID            string
		AdditionalInstructions string
	}
)
