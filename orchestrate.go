// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import "context"

// Orchestrator starts a generation job on a fresh thread.
type Orchestrator struct {
	backend     Backend
	assistantID string
}

func NewOrchestrator(backend Backend, assistantID string) Orchestrator {
	return Orchestrator{backend: backend, assistantID: assistantID}
}

// Start creates a thread, posts the prompt with the files attached for file search,
// and starts a run of the assistant with the ontology Instructions.
//
// Any failure aborts the whole job with an *OrchestrationError.
// A thread created before the failure is left on the server.
func (o Orchestrator) Start(ctx context.Context, fileIDs []string, prompt string) (string, string, error) {
	threadID, err := o.backend.CreateThread(ctx)
	if err != nil {
		return "", "", &OrchestrationError{Step: "create thread", Err: err}
	}

	if err := o.backend.CreateMessage(ctx, threadID, ComposeMessage(fileIDs, prompt)); err != nil {
		return "", "", &OrchestrationError{Step: "create message", Err: err}
	}

	runID, err := o.backend.CreateRun(ctx, threadID, RunRequest{
		AssistantID:            o.assistantID,
		AdditionalInstructions: Instructions,
	})
	if err != nil {
		return "", "", &OrchestrationError{Step: "create run", Err: err}
	}

	return threadID, runID, nil
}

// ComposeMessage builds the user message of a job.
// Each file is attached once, in the given order, for file search.
func ComposeMessage(fileIDs []string, prompt string) Message {
	if len(fileIDs) > 0 {
		prompt += FileAnalysisSuffix
	}
	message := TextMessage(prompt)
	for _, fileID := range fileIDs {
		message.Attachments = append(message.Attachments, Attachment{FileID: fileID, Tools: []Tool{FileSearch{}}})
	}

	return message
}
