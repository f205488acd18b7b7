// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package ontogen generates ontologies in Turtle syntax from user documents
// with a pre-configured assistant.
//
// A generation uploads the documents into the vector store of the assistant,
// posts the prompt on a new thread with the documents attached for file search,
// waits for the run to finish and extracts the Turtle block from the reply:
//
//	generator := ontogen.NewGenerator(openai.NewClient(), assistantID, vectorStoreID)
//	session := ontogen.NewSession()
//	result, err := generator.Generate(ctx, session, uploads, ontogen.DefaultPrompt)
package ontogen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type (
	NoticeLevel string

	// Notice is a message for the user about the progress of a generation.
	Notice struct {
		Level   NoticeLevel `json:"level"`
		Message string      `json:"message"`
	}

	// Result describes a generation. It is filled as far as the generation got,
	// so it is meaningful even when Generate returns an error.
	Result struct {
		FileIDs  []string `json:"file_ids,omitempty"`
		ThreadID string   `json:"thread_id,omitempty"`
		RunID    string   `json:"run_id,omitempty"`
		Artifact string   `json:"artifact,omitempty"`
		Notices  []Notice `json:"notices"`
	}

	// Generator runs the whole generation flow for a session.
	Generator struct {
		stager       Stager
		orchestrator Orchestrator
		poller       Poller
		fetcher      Fetcher
		logger       *slog.Logger
	}
)

func NewGenerator(backend Backend, assistantID, vectorStoreID string, opts ...Option) Generator {
	options := apply(opts)

	return Generator{
		stager:       NewStager(NewUploader(backend, vectorStoreID), opts...),
		orchestrator: NewOrchestrator(backend, assistantID),
		poller:       NewPoller(backend, opts...),
		fetcher:      NewFetcher(backend),
		logger:       options.logger,
	}
}

// Generate uploads the documents, runs the assistant with the prompt and stores the
// extracted artifact with its thread in the session. A blank prompt is replaced by DefaultPrompt.
//
// It returns ErrBusy if the session already runs a generation, ErrNoFiles without uploads,
// and ErrNoUploads if none of the uploads succeeded.
// Other errors come from the job itself, see Orchestrator, Poller and Fetcher.
func (g Generator) Generate(ctx context.Context, session *Session, uploads []Upload, prompt string) (Result, error) {
	result := Result{}
	if !session.acquire() {
		return result, ErrBusy
	}
	defer session.release()

	if len(uploads) == 0 {
		g.notify(ctx, &result, NoticeWarning, "Upload at least one file.")

		return result, ErrNoFiles
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}

	fileIDs, failures := g.stager.StageAll(ctx, uploads)
	for _, err := range failures {
		g.notify(ctx, &result, NoticeError, err.Error())
	}
	if len(fileIDs) == 0 {
		g.notify(ctx, &result, NoticeError, "File upload failed.")

		return result, ErrNoUploads
	}
	result.FileIDs = fileIDs
	g.notify(ctx, &result, NoticeInfo, fmt.Sprintf("%d file(s) uploaded.", len(fileIDs)))

	threadID, runID, err := g.orchestrator.Start(ctx, fileIDs, prompt)
	if err != nil {
		g.notify(ctx, &result, NoticeError, err.Error())

		return result, err
	}
	result.ThreadID, result.RunID = threadID, runID

	if err := g.poller.Wait(ctx, threadID, runID); err != nil {
		level := NoticeError
		var runErr *RunError
		if errors.As(err, &runErr) && runErr.Status == RunRequiresAction {
			level = NoticeWarning
		}
		g.notify(ctx, &result, level, err.Error())

		return result, err
	}

	reply, err := g.fetcher.LatestReply(ctx, threadID)
	if err == nil && reply == "" {
		err = ErrNoReply
	}
	if err != nil {
		g.notify(ctx, &result, NoticeError, err.Error())

		return result, err
	}

	artifact := Artifact{Text: Extract(reply)}
	session.complete(threadID, artifact)
	result.Artifact = artifact.Text
	g.notify(ctx, &result, NoticeInfo, "TTL generated.")

	return result, nil
}

func (g Generator) notify(ctx context.Context, result *Result, level NoticeLevel, message string) {
	result.Notices = append(result.Notices, Notice{Level: level, Message: message})

	logLevel := slog.LevelInfo
	switch level {
	case NoticeWarning:
		logLevel = slog.LevelWarn
	case NoticeError:
		logLevel = slog.LevelError
	case NoticeInfo:
	}
	g.logger.Log(ctx, logLevel, message)
}
