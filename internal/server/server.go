// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package server exposes ontology generation over HTTP.
//
// Each client first creates a session, then posts documents to generate an
// ontology in it. The artifact of a session can be downloaded and replaced.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/invopop/jsonschema"

	"github.com/ktong/ontogen"
)

const (
	maxUploadSize   = 64 << 20 // 64MB
	maxArtifactSize = 8 << 20  // 8MB
	maxMemory       = 16 << 20
)

type (
	// Generator runs a generation for a session, see ontogen.Generator.
	Generator interface {
		Generate(ctx context.Context, session *ontogen.Session, uploads []ontogen.Upload, prompt string) (ontogen.Result, error)
	}

	Server struct {
		generator Generator
		logger    *slog.Logger

		mu       sync.RWMutex
		sessions map[string]*ontogen.Session
	}

	sessionView struct {
		ID          string `json:"id"`
		ThreadID    string `json:"thread_id,omitempty"`
		HasArtifact bool   `json:"has_artifact"`
		Busy        bool   `json:"busy"`
	}
)

func New(generator Generator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		generator: generator,
		logger:    logger,
		sessions:  map[string]*ontogen.Session{},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/prompt", s.handlePrompt)
		r.Get("/schema", s.handleSchema)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/generate", s.handleGenerate)
			r.Get("/artifact", s.handleGetArtifact)
			r.Put("/artifact", s.handlePutArtifact)
		})
	})

	return r
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*ontogen.Session, bool) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		httpError(w, http.StatusNotFound, "not_found_error", "session %s not found", id)
	}

	return session, ok
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := ontogen.NewSession()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.logger.InfoContext(r.Context(), "session created", "session", session.ID)

	writeJSON(w, http.StatusCreated, map[string]string{"id": session.ID})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	_, hasArtifact := session.Artifact()

	writeJSON(w, http.StatusOK, sessionView{
		ID:          session.ID,
		ThreadID:    session.ThreadID(),
		HasArtifact: hasArtifact,
		Busy:        session.Busy(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	defer r.Body.Close()
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid multipart form: %v", err)

		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["files"]
	for _, header := range headers {
		if !ontogen.Supported(header.Filename) {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"unsupported file %s, expected one of %s", header.Filename, strings.Join(ontogen.SupportedExtensions, " "))

			return
		}
	}
	uploads, closeAll, err := open(headers)
	defer closeAll()
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)

		return
	}

	result, err := s.generator.Generate(r.Context(), session, uploads, r.FormValue("prompt"))
	if err != nil {
		code, errType := statusOf(err)
		writeJSON(w, code, map[string]any{
			"error": map[string]any{
				"message": err.Error(),
				"type":    errType,
			},
			"result": result,
		})

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func open(headers []*multipart.FileHeader) ([]ontogen.Upload, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, file := range files {
			_ = file.Close()
		}
	}

	uploads := make([]ontogen.Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open %s: %w", header.Filename, err)
		}
		files = append(files, file)
		uploads = append(uploads, ontogen.Upload{Name: header.Filename, Content: file})
	}

	return uploads, closeAll, nil
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ontogen.ErrBusy):
		return http.StatusConflict, "conflict_error"
	case errors.Is(err, ontogen.ErrNoFiles):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, ontogen.ErrPollTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout_error"
	default:
		return http.StatusBadGateway, "api_error"
	}
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	artifact, ok := session.Artifact()
	if !ok {
		httpError(w, http.StatusNotFound, "not_found_error", "%v", ontogen.ErrNoArtifact)

		return
	}

	w.Header().Set("Content-Type", ontogen.ArtifactMIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ontogen.ArtifactFileName))
	if _, err := artifact.WriteTo(w); err != nil {
		s.logger.WarnContext(r.Context(), "write artifact", "session", session.ID, "error", err)
	}
}

func (s *Server) handlePutArtifact(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArtifactSize))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "read artifact: %v", err)

		return
	}
	if err := session.Edit(string(body)); err != nil {
		httpError(w, http.StatusConflict, "conflict_error", "%v", err)

		return
	}
	s.logger.InfoContext(r.Context(), "artifact edited", "session", session.ID, "bytes", len(body))

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePrompt(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, ontogen.DefaultPrompt)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, jsonschema.Reflect(&ontogen.Result{}))
}

func writeJSON(w http.ResponseWriter, code int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(value)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}
