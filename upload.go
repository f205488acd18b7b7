// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

type (
	// Upload is a document supplied by the user.
	Upload struct {
		Name    string
		Content io.Reader
	}

	// Uploader sends files to the assistant storage and registers them with a vector store.
	Uploader struct {
		backend       Backend
		vectorStoreID string
	}

	// Stager persists each upload to a transient file before handing it to the Uploader.
	// The transient file is removed whatever the outcome.
	Stager struct {
		uploader    Uploader
		dir         string
		concurrency int
		logger      *slog.Logger
	}
)

// SupportedExtensions lists the document types accepted from users.
var SupportedExtensions = []string{".txt", ".pdf", ".docx", ".md"} //nolint:gochecknoglobals

// Supported reports whether the file name has one of the SupportedExtensions, ignoring case.
func Supported(name string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}

func NewUploader(backend Backend, vectorStoreID string) Uploader {
	return Uploader{backend: backend, vectorStoreID: vectorStoreID}
}

// Upload returns the remote file ID. No local validation of size or type is done.
// On error, the file must be treated as not participating in the generation.
func (u Uploader) Upload(ctx context.Context, name string, content io.Reader) (string, error) {
	fileID, err := u.backend.UploadFile(ctx, name, content)
	if err != nil {
		return "", &UploadError{Name: name, Err: err}
	}
	if err := u.backend.AddVectorStoreFile(ctx, u.vectorStoreID, fileID); err != nil {
		return "", &UploadError{Name: name, Err: fmt.Errorf("add file %s to vector store %s: %w", fileID, u.vectorStoreID, err)}
	}

	return fileID, nil
}

func NewStager(uploader Uploader, opts ...Option) Stager {
	options := apply(opts)

	return Stager{
		uploader:    uploader,
		dir:         options.tempDir,
		concurrency: options.uploadConcurrency,
		logger:      options.logger,
	}
}

// Stage uploads a single file through a transient copy.
func (s Stager) Stage(ctx context.Context, upload Upload) (string, error) {
	path, err := s.persist(upload)
	if err != nil {
		return "", &UploadError{Name: upload.Name, Err: err}
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.WarnContext(ctx, "remove transient upload", "path", path, "error", err)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return "", &UploadError{Name: upload.Name, Err: fmt.Errorf("open transient file: %w", err)}
	}
	defer func() {
		_ = file.Close()
	}()

	return s.uploader.Upload(ctx, upload.Name, file)
}

func (s Stager) persist(upload Upload) (string, error) {
	file, err := os.CreateTemp(s.dir, "ontogen-*"+filepath.Ext(upload.Name))
	if err != nil {
		return "", fmt.Errorf("create transient file: %w", err)
	}
	path := file.Name()

	if _, err := io.Copy(file, upload.Content); err != nil {
		_ = file.Close()
		_ = os.Remove(path)

		return "", fmt.Errorf("write transient file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("close transient file: %w", err)
	}

	return path, nil
}

// StageAll stages every upload and returns the IDs of the successful ones in input order,
// along with the error of each failed upload. A failed upload does not stop the others.
func (s Stager) StageAll(ctx context.Context, uploads []Upload) ([]string, []error) {
	ids := make([]string, len(uploads))
	errs := make([]error, len(uploads))

	var group errgroup.Group
	group.SetLimit(s.concurrency)
	for i, upload := range uploads {
		group.Go(func() error {
			ids[i], errs[i] = s.Stage(ctx, upload)

			return nil
		})
	}
	_ = group.Wait()

	fileIDs := make([]string, 0, len(uploads))
	var failures []error
	for i := range uploads {
		if errs[i] != nil {
			failures = append(failures, errs[i])

			continue
		}
		fileIDs = append(fileIDs, ids[i])
	}

	return fileIDs, failures
}
