// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/ktong/ontogen/internal/httpclient"
)

// UploadFile uploads a file with the given name and content to the [files] storage
// for assistant use.
//
// [files]: https://platform.openai.com/docs/api-reference/files
func (c Client) UploadFile(ctx context.Context, name string, content io.Reader) (string, error) {
	buf, contentType, err := createMultiPartForm(name, content)
	if err != nil {
		return "", fmt.Errorf("create multipart form: %w", err)
	}

	resp, err := httpclient.Post[id](ctx, "/files", buf, c.with(httpclient.WithHeader("Content-Type", contentType))...)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	return resp.ID, nil
}

// AddVectorStoreFile attaches an uploaded file to the [vector store],
// which chunks and embeds it for file search.
//
// [vector store]: https://platform.openai.com/docs/api-reference/vector-stores-files
func (c Client) AddVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) error {
	request := struct {
		FileID string `json:"file_id"`
	}{
		FileID: fileID,
	}
	if _, err := httpclient.Post[struct{}](ctx, "/vector_stores/"+vectorStoreID+"/files", request, c.options...); err != nil {
		return fmt.Errorf("create vector store file: %w", err)
	}

	return nil
}

func createMultiPartForm(name string, content io.Reader) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	if err := writer.WriteField("purpose", "assistants"); err != nil {
		return nil, "", fmt.Errorf("write purpose field: %w", err)
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("copy content to form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
