// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ktong/ontogen"
	"github.com/ktong/ontogen/internal/assert"
)

// assistantAPI fakes the endpoints of the Assistants API used by a generation.
type assistantAPI struct {
	mu       sync.Mutex
	uploaded []string
	prompt   string
	polls    int
}

func newAssistantAPI(t *testing.T, reply string) *assistantAPI {
	t.Helper()

	api := &assistantAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/files", func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}
		api.mu.Lock()
		api.uploaded = append(api.uploaded, header.Filename)
		api.mu.Unlock()
		fmt.Fprintf(w, `{"id": "file-%s"}`, header.Filename)
	})
	mux.HandleFunc("POST /v1/vector_stores/vs-1/files", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status": "in_progress"}`)
	})
	mux.HandleFunc("POST /v1/threads", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id": "thread-1"}`)
	})
	mux.HandleFunc("POST /v1/threads/thread-1/messages", func(w http.ResponseWriter, r *http.Request) {
		var message struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&message)
		api.mu.Lock()
		api.prompt = message.Content[0].Text
		api.mu.Unlock()
		_, _ = io.WriteString(w, `{"id": "msg-1"}`)
	})
	mux.HandleFunc("POST /v1/threads/thread-1/runs", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id": "run-1", "status": "queued"}`)
	})
	mux.HandleFunc("GET /v1/threads/thread-1/runs/run-1", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		api.polls++
		status := "in_progress"
		if api.polls > 1 {
			status = "completed"
		}
		api.mu.Unlock()
		fmt.Fprintf(w, `{"id": "run-1", "thread_id": "thread-1", "status": %q}`, status)
	})
	mux.HandleFunc("GET /v1/threads/thread-1/messages", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{map[string]any{
			"id":      "msg-2",
			"role":    "assistant",
			"content": []any{map[string]any{"type": "text", "text": map[string]any{"value": reply}}},
		}}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ASSISTANT_ID", "asst-1")
	t.Setenv("VECTOR_STORE_ID", "vs-1")
	t.Setenv("OPENAI_BASE_URL", srv.URL+"/v1")
	t.Setenv("ONTOGEN_POLL_INTERVAL", "1ms")

	return api
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// Flags of the shared commands keep their values between executions.
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			if slice, ok := flag.Value.(interface{ Replace([]string) error }); ok {
				_ = slice.Replace(nil)
			} else {
				_ = flag.Value.Set(flag.DefValue)
			}
			flag.Changed = false
		})
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func writeDocuments(t *testing.T, names ...string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(path, []byte("content of "+name), 0o600))
		paths = append(paths, path)
	}

	return paths
}

func TestGenerate(t *testing.T) {
	t.Chdir(t.TempDir())
	api := newAssistantAPI(t, "Here it is:\n```ttl\nex:Alert a owl:Class .\n```")
	paths := writeDocuments(t, "toc.md", "manual.pdf")

	_, stderr, err := execute(t, "generate", "-f", paths[0], "-f", paths[1], "--prompt", "Generate ontology")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(stderr, "ontology written to ontology.ttl"))

	content, err := os.ReadFile("ontology.ttl")
	assert.NoError(t, err)
	assert.Equal(t, "ex:Alert a owl:Class .", string(content))
	assert.Equal(t, []string{"toc.md", "manual.pdf"}, api.uploaded)
	assert.Equal(t, "Generate ontology"+ontogen.FileAnalysisSuffix, api.prompt)
	assert.Equal(t, 2, api.polls)
}

func TestGenerate_stdout(t *testing.T) {
	t.Chdir(t.TempDir())
	api := newAssistantAPI(t, "ex:Alert a owl:Class .")
	paths := writeDocuments(t, "notes.txt")
	promptFile := filepath.Join(t.TempDir(), "prompt.txt")
	assert.NoError(t, os.WriteFile(promptFile, []byte("Only classes"), 0o600))

	stdout, _, err := execute(t, "generate", "-f", paths[0], "--prompt-file", promptFile, "-o", "-")
	assert.NoError(t, err)
	assert.Equal(t, "ex:Alert a owl:Class .", stdout)
	assert.Equal(t, "Only classes"+ontogen.FileAnalysisSuffix, api.prompt)

	_, err = os.Stat(ontogen.ArtifactFileName)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_error(t *testing.T) {
	testcases := []struct {
		description string
		args        func(paths []string) []string
		error       func(paths []string) string
	}{
		{
			description: "no file",
			args:        func([]string) []string { return nil },
			error:       func([]string) string { return "at least one --file is required" },
		},
		{
			description: "unsupported extension",
			args:        func(paths []string) []string { return []string{"-f", paths[0], "-f", paths[1]} },
			error: func(paths []string) string {
				return "unsupported file " + paths[1] + ", expected one of .txt .pdf .docx .md"
			},
		},
		{
			description: "missing prompt file",
			args: func(paths []string) []string {
				return []string{"-f", paths[0], "--prompt-file", paths[0] + ".prompt"}
			},
			error: func(paths []string) string {
				return "read prompt file: open " + paths[0] + ".prompt: no such file or directory"
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Chdir(t.TempDir())
			newAssistantAPI(t, "")
			paths := writeDocuments(t, "toc.md", "sheet.xlsx")

			_, _, err := execute(t, append([]string{"generate"}, testcase.args(paths)...)...)
			assert.EqualError(t, err, testcase.error(paths))
		})
	}
}

func TestGenerate_missingConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	newAssistantAPI(t, "")
	t.Setenv("ASSISTANT_ID", "")
	paths := writeDocuments(t, "toc.md")

	_, _, err := execute(t, "generate", "-f", paths[0])
	assert.EqualError(t, err, "config ASSISTANT_ID: required but not set")
}

func TestPrompt(t *testing.T) {
	stdout, _, err := execute(t, "prompt")
	assert.NoError(t, err)
	assert.Equal(t, ontogen.DefaultPrompt+"\n", stdout)
}

func TestCommands(t *testing.T) {
	for _, name := range []string{"generate", "prompt", "serve"} {
		found, _, err := rootCmd.Find([]string{name})
		assert.NoError(t, err)
		assert.Equal(t, name, found.Name())
	}
}
