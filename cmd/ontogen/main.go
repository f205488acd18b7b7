// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Command ontogen generates Turtle ontologies from documents with an OpenAI assistant.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ktong/ontogen"
	"github.com/ktong/ontogen/internal/config"
	"github.com/ktong/ontogen/openai"
)

var rootCmd = &cobra.Command{
	Use:   "ontogen",
	Short: "Generate OWL/RDF ontologies in Turtle syntax from documents",
	Long: `Generate OWL/RDF ontologies in Turtle syntax from documents.

The documents are uploaded to the vector store of a pre-configured OpenAI
assistant, which answers the prompt with the ontology.

Configuration is read from the environment and from a .env file in the
working directory: OPENAI_API_KEY, ASSISTANT_ID and VECTOR_STORE_ID are required.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

func setupLogging(cfg config.Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	return logger
}

func newGenerator(cfg config.Config, logger *slog.Logger) ontogen.Generator {
	client := openai.NewClient(
		openai.WithAPIKey(cfg.OpenAI.APIKey),
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
	)

	return ontogen.NewGenerator(client, cfg.OpenAI.AssistantID, cfg.OpenAI.VectorStoreID,
		ontogen.WithPollInterval(cfg.Poll.Interval),
		ontogen.WithPollTimeout(cfg.Poll.Timeout),
		ontogen.WithUploadConcurrency(cfg.UploadConcurrency),
		ontogen.WithLogger(logger),
	)
}
