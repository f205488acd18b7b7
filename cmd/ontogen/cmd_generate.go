// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ktong/ontogen"
	"github.com/ktong/ontogen/internal/config"
)

func init() {
	generateCmd.Flags().StringArrayP("file", "f", nil, "document to analyze (repeatable): "+strings.Join(ontogen.SupportedExtensions, " "))
	generateCmd.Flags().String("prompt", "", "prompt for the assistant (default: the built-in prompt)")
	generateCmd.Flags().String("prompt-file", "", "read the prompt from a file")
	generateCmd.Flags().StringP("output", "o", ontogen.ArtifactFileName, `where to write the ontology, "-" for stdout`)
	generateCmd.MarkFlagsMutuallyExclusive("prompt", "prompt-file")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an ontology from documents",
	Long: `Generate an ontology from documents.

Examples:
  ontogen generate -f manual.pdf -f toc.md
  ontogen generate -f notes.txt --prompt-file prompt.txt -o -`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	paths, _ := cmd.Flags().GetStringArray("file")
	prompt, _ := cmd.Flags().GetString("prompt")
	promptFile, _ := cmd.Flags().GetString("prompt-file")
	output, _ := cmd.Flags().GetString("output")

	if len(paths) == 0 {
		return errors.New("at least one --file is required")
	}
	for _, path := range paths {
		if !ontogen.Supported(path) {
			return fmt.Errorf("unsupported file %s, expected one of %s", path, strings.Join(ontogen.SupportedExtensions, " "))
		}
	}
	if promptFile != "" {
		content, err := os.ReadFile(promptFile)
		if err != nil {
			return fmt.Errorf("read prompt file: %w", err)
		}
		prompt = string(content)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := setupLogging(cfg, cmd.ErrOrStderr())

	uploads := make([]ontogen.Upload, 0, len(paths))
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open document: %w", err)
		}
		defer file.Close()
		uploads = append(uploads, ontogen.Upload{Name: filepath.Base(path), Content: file})
	}

	result, err := newGenerator(cfg, logger).Generate(cmd.Context(), ontogen.NewSession(), uploads, prompt)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = ontogen.Artifact{Text: result.Artifact}.WriteTo(cmd.OutOrStdout())

		return err
	}
	if err := os.WriteFile(output, []byte(result.Artifact), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write ontology: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "ontology written to %s\n", output)

	return nil
}
