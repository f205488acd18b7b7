// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"fmt"
	"io"
	"strings"
)

const (
	ArtifactFileName = "ontology.ttl"
	ArtifactMIMEType = "text/turtle"
)

// Artifact is a generated ontology in Turtle syntax.
type Artifact struct {
	Text string
}

// WriteTo exports the artifact as UTF-8 text.
func (a Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := io.Copy(w, strings.NewReader(a.Text))
	if err != nil {
		return n, fmt.Errorf("write artifact: %w", err)
	}

	return n, nil
}
