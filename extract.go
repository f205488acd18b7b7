// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import (
	"regexp"
	"strings"
)

// blockMatchers are tried in order, labeled fences before the generic one.
var blockMatchers = []*regexp.Regexp{ //nolint:gochecknoglobals
	regexp.MustCompile("(?s)```ttl\n(.*?)\n```"),
	regexp.MustCompile("(?s)```turtle\n(.*?)\n```"),
	regexp.MustCompile("(?s)```\n(.*?)\n```"),
}

// Extract returns the body of the first fenced Turtle block found in the reply,
// trimmed of surrounding whitespace. Without any fenced block,
// the whole reply is taken as the ontology.
//
// A block is matched up to the nearest closing fence. It is not validated any further.
func Extract(raw string) string {
	for _, matcher := range blockMatchers {
		if match := matcher.FindStringSubmatch(raw); match != nil {
			return strings.TrimSpace(match[1])
		}
	}

	return strings.TrimSpace(raw)
}
