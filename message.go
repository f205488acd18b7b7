// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

import "github.com/ktong/ontogen/internal/embedded"

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type (
	Role string

	// Message belongs to a thread. Content parts keep the order returned by the server.
	Message struct {
		ID          string
		Role        Role
		Content     []Content
		Attachments []Attachment
	}
	Content interface {
		embedded.Content
	}

	// Text content that is part of a message.
	Text struct {
		embedded.Content

		Text string
	}

	// ImageFile references an image generated by the assistant.
	ImageFile struct {
		embedded.Content

		FileID string
	}

	// Attachment makes an uploaded file available to the listed tools of the run.
	Attachment struct {
		FileID string
		Tools  []Tool
	}
	Tool interface {
		embedded.Tool
	}

	// FileSearch lets the assistant retrieve content from attached files
	// through the vector store they are registered with.
	FileSearch struct {
		embedded.Tool
	}

	// CodeInterpreter lets the assistant read attached files from a sandbox.
	CodeInterpreter struct {
		embedded.Tool
	}
)

// TextMessage creates a user message with a single text part.
func TextMessage(text string) Message {
	return Message{Role: RoleUser, Content: []Content{Text{Text: text}}}
}

// FirstText returns the text of the first content element,
// or false if the message is empty or starts with non-text content.
func (m Message) FirstText() (string, bool) {
	if len(m.Content) == 0 {
		return "", false
	}
	text, ok := m.Content[0].(Text)

	return text.Text, ok
}
