// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package openai

import "github.com/ktong/ontogen"

type (
	id struct {
		ID string `json:"id"`
	}
	tool struct {
		Type string `json:"type"`
	}
	attachment struct {
		FileID string `json:"file_id"`
		Tools  []tool `json:"tools"`
	}
	content struct {
		Type      string     `json:"type"`
		Text      *text      `json:"text,omitempty"`
		ImageFile *imageFile `json:"image_file,omitempty"`
	}
	text struct {
		Value string `json:"value"`
	}
	imageFile struct {
		FileID string `json:"file_id"`
	}
	// messageRequest uses the plain form of text parts accepted on creation.
	messageRequest struct {
		Role        string        `json:"role"`
		Content     []textRequest `json:"content"`
		Attachments []attachment  `json:"attachments,omitempty"`
	}
	textRequest struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	message struct {
		ID      string    `json:"id"`
		Role    string    `json:"role"`
		Content []content `json:"content"`
	}
	run struct {
		ID        string `json:"id"`
		ThreadID  string `json:"thread_id"`
		Status    string `json:"status"`
		LastError *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"last_error"`
	}
)

func toTool(t ontogen.Tool) tool {
	switch t.(type) {
	case ontogen.FileSearch:
		return tool{Type: "file_search"}
	case ontogen.CodeInterpreter:
		return tool{Type: "code_interpreter"}
	default:
		return tool{}
	}
}

func toMessageRequest(m ontogen.Message) messageRequest {
	msg := messageRequest{
		Role:    string(m.Role),
		Content: make([]textRequest, 0, len(m.Content)),
	}
	for _, c := range m.Content {
		// Only text can be posted with a user message here.
		if cont, ok := c.(ontogen.Text); ok {
			msg.Content = append(msg.Content, textRequest{Type: "text", Text: cont.Text})
		}
	}
	for _, a := range m.Attachments {
		tools := make([]tool, 0, len(a.Tools))
		for _, t := range a.Tools {
			tools = append(tools, toTool(t))
		}
		msg.Attachments = append(msg.Attachments, attachment{FileID: a.FileID, Tools: tools})
	}

	return msg
}

func fromMessage(m message) ontogen.Message {
	msg := ontogen.Message{
		ID:   m.ID,
		Role: ontogen.Role(m.Role),
	}
	for _, c := range m.Content {
		switch {
		case c.Type == "text" && c.Text != nil:
			msg.Content = append(msg.Content, ontogen.Text{Text: c.Text.Value})
		case c.Type == "image_file" && c.ImageFile != nil:
			msg.Content = append(msg.Content, ontogen.ImageFile{FileID: c.ImageFile.FileID})
		}
	}

	return msg
}

func fromRun(r run) ontogen.Run {
	result := ontogen.Run{
		ID:       r.ID,
		ThreadID: r.ThreadID,
		Status:   ontogen.RunStatus(r.Status),
	}
	if r.LastError != nil {
		result.LastError = r.LastError.Message
	}

	return result
}
