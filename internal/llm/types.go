package llm

import (
	"encoding/json"

	"ollama-assistant/internal/model"
)

// ChatRequest is the body of POST /api/chat. It is built once per turn by
// NewChatRequest and never mutated afterwards.
type ChatRequest struct {
	Model    string          `json:"model" validate:"required"`
	Messages []model.Message `json:"messages" validate:"required,min=1,dive"`
	Stream   bool            `json:"stream"`
}

// NewChatRequest copies messages so the request cannot observe later changes
// to the caller's slice.
func NewChatRequest(modelName string, messages []model.Message, stream bool) *ChatRequest {
	msgs := make([]model.Message, len(messages))
	copy(msgs, messages)
	return &ChatRequest{Model: modelName, Messages: msgs, Stream: stream}
}

// StreamFragment is the content carried by one line of a streaming response.
type StreamFragment struct {
	Role         model.Role
	ContentDelta string
}

// chatChunk is the tolerant shape of both a streaming line and a whole
// non-streaming body. Only message.content is required to have a fixed type;
// every other field is kept raw and read best-effort, so a value of an
// unexpected type never rejects the line.
type chatChunk struct {
	Message json.RawMessage `json:"message"`
	Done    json.RawMessage `json:"done"`
	Error   json.RawMessage `json:"error"`
}

// parseChatChunk fails only when data is not valid JSON. Valid JSON that is
// not an object yields an empty chunk.
func parseChatChunk(data []byte) (chatChunk, error) {
	var chunk chatChunk
	if !json.Valid(data) {
		// Unmarshal again for the positioned syntax error.
		return chunk, json.Unmarshal(data, &chunk)
	}
	if err := json.Unmarshal(data, &chunk); err != nil {
		return chatChunk{}, nil
	}
	return chunk, nil
}

func (c *chatChunk) fragment() (StreamFragment, bool) {
	var msg struct {
		Role    json.RawMessage `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if len(c.Message) == 0 || json.Unmarshal(c.Message, &msg) != nil || len(msg.Content) == 0 {
		return StreamFragment{}, false
	}
	var content *string
	if json.Unmarshal(msg.Content, &content) != nil || content == nil {
		return StreamFragment{}, false
	}
	var role string
	_ = json.Unmarshal(msg.Role, &role)
	return StreamFragment{Role: model.Role(role), ContentDelta: *content}, true
}

func (c *chatChunk) done() bool {
	var done bool
	return json.Unmarshal(c.Done, &done) == nil && done
}

// errorText renders the error field, whatever its type. Absent or null is "".
func (c *chatChunk) errorText() string {
	if len(c.Error) == 0 || string(c.Error) == "null" {
		return ""
	}
	var text string
	if json.Unmarshal(c.Error, &text) == nil {
		return text
	}
	return string(c.Error)
}
