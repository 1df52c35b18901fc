package llm

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	app_errors "ollama-assistant/internal/errors"
)

const (
	ssePrefix = "data: "
	doneToken = "[DONE]"
)

// DecodeStream reads a line-delimited response body and concatenates the
// message.content of every line in arrival order. Lines may be bare JSON or
// carry an SSE "data: " prefix. Blank lines and the [DONE] terminator are
// skipped, and so is any line that is not valid JSON. The only error returned
// is a read error from r; the content decoded up to that point is returned
// with it.
func DecodeStream(r io.Reader) (string, error) {
	var reply strings.Builder
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			if frag, ok := decodeStreamLine(line, lineNo); ok {
				reply.WriteString(frag.ContentDelta)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return reply.String(), nil
			}
			return reply.String(), err
		}
	}
}

// decodeStreamLine extracts the fragment carried by a single line. ok is
// false for lines that carry no content, including malformed ones.
func decodeStreamLine(line string, lineNo int) (StreamFragment, bool) {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimPrefix(line, ssePrefix)
	line = strings.TrimSpace(line)
	if line == "" || line == doneToken {
		return StreamFragment{}, false
	}

	chunk, err := parseChatChunk([]byte(line))
	if err != nil {
		slog.Warn("Skipping malformed stream line", "line", lineNo, "error", err, "raw", truncate(line, 200))
		return StreamFragment{}, false
	}
	if msg := chunk.errorText(); msg != "" {
		slog.Warn("Stream line carried an error", "line", lineNo, "error", msg)
	}
	frag, ok := chunk.fragment()
	if ok {
		slog.Debug("Decoded stream fragment", "line", lineNo, "bytes", len(frag.ContentDelta), "done", chunk.done())
	}
	return frag, ok
}

// DecodeMessage extracts message.content from a non-streaming body. A body
// that is not valid JSON fails with ErrDecode. A missing or non-string
// content yields "", and no other field is inspected.
func DecodeMessage(body []byte) (string, error) {
	chunk, err := parseChatChunk(body)
	if err != nil {
		return "", fmt.Errorf("%w: could not parse chat response: %v", app_errors.ErrDecode, err)
	}
	frag, _ := chunk.fragment()
	return frag.ContentDelta, nil
}

// decodeModelNames pulls models[].name out of an /api/tags body. Any parse
// failure degrades to an empty list; entries without a string name are
// skipped.
func decodeModelNames(body []byte) []string {
	var resp struct {
		Models []json.RawMessage `json:"models"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		slog.Warn("Could not parse model list, treating as empty", "error", err)
		return []string{}
	}

	names := make([]string, 0, len(resp.Models))
	for _, raw := range resp.Models {
		var entry struct {
			Name *string `json:"name"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Name == nil {
			continue
		}
		names = append(names, *entry.Name)
	}
	return names
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
