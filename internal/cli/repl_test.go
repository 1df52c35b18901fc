package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ollama-assistant/internal/cli"
	app_errors "ollama-assistant/internal/errors"
	"ollama-assistant/internal/interfaces/mocks"
	"ollama-assistant/internal/llm"
	"ollama-assistant/internal/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// scriptedInput replays fixed lines and then reports end of input.
type scriptedInput struct {
	lines   []string
	end     error
	prompts []string
	history []string
}

func (s *scriptedInput) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		if s.end != nil {
			return "", s.end
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedInput) AppendHistory(item string) { s.history = append(s.history, item) }

func setupREPL(t *testing.T, lines ...string) (*cli.REPL, *mocks.MockChatSession, *scriptedInput, *bytes.Buffer) {
	t.Helper()
	session := mocks.NewMockChatSession(t)
	input := &scriptedInput{lines: lines}
	out := &bytes.Buffer{}
	repl := cli.NewREPL(session, input, out)
	repl.SetTypingDelay(0)
	return repl, session, input, out
}

// expectWelcome registers the calls Run makes before reading input.
func expectWelcome(session *mocks.MockChatSession, connected bool) {
	session.On("CurrentModel").Return("llama3.2").Maybe()
	session.On("IsStreaming").Return(true).Maybe()
	session.On("BaseURL").Return("http://localhost:11434").Maybe()
	session.On("CheckConnection", mock.Anything).Return(connected).Once()
}

func TestREPL_Run(t *testing.T) {
	t.Run("Chat turn then quit", func(t *testing.T) {
		repl, session, input, out := setupREPL(t, "hello", "   ", "/quit", "never read")
		expectWelcome(session, true)
		session.On("Send", mock.Anything, "hello").Return("Hi there!", nil).Once()

		require.NoError(t, repl.Run(context.Background()))

		assert.Contains(t, out.String(), "Ollama Terminal Assistant")
		assert.Contains(t, out.String(), "Ollama: Hi there!")
		assert.Contains(t, out.String(), "Connected to Ollama successfully!")
		assert.Contains(t, out.String(), "Goodbye!")
		assert.Equal(t, []string{"hello", "/quit"}, input.history)
		assert.Equal(t, []string{"never read"}, input.lines)
	})

	t.Run("Failed turn is one error line and the loop continues", func(t *testing.T) {
		repl, session, _, out := setupREPL(t, "first", "second")
		expectWelcome(session, true)
		session.On("Send", mock.Anything, "first").
			Return("", &llm.ServerError{StatusCode: http.StatusNotFound, Body: "{\n\"error\": \"missing\"\n}", Model: "llama3.2"}).Once()
		session.On("Send", mock.Anything, "second").Return("ok", nil).Once()

		require.NoError(t, repl.Run(context.Background()))

		assert.Contains(t, out.String(), `Error: ollama returned status 404: { "error": "missing" }`)
		assert.Contains(t, out.String(), "Ollama: ok")
	})

	t.Run("Unreachable server ends the session before any input", func(t *testing.T) {
		repl, session, input, out := setupREPL(t, "hello")
		session.On("BaseURL").Return("http://localhost:11434").Once()
		session.On("CheckConnection", mock.Anything).Return(false).Once()

		err := repl.Run(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrTransport)
		assert.Contains(t, out.String(), "Cannot connect to Ollama at http://localhost:11434!")
		assert.Contains(t, out.String(), "ollama serve")
		assert.NotContains(t, out.String(), "Type '/help'")
		assert.Empty(t, input.prompts)
		assert.Equal(t, []string{"hello"}, input.lines)
	})

	t.Run("Instant reply when streaming is off", func(t *testing.T) {
		repl, session, _, out := setupREPL(t, "hello")
		session.On("BaseURL").Return("http://localhost:11434").Maybe()
		session.On("CheckConnection", mock.Anything).Return(true).Once()
		session.On("CurrentModel").Return("llama3.2").Maybe()
		session.On("IsStreaming").Return(false)
		session.On("Send", mock.Anything, "hello").Return("Hi.", nil).Once()

		require.NoError(t, repl.Run(context.Background()))
		assert.Contains(t, out.String(), "Streaming mode: OFF")
		assert.Contains(t, out.String(), "Ollama: Hi.\n\n")
	})

	t.Run("Ctrl+C at the prompt exits cleanly", func(t *testing.T) {
		repl, session, input, out := setupREPL(t)
		input.end = liner.ErrPromptAborted
		expectWelcome(session, true)

		require.NoError(t, repl.Run(context.Background()))
		assert.Contains(t, out.String(), "Goodbye!")
	})

	t.Run("Input failure is returned", func(t *testing.T) {
		repl, session, input, _ := setupREPL(t)
		input.end = errors.New("terminal gone")
		expectWelcome(session, true)

		err := repl.Run(context.Background())
		assert.ErrorContains(t, err, "terminal gone")
	})

	t.Run("Cancelled context stops the loop", func(t *testing.T) {
		repl, session, input, _ := setupREPL(t, "hello")
		expectWelcome(session, true)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, repl.Run(ctx))
		assert.Equal(t, []string{"hello"}, input.lines)
	})
}

func TestREPL_Commands(t *testing.T) {
	ctx := context.Background()

	t.Run("/help", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("CurrentModel").Return("llama3.2").Once()
		session.On("IsStreaming").Return(false).Once()

		assert.True(t, repl.Handle(ctx, "/help"))
		for _, name := range []string{"/help", "/clear", "/history", "/models", "/model", "/status", "/stream", "/quit", "/exit"} {
			assert.Contains(t, out.String(), name)
		}
		assert.Contains(t, out.String(), "Streaming: OFF")
	})

	t.Run("/clear", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("Clear").Return(nil).Once()

		assert.True(t, repl.Handle(ctx, "/clear"))
		assert.Contains(t, out.String(), "Conversation history cleared.")
	})

	t.Run("/clear while busy", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("Clear").Return(app_errors.ErrInvalidState).Once()

		assert.True(t, repl.Handle(ctx, "/clear"))
		assert.Contains(t, out.String(), "Error: invalid state")
	})

	t.Run("/history empty", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("History").Return([]model.Message{}).Once()
		session.On("TurnCount").Return(0).Once()

		assert.True(t, repl.Handle(ctx, "/history"))
		assert.Contains(t, out.String(), "No conversation history yet.")
	})

	t.Run("/history", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("History").Return([]model.Message{
			{Role: model.RoleUser, Content: "2+2?"},
			{Role: model.RoleAssistant, Content: "4"},
		}).Once()
		session.On("TurnCount").Return(1).Once()

		assert.True(t, repl.Handle(ctx, "/history"))
		assert.Contains(t, out.String(), "You: 2+2?")
		assert.Contains(t, out.String(), "Ollama: 4")
		assert.Contains(t, out.String(), "1 completed turn(s)")
	})

	t.Run("/models", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("ListModels", ctx).Return([]string{"llama3.2", "codellama"}, nil).Once()
		session.On("CurrentModel").Return("llama3.2").Once()

		assert.True(t, repl.Handle(ctx, "/models"))
		assert.Contains(t, out.String(), "> 1. llama3.2")
		assert.Contains(t, out.String(), "  2. codellama")
	})

	t.Run("/models with none installed", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("ListModels", ctx).Return([]string{}, nil).Once()

		assert.True(t, repl.Handle(ctx, "/models"))
		assert.Contains(t, out.String(), "No models found")
		assert.Contains(t, out.String(), "ollama pull llama3.2")
	})

	t.Run("/model by name", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("SetModel", "mistral").Return(nil).Once()
		session.On("CurrentModel").Return("mistral").Once()

		assert.True(t, repl.Handle(ctx, "/model mistral"))
		assert.Contains(t, out.String(), "Model changed to: mistral")
	})

	t.Run("/model by number", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("ListModels", ctx).Return([]string{"a", "b"}, nil).Once()
		session.On("SetModel", "b").Return(nil).Once()
		session.On("CurrentModel").Return("b").Once()

		assert.True(t, repl.Handle(ctx, "/model 2"))
		assert.Contains(t, out.String(), "Model changed to: b")
	})

	t.Run("/model out of range", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("ListModels", ctx).Return([]string{"a"}, nil).Once()

		assert.True(t, repl.Handle(ctx, "/model 5"))
		assert.Contains(t, out.String(), "Invalid choice!")
	})

	t.Run("/model interactive", func(t *testing.T) {
		repl, session, input, out := setupREPL(t, "1")
		session.On("ListModels", ctx).Return([]string{"a", "b"}, nil).Once()
		session.On("CurrentModel").Return("b").Once()
		session.On("SetModel", "a").Return(nil).Once()
		session.On("CurrentModel").Return("a").Once()

		assert.True(t, repl.Handle(ctx, "/model"))
		assert.Contains(t, input.prompts[0], "Enter model number")
		assert.Contains(t, out.String(), "Model changed to: a")
	})

	t.Run("/model interactive cancelled", func(t *testing.T) {
		repl, session, _, out := setupREPL(t, "")
		session.On("ListModels", ctx).Return([]string{"a"}, nil).Once()
		session.On("CurrentModel").Return("a").Once()

		assert.True(t, repl.Handle(ctx, "/model"))
		assert.NotContains(t, out.String(), "Model changed")
	})

	t.Run("/status connected", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("CheckConnection", ctx).Return(true).Once()
		session.On("BaseURL").Return("http://localhost:11434").Once()
		session.On("CurrentModel").Return("llama3.2").Once()
		session.On("IsStreaming").Return(true).Once()

		assert.True(t, repl.Handle(ctx, "/status"))
		assert.Contains(t, out.String(), "Ollama is running and accessible!")
		assert.Contains(t, out.String(), "Server: http://localhost:11434")
		assert.Contains(t, out.String(), "Streaming: ON")
	})

	t.Run("/status disconnected", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("CheckConnection", ctx).Return(false).Once()
		session.On("BaseURL").Return("http://localhost:11434").Once()

		assert.True(t, repl.Handle(ctx, "/status"))
		assert.Contains(t, out.String(), "Cannot connect to Ollama")
		assert.Contains(t, out.String(), "ollama serve")
	})

	t.Run("/stream toggles", func(t *testing.T) {
		repl, session, _, out := setupREPL(t)
		session.On("IsStreaming").Return(true).Once()
		session.On("SetStreaming", false).Return().Once()

		assert.True(t, repl.Handle(ctx, "/stream"))
		assert.Contains(t, out.String(), "Streaming responses: OFF")
	})

	t.Run("/exit", func(t *testing.T) {
		repl, _, _, _ := setupREPL(t)
		assert.False(t, repl.Handle(ctx, "/exit"))
	})

	t.Run("Unknown command", func(t *testing.T) {
		repl, _, _, out := setupREPL(t)
		assert.True(t, repl.Handle(ctx, "/frobnicate now"))
		assert.Contains(t, out.String(), "Unknown command: /frobnicate")
	})
}
