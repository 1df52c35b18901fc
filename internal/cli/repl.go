// Package cli is the interactive terminal front end: a read-eval-print loop
// that routes slash commands and sends everything else as a chat turn.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	app_errors "ollama-assistant/internal/errors"
	"ollama-assistant/internal/interfaces"
)

const (
	userPrompt = "You: "
	clearLine  = "\r                    \r"
)

var (
	titleStyle   = color.New(color.FgMagenta, color.Bold).SprintFunc()
	headerStyle  = color.New(color.FgCyan, color.Bold).SprintFunc()
	commandStyle = color.New(color.FgYellow).SprintFunc()
	successStyle = color.New(color.FgGreen).SprintFunc()
	errorStyle   = color.New(color.FgRed).SprintFunc()
	hintStyle    = color.New(color.FgCyan).SprintFunc()
	dimStyle     = color.New(color.Faint).SprintFunc()
	userStyle    = color.New(color.FgBlue, color.Bold).SprintFunc()
	botStyle     = color.New(color.FgGreen, color.Bold).SprintFunc()
	modelStyle   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// LineReader reads one line of user input. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// REPL drives a ChatSession from line input.
type REPL struct {
	session interfaces.ChatSession
	input   LineReader
	out     io.Writer

	// models is the last listing shown, so "/model 2" can refer to it.
	models []string

	typingDelay time.Duration
	sleep       func(time.Duration)
}

func NewREPL(session interfaces.ChatSession, input LineReader, out io.Writer) *REPL {
	return &REPL{
		session:     session,
		input:       input,
		out:         out,
		typingDelay: defaultTypingDelay,
		sleep:       time.Sleep,
	}
}

// SetTypingDelay sets the base per-character pause used to type out replies
// in streaming mode. Zero prints replies at once.
func (r *REPL) SetTypingDelay(d time.Duration) {
	r.typingDelay = d
}

// Run checks that the server is reachable, prints the welcome banner and
// loops until the user quits, input ends, or ctx is cancelled. Turn failures
// are printed and never end the loop. An unreachable server ends Run before
// any input is read, with an error matching ErrTransport.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	r.printWelcome()

	for {
		if ctx.Err() != nil {
			r.printGoodbye()
			return nil
		}
		line, err := r.input.Prompt(userPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				r.printGoodbye()
				return nil
			}
			return fmt.Errorf("could not read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.input.AppendHistory(line)

		if !r.Handle(ctx, line) {
			r.printGoodbye()
			return nil
		}
	}
}

// Handle processes one non-empty input line. It returns false when the user
// asked to quit.
func (r *REPL) Handle(ctx context.Context, line string) bool {
	if strings.HasPrefix(line, "/") {
		return r.dispatch(ctx, line)
	}
	r.chat(ctx, line)
	return true
}

func (r *REPL) chat(ctx context.Context, text string) {
	fmt.Fprint(r.out, commandStyle("Thinking..."))
	reply, err := r.session.Send(ctx, text)
	fmt.Fprint(r.out, clearLine)
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, botStyle("Ollama: "))
	if r.session.IsStreaming() {
		typeText(ctx, r.out, reply, r.typingDelay, r.sleep)
	} else {
		fmt.Fprint(r.out, reply)
	}
	fmt.Fprint(r.out, "\n\n")
}

func (r *REPL) connect(ctx context.Context) error {
	fmt.Fprintln(r.out, commandStyle("Checking Ollama connection..."))
	url := r.session.BaseURL()
	if !r.session.CheckConnection(ctx) {
		fmt.Fprintln(r.out, errorStyle("Cannot connect to Ollama at "+url+"!"))
		fmt.Fprintln(r.out, commandStyle("Please make sure Ollama is running:"))
		fmt.Fprintln(r.out, hintStyle("  ollama serve"))
		fmt.Fprintln(r.out, commandStyle("Then run this program again."))
		return fmt.Errorf("%w: ollama is not reachable at %s", app_errors.ErrTransport, url)
	}
	fmt.Fprintln(r.out, successStyle("Connected to Ollama successfully!"))
	return nil
}

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, titleStyle("Ollama Terminal Assistant"))
	fmt.Fprintf(r.out, "%s %s\n", successStyle("Running locally with model:"), modelStyle(r.session.CurrentModel()))
	fmt.Fprintf(r.out, "%s %s\n", successStyle("Streaming mode:"), onOff(r.session.IsStreaming()))
	fmt.Fprintln(r.out, successStyle("Type '/help' for commands or start chatting!"))
	fmt.Fprintln(r.out)
}

func (r *REPL) printGoodbye() {
	fmt.Fprintln(r.out, successStyle("Goodbye! Thanks for using Ollama Terminal Assistant!"))
}

// printError shows a failure as a single line.
func (r *REPL) printError(err error) {
	slog.Debug("Showing error to user", "error", err)
	msg := strings.Join(strings.Fields(err.Error()), " ")
	fmt.Fprintln(r.out, errorStyle("Error: "+msg))
	fmt.Fprintln(r.out)
}

func onOff(enabled bool) string {
	if enabled {
		return successStyle("ON")
	}
	return errorStyle("OFF")
}
