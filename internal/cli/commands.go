package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ollama-assistant/internal/model"
)

type command struct {
	name        string
	description string
	run         func(r *REPL, ctx context.Context, arg string) bool
}

// commands is ordered the way /help lists them. It is filled in init because
// /help reads it.
var commands []command

func init() {
	commands = []command{
		{"/help", "Show this help message", (*REPL).cmdHelp},
		{"/clear", "Clear conversation history", (*REPL).cmdClear},
		{"/history", "Show conversation history", (*REPL).cmdHistory},
		{"/models", "List available models", (*REPL).cmdModels},
		{"/model", "Change current model (/model <name|number>)", (*REPL).cmdModel},
		{"/status", "Check Ollama connection", (*REPL).cmdStatus},
		{"/stream", "Toggle streaming responses", (*REPL).cmdStream},
		{"/quit", "Exit the application", (*REPL).cmdQuit},
		{"/exit", "Exit the application", (*REPL).cmdQuit},
	}
}

func (r *REPL) dispatch(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	for _, c := range commands {
		if c.name == name {
			return c.run(r, ctx, strings.TrimSpace(arg))
		}
	}
	fmt.Fprintf(r.out, "%s%s\n", errorStyle("Unknown command: "), name)
	fmt.Fprintln(r.out, commandStyle("Type '/help' for available commands."))
	fmt.Fprintln(r.out)
	return true
}

func (r *REPL) cmdHelp(_ context.Context, _ string) bool {
	fmt.Fprintln(r.out, titleStyle("=== Ollama Terminal Assistant ==="))
	fmt.Fprintln(r.out, headerStyle("Available Commands:"))
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s - %s\n", commandStyle(fmt.Sprintf("%-9s", c.name)), c.description)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, successStyle("Just type your message and press Enter to chat!"))
	fmt.Fprintf(r.out, "%s %s\n", dimStyle("   Current model:"), modelStyle(r.session.CurrentModel()))
	fmt.Fprintf(r.out, "%s %s\n", dimStyle("   Streaming:"), onOff(r.session.IsStreaming()))
	fmt.Fprintln(r.out)
	return true
}

func (r *REPL) cmdClear(_ context.Context, _ string) bool {
	if err := r.session.Clear(); err != nil {
		r.printError(err)
		return true
	}
	fmt.Fprintln(r.out, successStyle("Conversation history cleared."))
	fmt.Fprintln(r.out)
	return true
}

func (r *REPL) cmdHistory(_ context.Context, _ string) bool {
	fmt.Fprintln(r.out, headerStyle("=== Conversation History ==="))
	history := r.session.History()
	if len(history) == 0 {
		fmt.Fprintln(r.out, dimStyle("No conversation history yet."))
	}
	for _, msg := range history {
		switch msg.Role {
		case model.RoleUser:
			fmt.Fprintf(r.out, "%s%s\n\n", userStyle("You: "), msg.Content)
		case model.RoleAssistant:
			fmt.Fprintf(r.out, "%s%s\n\n", botStyle("Ollama: "), msg.Content)
		}
	}
	fmt.Fprintf(r.out, "%s\n\n", dimStyle(fmt.Sprintf("%d completed turn(s)", r.session.TurnCount())))
	return true
}

func (r *REPL) cmdModels(ctx context.Context, _ string) bool {
	fmt.Fprintln(r.out, commandStyle("Fetching available models..."))
	if r.refreshModels(ctx) {
		r.printModels()
	}
	fmt.Fprintln(r.out)
	return true
}

// cmdModel selects a model by name or by its number in the model list. With
// no argument it shows the list and asks for a number.
func (r *REPL) cmdModel(ctx context.Context, arg string) bool {
	defer fmt.Fprintln(r.out)

	if arg == "" {
		if !r.refreshModels(ctx) {
			return true
		}
		r.printModels()
		answer, err := r.input.Prompt("Enter model number (or press Enter to cancel): ")
		if err != nil {
			return true
		}
		if arg = strings.TrimSpace(answer); arg == "" {
			return true
		}
	}

	name := arg
	if n, err := strconv.Atoi(arg); err == nil {
		if len(r.models) == 0 && !r.refreshModels(ctx) {
			return true
		}
		if n < 1 || n > len(r.models) {
			fmt.Fprintln(r.out, errorStyle("Invalid choice!"))
			return true
		}
		name = r.models[n-1]
	}

	if err := r.session.SetModel(name); err != nil {
		r.printError(err)
		return true
	}
	fmt.Fprintf(r.out, "%s%s\n", successStyle("Model changed to: "), modelStyle(r.session.CurrentModel()))
	return true
}

// refreshModels reloads r.models. It reports false, after telling the user
// why, when there is nothing to choose from.
func (r *REPL) refreshModels(ctx context.Context) bool {
	models, err := r.session.ListModels(ctx)
	if err != nil {
		r.printError(err)
		return false
	}
	r.models = models
	if len(models) == 0 {
		fmt.Fprintln(r.out, errorStyle("No models found. Install a model first:"))
		fmt.Fprintln(r.out, hintStyle("   ollama pull llama3.2"))
		return false
	}
	return true
}

func (r *REPL) printModels() {
	fmt.Fprintln(r.out, headerStyle("Available Models:"))
	current := r.session.CurrentModel()
	for i, m := range r.models {
		marker := "  "
		if m == current {
			marker = "> "
			fmt.Fprintln(r.out, successStyle(fmt.Sprintf("%s%d. %s", marker, i+1, m)))
			continue
		}
		fmt.Fprintf(r.out, "%s%d. %s\n", marker, i+1, m)
	}
}

func (r *REPL) cmdStatus(ctx context.Context, _ string) bool {
	fmt.Fprintln(r.out, commandStyle("Checking Ollama connection..."))
	if r.session.CheckConnection(ctx) {
		fmt.Fprintln(r.out, successStyle("Ollama is running and accessible!"))
		fmt.Fprintf(r.out, "%s %s\n", hintStyle("Server:"), r.session.BaseURL())
		fmt.Fprintf(r.out, "%s %s\n", hintStyle("Current model:"), modelStyle(r.session.CurrentModel()))
		fmt.Fprintf(r.out, "%s %s\n", hintStyle("Streaming:"), onOff(r.session.IsStreaming()))
	} else {
		fmt.Fprintln(r.out, errorStyle("Cannot connect to Ollama at "+r.session.BaseURL()+"!"))
		fmt.Fprintln(r.out, commandStyle("Make sure Ollama is running:"))
		fmt.Fprintln(r.out, hintStyle("   ollama serve"))
	}
	fmt.Fprintln(r.out)
	return true
}

func (r *REPL) cmdStream(_ context.Context, _ string) bool {
	enabled := !r.session.IsStreaming()
	r.session.SetStreaming(enabled)
	fmt.Fprintf(r.out, "%s %s\n\n", successStyle("Streaming responses:"), onOff(enabled))
	return true
}

func (r *REPL) cmdQuit(_ context.Context, _ string) bool {
	return false
}
