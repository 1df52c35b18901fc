package main

import (
	"os"

	"ollama-assistant/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
