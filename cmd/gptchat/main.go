// Command gptchat is an interactive terminal chat client for
// OpenAI-compatible chat completion APIs.
package main

import "github.com/diogo/gptchat/internal/commands"

func main() {
	commands.Execute()
}
