// Command tablekit is an in-memory relational database shell.
package main

import "github.com/marshallshelly/tablekit/cmd/tablekit/commands"

func main() {
	commands.Execute()
}
