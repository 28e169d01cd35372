package main

import "github.com/darshan4295/interview-app/cmd/intervuectl/commands"

func main() {
	commands.Execute()
}
