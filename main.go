package main

import "inquisitive/commands"

func main() {
	commands.Execute()
}
