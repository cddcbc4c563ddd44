package main

import "github.com/agusx1211/agentwatch/internal/cli"

func main() {
	cli.Execute()
}
