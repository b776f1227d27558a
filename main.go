package main

import "github.com/govassist/widget-agent/cmd"

func main() {
	cmd.Execute()
}
