package main

import "github.com/ryan-gang/outreach-send/cmd"

func main() {
	cmd.Execute()
}
