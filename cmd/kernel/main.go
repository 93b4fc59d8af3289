package main

import "github.com/go-arrower/kernel/cmd"

func main() {
	cmd.Execute()
}
