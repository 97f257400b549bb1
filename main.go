package main

import "github.com/arkandha/feastly/cmd"

func main() {
	cmd.Start()
}
