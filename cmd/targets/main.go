package main

import "github.com/o11c/targets/internal/cli"

func main() {
	cli.Execute()
}
