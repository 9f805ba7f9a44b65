package main

import "github.com/mcoot/matrixgame/internal/cli"

func main() {
	cli.Execute()
}
