package main

import "essayqa/internal/cli"

func main() {
	cli.Execute()
}
