package main

import "github.com/jwulff/audiolabel/internal/cli"

func main() {
	cli.Execute()
}
