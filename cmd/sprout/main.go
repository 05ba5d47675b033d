package main

import (
	"sprout/internal/cli"
)

func main() {
	cli.Execute()
}
