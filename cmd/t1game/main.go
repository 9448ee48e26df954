package main

import (
	"github.com/mcoot/thirtyone-go/internal/cli"
)

func main() {
	cli.Execute()
}
