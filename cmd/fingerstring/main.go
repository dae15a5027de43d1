package main

import "github.com/mredig/fingerstring-mcp/internal/ui/cli"

func main() {
	cli.Execute()
}
