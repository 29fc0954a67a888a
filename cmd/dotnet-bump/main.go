package main

import "dotnet-bump/internal/cli"

func main() {
	cli.Execute()
}
