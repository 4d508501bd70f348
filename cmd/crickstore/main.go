package main

import "github.com/abgdnv/crickstore/internal/cli"

func main() {
	cli.Execute()
}
