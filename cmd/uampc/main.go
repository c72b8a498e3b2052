package main

import "github.com/tessro/uampc/internal/cli"

func main() {
	cli.Execute()
}
