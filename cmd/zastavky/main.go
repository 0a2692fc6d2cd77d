package main

import "github.com/frfole/inverse-zastavky/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
