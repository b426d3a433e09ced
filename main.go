package main

import (
	"battlecats-savior/cli"
)

func main() {
	cli.Start()
}
