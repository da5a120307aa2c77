package main

import "github.com/vulcanize/go-codec-lceth/cmd/lceth/cmd"

func main() {
	cmd.Execute()
}
