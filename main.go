package main

import (
	"github.com/NoteDance/Pool/cmd"
)

func main() {
	cmd.Execute()
}
