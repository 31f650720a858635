package main

import (
	"os"
)

func main() {
	if err := NewRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
