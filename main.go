package main

import (
	"os"

	"github.com/Aleph-Alpha/kafkalens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
