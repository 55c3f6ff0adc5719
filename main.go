// MindfulMate - A command-line student wellness companion

package main

import (
	"os"

	"github.com/sathvik70004-cmyk/mindfulmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
