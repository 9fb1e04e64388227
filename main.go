package main

import (
	"os"

	"github.com/Ranger10sam/Serenify-App/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
