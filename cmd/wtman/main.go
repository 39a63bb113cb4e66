package main

import (
	"log"

	"github.com/worktree-tools/wtman/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
