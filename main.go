package main

import (
	"fmt"
	"os"

	"github.com/shaharia-lab/nomadweb/cmd"
	"github.com/shaharia-lab/nomadweb/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cmd.Execute(cfg)
}
