package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deppfellow/portfolio/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand(os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio: %v\n", err)
		os.Exit(1)
	}
}
