package main

import (
	"context"
	"fmt"
	"os"

	"github.com/siherrmann/ranker/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
