// Command oas2sls generates Serverless Framework functions configuration
// from OpenAPI documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/erraggy/oas2sls/cmd/oas2sls/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
