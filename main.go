package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rayslava/camt053/cmd/batch"
	"github.com/rayslava/camt053/cmd/export"
	"github.com/rayslava/camt053/cmd/generate"
	"github.com/rayslava/camt053/cmd/inspect"
	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/cmd/validate"
)

func init() {
	root.Cmd.AddCommand(generate.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
