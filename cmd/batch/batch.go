// Package batch handles batch processing of files
package batch

import (
	"fmt"
	"time"

	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/internal/batch"
	"github.com/rayslava/camt053/internal/logging"

	"github.com/spf13/cobra"
)

type options struct {
	InputDir    string
	OutputDir   string
	Workers     int
	Pattern     string
	FailFast    bool
	Consolidate bool
}

// Cmd represents the batch command
var Cmd = NewCmd()

// NewCmd builds the batch command.
func NewCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Batch process statements from a directory",
		Long: `Batch process files from an input directory and output them to another directory.

Every file matching the pattern in the input directory is decoded and its
entries are written as CSV. With --consolidate the statements are grouped by
account and one CSV per account is written, named after the account and the
booking date range.

Example:
  camt053 batch -i input_dir/ -o output_dir/ --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.InputDir, "input", "i", "", "Input directory")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Output directory")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Files processed in parallel (default from batch.workers)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "Input file pattern (default from batch.pattern)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "Stop at the first file that fails")
	cmd.Flags().BoolVar(&opts.Consolidate, "consolidate", false, "Write one CSV per account instead of one per file")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	c := root.GetContainer()
	log := c.GetLogger()

	if opts.InputDir == "" || opts.OutputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	log.Info("Batch command called",
		logging.F(logging.FieldDirectory, opts.InputDir),
		logging.F(logging.FieldOutputFile, opts.OutputDir))

	processor := c.NewBatchProcessor(batch.Options{
		Workers:     opts.Workers,
		Pattern:     opts.Pattern,
		FailFast:    opts.FailFast,
		Consolidate: opts.Consolidate,
	})
	result, err := processor.Process(cmd.Context(), opts.InputDir, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("error during batch conversion: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range result.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "FAILED %s: %v\n", f.Input, f.Err)
		}
	}
	for _, path := range result.Consolidated {
		fmt.Fprintf(out, "wrote  %s\n", path)
	}
	fmt.Fprintf(out, "%d converted, %d failed in %s\n", result.Succeeded(), result.Failed(), result.Duration.Round(time.Millisecond))

	if result.Failed() > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed(), len(result.Files))
	}
	return nil
}
