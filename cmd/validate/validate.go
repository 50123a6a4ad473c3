// Package validate checks camt.053 files without converting them.
package validate

import (
	"errors"
	"fmt"

	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/internal/fileutils"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/validation"
	"github.com/rayslava/camt053/internal/xmlutils"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = NewCmd()

// NewCmd builds the validate command.
func NewCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that files are well-formed camt.053 statements",
		Long: `Validate runs a structural probe and a full decode on each file and prints
one line per file. It exits with an error when any file is invalid.

Example:
  camt053 validate statements/*.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if input != "" {
				files = append([]string{input}, files...)
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files given")
			}
			return run(cmd, files)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "camt.053 XML file")
	return cmd
}

func run(cmd *cobra.Command, files []string) error {
	log := root.GetContainer().GetLogger()
	out := cmd.OutOrStdout()

	var errs []error
	for _, file := range files {
		if err := validateFile(file); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			fmt.Fprintf(out, "INVALID %s: %v\n", file, err)
			log.Warn("Invalid statement file", logging.F(logging.FieldFile, file), logging.F(logging.FieldError, err.Error()))
			continue
		}
		fmt.Fprintf(out, "OK      %s\n", file)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files invalid: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}

func validateFile(file string) error {
	path, err := validation.IsValidInputFile(file)
	if err != nil {
		return err
	}
	probe, err := xmlutils.ProbeFile(path)
	if err != nil {
		return err
	}
	doc, err := fileutils.ReadStatementFile(path)
	if err != nil {
		return err
	}
	entries := 0
	for _, stmt := range doc.Statement.Statements {
		entries += len(stmt.Entries)
	}
	if entries != probe.Entries || len(doc.Statement.Statements) != probe.Statements {
		return fmt.Errorf("probe found %d statements and %d entries, decoder %d and %d",
			probe.Statements, probe.Entries, len(doc.Statement.Statements), entries)
	}
	return nil
}
