// Package export converts camt.053 statements to CSV or YAML definitions.
package export

import (
	"bytes"
	"fmt"

	"github.com/rayslava/camt053/cmd/common"
	"github.com/rayslava/camt053/cmd/root"
	internalcommon "github.com/rayslava/camt053/internal/common"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/validation"

	"github.com/spf13/cobra"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

type options struct {
	root.CommonFlags
	Format     string
	Delimiter  string
	DateFormat string
	NoHeaders  bool
}

// Cmd represents the export command
var Cmd = NewCmd()

// NewCmd builds the export command.
func NewCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a camt.053 statement to CSV or a YAML definition",
		Long: `Export the entries of a camt.053 statement to CSV, one row per transaction
detail, or write the whole statement back as a YAML definition that generate
accepts.

Examples:
  camt053 export -i statement.xml -o entries.csv --delimiter ";"
  camt053 export -i statement.xml -o statement.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	root.AddCommonFlags(cmd, &opts.CommonFlags, "camt.053 XML file", "Output file (default stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", FormatCSV, "Output format (csv or yaml)")
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", "", "CSV delimiter (default from csv.delimiter)")
	cmd.Flags().StringVar(&opts.DateFormat, "date-format", "", "CSV date format, YYYY-MM-DD or DD.MM.YYYY (default from csv.date_format)")
	cmd.Flags().BoolVar(&opts.NoHeaders, "no-headers", false, "Omit the CSV header line")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	c := root.GetContainer()
	log := c.GetLogger()

	doc, err := common.LoadStatement(opts.Input, opts.Validate, log)
	if err != nil {
		return err
	}

	switch opts.Format {
	case FormatYAML:
		if opts.Output == "" || opts.Output == "-" {
			return fmt.Errorf("yaml export needs an output file (-o)")
		}
		if err := c.GetStore().SaveDefinition(opts.Output, doc); err != nil {
			return fmt.Errorf("error saving definition: %w", err)
		}
		log.Info("Definition exported", logging.F(logging.FieldOutputFile, opts.Output))
		return nil
	case FormatCSV:
	default:
		return fmt.Errorf("unsupported export format: %s. Supported formats are 'csv', 'yaml'", opts.Format)
	}

	csvOpts := c.CSVOptions()
	if opts.Delimiter != "" {
		if csvOpts.Delimiter, err = validation.IsValidCSVDelimiter(opts.Delimiter); err != nil {
			return err
		}
	}
	if opts.DateFormat != "" {
		if err := validation.IsValidDateFormat(opts.DateFormat); err != nil {
			return err
		}
		csvOpts.DateFormat = opts.DateFormat
	}
	if opts.NoHeaders {
		csvOpts.IncludeHeaders = false
	}

	output := common.ResolveOutputPath(opts.Output, c.GetConfig().Output.Directory, opts.Input, ".csv")
	if output == "" || output == "-" {
		var buf bytes.Buffer
		if _, err := internalcommon.WriteEntriesCSV(&buf, doc, csvOpts); err != nil {
			return err
		}
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	return internalcommon.WriteEntriesCSVFile(output, doc, csvOpts, log)
}
