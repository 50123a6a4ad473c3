// Package inspect prints summaries of camt.053 statements.
package inspect

import (
	"fmt"
	"strings"

	"github.com/rayslava/camt053/cmd/common"
	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/report"
	"github.com/rayslava/camt053/internal/validation"
	"github.com/rayslava/camt053/internal/xmlutils"

	"github.com/spf13/cobra"
)

type options struct {
	root.CommonFlags
	Format string
	XPath  string
}

// Cmd represents the inspect command
var Cmd = NewCmd()

// NewCmd builds the inspect command.
func NewCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a camt.053 statement",
		Long: `Print the message id, statements, balances and per-currency totals of a
camt.053 statement as text, json, yaml or xml.

With --xpath the file is not decoded; the values selected by the expression
are printed one per line instead.

Examples:
  camt053 inspect -i statement.xml --format json
  camt053 inspect -i statement.xml --xpath /Document/BkToCstmrStmt/Stmt/Ntry/AcctSvcrRef`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	root.AddCommonFlags(cmd, &opts.CommonFlags, "camt.053 XML file", "Output file (default stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", report.FormatText, "Output format (text, json, yaml, xml)")
	cmd.Flags().StringVar(&opts.XPath, "xpath", "", "Print the values selected by an XPath expression")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	c := root.GetContainer()
	log := c.GetLogger()

	if opts.XPath != "" {
		path, err := validation.IsValidInputFile(opts.Input)
		if err != nil {
			return err
		}
		values, err := xmlutils.ExtractWithXPath(path, opts.XPath)
		if err != nil {
			return fmt.Errorf("error evaluating xpath: %w", err)
		}
		log.Debug("XPath evaluated", logging.F("xpath", opts.XPath), logging.F("matches", len(values)))
		out := ""
		if len(values) > 0 {
			out = strings.Join(values, "\n") + "\n"
		}
		return common.WriteOutput(cmd.OutOrStdout(), opts.Output, []byte(out), log)
	}

	if err := validation.IsValidOutputFormat(opts.Format); err != nil {
		return err
	}
	doc, err := common.LoadStatement(opts.Input, opts.Validate, log)
	if err != nil {
		return err
	}
	data, err := c.GetReportGenerator().GenerateReport(doc, opts.Format)
	if err != nil {
		return err
	}
	return common.WriteOutput(cmd.OutOrStdout(), opts.Output, data, log)
}
