// Package generate builds camt.053 XML from YAML statement definitions.
package generate

import (
	"bytes"
	"fmt"

	"github.com/rayslava/camt053/cmd/common"
	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/internal/codec"
	"github.com/rayslava/camt053/internal/fileutils"
	"github.com/rayslava/camt053/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type options struct {
	root.CommonFlags
	NewMessageID bool
	Indent       string
	NoHeader     bool
}

// Cmd represents the generate command
var Cmd = NewCmd()

// NewCmd builds the generate command.
func NewCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate camt.053 XML from a YAML statement definition",
		Long: `Generate a camt.053.001.02 document from a YAML statement definition.

The definition is looked up in the working directory, then in the configured
definitions directory, then in ~/.config/camt053. The XML goes to the output
file, or to stdout when no output is given.

Example:
  camt053 generate -i statement.yaml -o statement.xml --new-msg-id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	root.AddCommonFlags(cmd, &opts.CommonFlags, "YAML statement definition", "Output XML file (default stdout)")
	cmd.Flags().BoolVar(&opts.NewMessageID, "new-msg-id", false, "Replace the message id with a random UUID")
	cmd.Flags().StringVar(&opts.Indent, "indent", "", "Indentation per level (default from output.indent)")
	cmd.Flags().BoolVar(&opts.NoHeader, "no-header", false, "Omit the <?xml ...?> declaration")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	c := root.GetContainer()
	log := c.GetLogger()
	if opts.Input == "" {
		return fmt.Errorf("input definition is required (-i)")
	}

	doc, err := c.GetStore().LoadDefinition(opts.Input)
	if err != nil {
		return fmt.Errorf("error loading definition: %w", err)
	}
	if opts.NewMessageID {
		doc.Statement.GroupHeader.MessageID = uuid.NewString()
	}

	encodeOpts := c.EncodeOptions()
	if cmd.Flags().Changed("indent") {
		encodeOpts = append(encodeOpts, codec.WithIndent("", opts.Indent))
	}
	if opts.NoHeader {
		encodeOpts = append(encodeOpts, codec.WithXMLHeader(false))
	}

	output := common.ResolveOutputPath(opts.Output, c.GetConfig().Output.Directory, opts.Input, ".xml")
	log = log.WithFields(
		logging.F(logging.FieldInputFile, opts.Input),
		logging.F(logging.FieldMessageID, doc.Statement.GroupHeader.MessageID))

	if output == "" || output == "-" {
		var buf bytes.Buffer
		if err := codec.NewEncoder(&buf, encodeOpts...).Encode(doc); err != nil {
			return fmt.Errorf("error encoding statement: %w", err)
		}
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := fileutils.GenerateFile(output, doc, encodeOpts...); err != nil {
		return fmt.Errorf("error generating statement: %w", err)
	}
	log.Info("Statement generated",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldStatementCount, len(doc.Statement.Statements)))
	return nil
}
