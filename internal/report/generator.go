// Package report renders statement summaries for the inspect command.
package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"text/tabwriter"

	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// ReportGenerator renders summaries in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport summarizes doc and renders it in the given format.
func (g *ReportGenerator) GenerateReport(doc *models.Document, format string) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("cannot generate report for nil document")
	}
	summary := Summarize(doc)
	g.logger.Debug("Generating report",
		logging.F(logging.FieldMessageID, summary.MessageID),
		logging.F(logging.FieldStatementCount, len(summary.Statements)),
		logging.F(logging.FieldFormat, format))
	return g.Render(summary, format)
}

// Render writes summary in the given format (text, json, yaml or xml).
func (g *ReportGenerator) Render(summary *Summary, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return g.generateTextReport(summary)
	case FormatJSON:
		return g.generateJSONReport(summary)
	case FormatYAML:
		return g.generateYAMLReport(summary)
	case FormatXML:
		return g.generateXMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(summary *Summary) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(jsonReport, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(summary *Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

// xmlSummary names the root element of the XML report.
type xmlSummary struct {
	XMLName xml.Name `xml:"Summary"`
	*Summary
}

func (g *ReportGenerator) generateXMLReport(summary *Summary) ([]byte, error) {
	xmlReport, err := xml.MarshalIndent(xmlSummary{Summary: summary}, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(xmlReport) + "\n"), nil
}

func (g *ReportGenerator) generateTextReport(summary *Summary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Message:    %s\n", summary.MessageID)
	fmt.Fprintf(&buf, "Created:    %s\n", summary.CreationDateTime)
	fmt.Fprintf(&buf, "Namespace:  %s\n", summary.Namespace)
	fmt.Fprintf(&buf, "Statements: %d\n", len(summary.Statements))

	for _, stmt := range summary.Statements {
		fmt.Fprintf(&buf, "\nStatement %s (%s %s)\n", stmt.ID, stmt.AccountKind, stmt.Account)
		fmt.Fprintf(&buf, "  Created: %s\n", stmt.CreationDateTime)
		if stmt.ElectronicSequenceNumber != nil {
			fmt.Fprintf(&buf, "  Electronic sequence: %d\n", *stmt.ElectronicSequenceNumber)
		}
		if stmt.LegalSequenceNumber != nil {
			fmt.Fprintf(&buf, "  Legal sequence: %d\n", *stmt.LegalSequenceNumber)
		}
		fmt.Fprintf(&buf, "  Entries: %d (%d transaction details)\n", stmt.Entries, stmt.TransactionDetails)

		tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		if len(stmt.Balances) > 0 {
			fmt.Fprintln(tw, "  Balance\tDate\tAmount\tCcy\tCdtDbt")
			for _, b := range stmt.Balances {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", b.Code, b.Date, b.Amount, b.Currency, b.CreditDebit)
			}
		}
		if len(stmt.Totals) > 0 {
			fmt.Fprintln(tw, "  Ccy\tCredits\tDebits\tNet")
			for _, t := range stmt.Totals {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", t.Currency, t.Credits, t.Debits, t.Net)
			}
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("failed to render text report: %w", err)
		}
	}
	return buf.Bytes(), nil
}
