// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rayslava/camt053/internal/fileutils"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"
	"github.com/rayslava/camt053/internal/validation"
	"github.com/rayslava/camt053/internal/xmlutils"
)

// LoadStatement resolves inputFile, optionally probes its structure and
// decodes it.
func LoadStatement(inputFile string, validate bool, log logging.Logger) (*models.Document, error) {
	path, err := validation.IsValidInputFile(inputFile)
	if err != nil {
		return nil, err
	}
	log = log.WithField(logging.FieldInputFile, path)

	if validate {
		log.Info("Validating format...")
		probe, err := xmlutils.ProbeFile(path)
		if err != nil {
			return nil, fmt.Errorf("error validating file: %w", err)
		}
		log.Info("Validation successful.",
			logging.F(logging.FieldStatementCount, probe.Statements),
			logging.F(logging.FieldEntryCount, probe.Entries))
	}

	doc, err := fileutils.ReadStatementFile(path)
	if err != nil {
		return nil, fmt.Errorf("error decoding statement: %w", err)
	}
	log.Debug("Decoded statement",
		logging.F(logging.FieldMessageID, doc.Statement.GroupHeader.MessageID),
		logging.F(logging.FieldStatementCount, len(doc.Statement.Statements)))
	return doc, nil
}

// ResolveOutputPath returns output when set. Otherwise, when dir is set,
// it names a file in dir after inputFile with ext; else "" meaning stdout.
func ResolveOutputPath(output, dir, inputFile, ext string) string {
	if output != "" || dir == "" {
		return output
	}
	return filepath.Join(dir, fileutils.ReplaceExtension(filepath.Base(inputFile), ext))
}

// WriteOutput writes data to outputFile, or to stdout when outputFile is
// empty or "-".
func WriteOutput(stdout io.Writer, outputFile string, data []byte, log logging.Logger) error {
	if outputFile == "" || outputFile == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := fileutils.WriteFile(outputFile, data, models.PermissionReportFile); err != nil {
		return err
	}
	log.Info("Output written", logging.F(logging.FieldOutputFile, outputFile))
	return nil
}
