// Package common flattens camt.053 documents into CSV rows.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rayslava/camt053/internal/currencyutils"
	"github.com/rayslava/camt053/internal/dateutils"
	"github.com/rayslava/camt053/internal/fileutils"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"
	"github.com/rayslava/camt053/internal/xmlutils"

	"github.com/gocarina/gocsv"
)

// Date formats accepted in CSVOptions.DateFormat.
const (
	DateFormatISO   = "YYYY-MM-DD"
	DateFormatSwiss = "DD.MM.YYYY"
)

// EntryRow is one CSV line: an entry joined with one of its transaction
// details. Entries without details produce a single row with the
// transaction columns empty.
type EntryRow struct {
	MessageID                string `csv:"MessageId"`
	StatementID              string `csv:"StatementId"`
	Account                  string `csv:"Account"`
	BookingDate              string `csv:"BookingDate"`
	ValueDate                string `csv:"ValueDate"`
	CreditDebit              string `csv:"CreditDebit"`
	Status                   string `csv:"Status"`
	Amount                   string `csv:"Amount"`
	Currency                 string `csv:"Currency"`
	SignedAmount             string `csv:"SignedAmount"`
	BankTransactionCode      string `csv:"BankTransactionCode"`
	AccountServicerReference string `csv:"AccountServicerReference"`
	TransactionReference     string `csv:"TransactionReference"`
	TransactionAmount        string `csv:"TransactionAmount"`
	TransactionCurrency      string `csv:"TransactionCurrency"`
	Debtor                   string `csv:"Debtor"`
	DebtorAddress            string `csv:"DebtorAddress"`
	Creditor                 string `csv:"Creditor"`
	CreditorAddress          string `csv:"CreditorAddress"`
	RemittanceInformation    string `csv:"RemittanceInformation"`
}

// CSVOptions controls how rows are written.
type CSVOptions struct {
	Delimiter      rune
	DateFormat     string
	IncludeHeaders bool
}

// DefaultCSVOptions returns comma separated output with ISO dates and a
// header line.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ',', DateFormat: DateFormatISO, IncludeHeaders: true}
}

// EntryRows flattens doc in document order.
func EntryRows(doc *models.Document, dateFormat string) []EntryRow {
	var rows []EntryRow
	msgID := doc.Statement.GroupHeader.MessageID
	for _, stmt := range doc.Statement.Statements {
		for _, entry := range stmt.Entries {
			base := EntryRow{
				MessageID:                msgID,
				StatementID:              stmt.ID,
				Account:                  stmt.Account.ID.Value(),
				BookingDate:              formatDate(entry.BookingDate, dateFormat),
				ValueDate:                formatDate(entry.ValueDate, dateFormat),
				CreditDebit:              string(entry.CreditDebit),
				Status:                   entry.Status,
				Amount:                   entry.Amount.Text(),
				Currency:                 entry.Amount.Currency,
				SignedAmount:             currencyutils.FormatDecimal(currencyutils.SignedAmount(entry.Amount.Value, string(entry.CreditDebit))),
				BankTransactionCode:      entry.BankTransactionCode.String(),
				AccountServicerReference: entry.AccountServicerReference,
			}
			if len(entry.Details) == 0 {
				rows = append(rows, base)
				continue
			}
			for _, tx := range entry.Details {
				row := base
				row.TransactionReference = tx.Reference.OrElse("")
				row.TransactionAmount = tx.Amount.Text()
				row.TransactionCurrency = tx.Amount.Currency
				if p, ok := tx.Debtor.Get(); ok {
					row.Debtor = xmlutils.CleanText(p.Name)
					row.DebtorAddress = joinAddress(p.PostalAddress)
				}
				if p, ok := tx.Creditor.Get(); ok {
					row.Creditor = xmlutils.CleanText(p.Name)
					row.CreditorAddress = joinAddress(p.PostalAddress)
				}
				row.RemittanceInformation = xmlutils.CleanText(tx.RemittanceInformation.OrElse(""))
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// WriteEntriesCSV writes the rows of doc to w and returns how many were
// written.
func WriteEntriesCSV(w io.Writer, doc *models.Document, opts CSVOptions) (int, error) {
	if doc == nil {
		return 0, errors.New("cannot write nil document to CSV")
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	rows := EntryRows(doc, opts.DateFormat)
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = opts.Delimiter
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	var err error
	if opts.IncludeHeaders {
		err = gocsv.MarshalCSV(rows, safe)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(rows, safe)
	}
	if err != nil {
		return 0, fmt.Errorf("error writing CSV data: %w", err)
	}
	return len(rows), nil
}

// WriteEntriesCSVFile writes the rows of doc to csvFile, creating parent
// directories as needed.
func WriteEntriesCSVFile(csvFile string, doc *models.Document, opts CSVOptions, logger logging.Logger) error {
	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}

	n, err := WriteEntriesCSV(file, doc, opts)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("error closing CSV file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	logger.Info("Wrote entries to CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldRowCount, n),
		logging.F(logging.FieldDelimiter, string(opts.Delimiter)))
	return nil
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Debug("Read CSV file", logging.F(logging.FieldFile, filePath), logging.F(logging.FieldRowCount, len(rows)))
	return rows, nil
}

func formatDate(iso, format string) string {
	if format != DateFormatSwiss {
		return iso
	}
	t, err := dateutils.ParseISODate(iso)
	if err != nil {
		return iso
	}
	return dateutils.ToSwissFormat(t)
}

func joinAddress(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += ", "
		}
		out += xmlutils.CleanText(line)
	}
	return out
}
