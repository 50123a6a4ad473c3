// Package testutil holds statement fixtures shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rayslava/camt053/internal/fileutils"
	"github.com/rayslava/camt053/internal/models"
	"github.com/rayslava/camt053/internal/store"

	"github.com/stretchr/testify/require"
)

// DefinitionYAML is the msg123 statement: a credit of 1000.00 split
// 600.00 + 400.00 and a debit of 1500.00 split into three payments.
const DefinitionYAML = `message_id: msg123
creation_date_time: "2024-05-16T16:05:00"
statements:
  - id: "01"
    electronic_sequence_number: 12
    creation_date_time: "2024-05-16T16:05:00"
    iban: DE89370400440532013000
    balances:
      - code: OPBD
        amount: "2500.00"
        currency: EUR
        credit_debit: CRDT
        date: "2024-05-15"
      - code: CLBD
        amount: "2000.00"
        currency: EUR
        credit_debit: CRDT
        date: "2024-05-16"
    entries:
      - amount: "1000.00"
        currency: EUR
        credit_debit: CRDT
        status: BOOK
        booking_date: "2024-05-16"
        value_date: "2024-05-16"
        account_servicer_reference: REF-CR
        domain: PMNT
        family: RCDT
        sub_family: ESCT
        details:
          - reference: E2E-1
            amount: "600.00"
            debtor:
              name: ACME Corp
              address: [Main Street 1, 10115 Berlin]
            remittance_information: Invoice 1
          - reference: E2E-2
            amount: "400.00"
            debtor:
              name: ACME Corp
      - amount: "1500.00"
        currency: EUR
        credit_debit: DBIT
        status: BOOK
        booking_date: "2024-05-16"
        value_date: "2024-05-16"
        account_servicer_reference: REF-DB
        domain: PMNT
        family: ICDT
        sub_family: ESCT
        details:
          - amount: "500.00"
            creditor:
              name: Landlord
          - amount: "500.00"
            creditor:
              name: Utility
          - amount: "500.00"
            creditor:
              name: Insurance
`

// Document parses DefinitionYAML.
func Document(t testing.TB) *models.Document {
	t.Helper()
	doc, err := store.ParseDefinition([]byte(DefinitionYAML))
	require.NoError(t, err)
	return doc
}

// WriteDefinition writes DefinitionYAML to dir/name and returns the path.
func WriteDefinition(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(DefinitionYAML), 0600))
	return path
}

// WriteStatement encodes the fixture document to dir/name and returns the
// path.
func WriteStatement(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, fileutils.GenerateFile(path, Document(t)))
	return path
}
