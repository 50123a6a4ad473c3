package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntryBuilder() *EntryBuilder {
	return NewEntryBuilder().
		WithAmount("1000.00", "EUR").
		AsCredit().
		WithStatus(StatusBooked).
		WithBookingDate("2024-05-16").
		WithValueDate("2024-05-16").
		WithAccountServicerReference("REF-1").
		WithBankTransactionCode(DomainPayments, "RCDT", "ESCT")
}

func TestDocumentBuilder(t *testing.T) {
	stmt, err := NewStatementBuilder("01").
		WithCreationDateTime("2024-05-16T16:05:00").
		WithIBAN("DE89370400440532013000").
		Build()
	require.NoError(t, err)

	doc, err := NewDocumentBuilder().
		WithMessageID("msg123").
		WithCreationDateTime("2024-05-16T16:05:00").
		AddStatement(stmt).
		Build()
	require.NoError(t, err)

	assert.Equal(t, NamespaceCamt05300102, doc.Namespace)
	assert.Equal(t, "msg123", doc.Statement.GroupHeader.MessageID)
	require.Len(t, doc.Statement.Statements, 1)
	assert.Equal(t, "01", doc.Statement.Statements[0].ID)
}

func TestDocumentBuilder_Errors(t *testing.T) {
	stmt := Statement{ID: "01"}

	tests := []struct {
		name    string
		builder *DocumentBuilder
		errMsg  string
	}{
		{
			name:    "missing message id",
			builder: NewDocumentBuilder().WithCreationDateTime("2024-05-16T16:05:00").AddStatement(stmt),
			errMsg:  "message id is required",
		},
		{
			name:    "empty message id",
			builder: NewDocumentBuilder().WithMessageID(""),
			errMsg:  "message id cannot be empty",
		},
		{
			name:    "bad creation time",
			builder: NewDocumentBuilder().WithMessageID("m").WithCreationDateTime("16.05.2024"),
			errMsg:  "group header creation time",
		},
		{
			name:    "missing creation time",
			builder: NewDocumentBuilder().WithMessageID("m").AddStatement(stmt),
			errMsg:  "creation time is required",
		},
		{
			name:    "no statement",
			builder: NewDocumentBuilder().WithMessageID("m").WithCreationDateTime("2024-05-16T16:05:00"),
			errMsg:  "at least one statement",
		},
		{
			name:    "empty namespace",
			builder: NewDocumentBuilder().WithNamespace(""),
			errMsg:  "namespace cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDocumentBuilder_FirstErrorWins(t *testing.T) {
	_, err := NewDocumentBuilder().
		WithMessageID("").
		WithCreationDateTime("garbage").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message id cannot be empty")
}

func TestDocumentBuilder_GeneratedMessageID(t *testing.T) {
	b := NewDocumentBuilder().WithGeneratedMessageID()
	require.NoError(t, b.err)
	id := b.doc.Statement.GroupHeader.MessageID
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")

	other := NewDocumentBuilder().WithGeneratedMessageID()
	assert.NotEqual(t, id, other.doc.Statement.GroupHeader.MessageID)
}

func TestDocumentBuilder_WithNamespace(t *testing.T) {
	b := NewDocumentBuilder().WithNamespace("urn:example")
	assert.Equal(t, "urn:example", b.doc.Namespace)
}

func TestStatementBuilder(t *testing.T) {
	entry, err := validEntryBuilder().Build()
	require.NoError(t, err)

	stmt, err := NewStatementBuilder("01").
		WithElectronicSequenceNumber(5).
		WithLegalSequenceNumber(0).
		WithCreationDateTime("2024-05-16T16:05:00+02:00").
		WithOtherAccountID("0532013000").
		AddBalance(BalanceOpeningBooked, MustParseAmount("100.00", "EUR"), Credit, "2024-05-15").
		AddBalance(BalanceClosingBooked, MustParseAmount("1100.00", "EUR"), Credit, "2024-05-16").
		AddEntry(entry).
		Build()
	require.NoError(t, err)

	n, ok := stmt.ElectronicSequenceNumber.Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(5), n)
	n, ok = stmt.LegalSequenceNumber.Get()
	assert.True(t, ok, "zero legal sequence number must still be present")
	assert.Equal(t, uint64(0), n)

	other, ok := stmt.Account.ID.Other()
	assert.True(t, ok)
	assert.Equal(t, "0532013000", other)

	require.Len(t, stmt.Balances, 2)
	assert.Equal(t, BalanceOpeningBooked, stmt.Balances[0].Code)
	assert.Equal(t, BalanceClosingBooked, stmt.Balances[1].Code)
	require.Len(t, stmt.Entries, 1)
}

func TestStatementBuilder_AccountChoiceIsExclusive(t *testing.T) {
	stmt, err := NewStatementBuilder("01").
		WithCreationDateTime("2024-05-16T16:05:00").
		WithOtherAccountID("X-1").
		WithIBAN("DE89370400440532013000").
		Build()
	require.NoError(t, err)

	_, isOther := stmt.Account.ID.Other()
	assert.False(t, isOther)
	iban, isIBAN := stmt.Account.ID.IBAN()
	assert.True(t, isIBAN)
	assert.Equal(t, "DE89370400440532013000", iban)
}

func TestStatementBuilder_Errors(t *testing.T) {
	amount := MustParseAmount("1.00", "EUR")

	tests := []struct {
		name    string
		builder *StatementBuilder
		errMsg  string
	}{
		{
			name:    "empty id",
			builder: NewStatementBuilder(""),
			errMsg:  "statement id cannot be empty",
		},
		{
			name:    "missing creation time",
			builder: NewStatementBuilder("01").WithIBAN("DE89370400440532013000"),
			errMsg:  "creation time is required",
		},
		{
			name:    "missing account",
			builder: NewStatementBuilder("01").WithCreationDateTime("2024-05-16T16:05:00"),
			errMsg:  "account identifier is required",
		},
		{
			name:    "bad balance date",
			builder: NewStatementBuilder("01").AddBalance(BalanceOpeningBooked, amount, Credit, "15.05.2024"),
			errMsg:  "balance OPBD date",
		},
		{
			name:    "bad balance indicator",
			builder: NewStatementBuilder("01").AddBalance(BalanceOpeningBooked, amount, "XXXX", "2024-05-15"),
			errMsg:  "invalid credit/debit indicator",
		},
		{
			name:    "balance without currency",
			builder: NewStatementBuilder("01").AddBalance(BalanceOpeningBooked, Amount{}, Credit, "2024-05-15"),
			errMsg:  "currency cannot be empty",
		},
		{
			name:    "balance without code",
			builder: NewStatementBuilder("01").AddBalance("", amount, Credit, "2024-05-15"),
			errMsg:  "balance type code cannot be empty",
		},
		{
			name:    "empty IBAN",
			builder: NewStatementBuilder("01").WithIBAN(""),
			errMsg:  "IBAN cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEntryBuilder(t *testing.T) {
	details, err := NewTransactionDetailsBuilder().
		WithReference("TX-1").
		WithAmount("600.00", "EUR").
		WithDebtor("Alice", "Main Street 1", "10115 Berlin").
		WithRemittanceInformation("Invoice 42").
		Build()
	require.NoError(t, err)

	entry, err := validEntryBuilder().AddDetails(details).Build()
	require.NoError(t, err)

	assert.Equal(t, "1000.00", entry.Amount.Text())
	assert.True(t, entry.IsCredit())
	assert.Equal(t, "PMNT/RCDT/ESCT", entry.BankTransactionCode.String())
	require.Len(t, entry.Details, 1)

	debtor, ok := entry.Details[0].Debtor.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"Main Street 1", "10115 Berlin"}, debtor.PostalAddress)
	assert.False(t, entry.Details[0].Creditor.IsPresent())
}

func TestEntryBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *EntryBuilder
		errMsg  string
	}{
		{
			name:    "missing amount",
			builder: NewEntryBuilder().AsDebit(),
			errMsg:  "entry amount is required",
		},
		{
			name:    "malformed amount",
			builder: NewEntryBuilder().WithAmount("12,50", "EUR"),
			errMsg:  "entry amount",
		},
		{
			name:    "missing currency",
			builder: NewEntryBuilder().WithAmount("12.50", ""),
			errMsg:  "entry currency cannot be empty",
		},
		{
			name:    "missing indicator",
			builder: NewEntryBuilder().WithAmount("1.00", "EUR"),
			errMsg:  "credit/debit indicator is required",
		},
		{
			name:    "missing status",
			builder: NewEntryBuilder().WithAmount("1.00", "EUR").AsDebit(),
			errMsg:  "entry status is required",
		},
		{
			name:    "bad booking date",
			builder: validEntryBuilder().WithBookingDate("2024/05/16"),
			errMsg:  "booking date",
		},
		{
			name:    "bad value date",
			builder: validEntryBuilder().WithValueDate(""),
			errMsg:  "value date",
		},
		{
			name:    "incomplete bank transaction code",
			builder: validEntryBuilder().WithBankTransactionCode("PMNT", "", "ESCT"),
			errMsg:  "bank transaction code needs",
		},
		{
			name: "missing reference",
			builder: NewEntryBuilder().WithAmount("1.00", "EUR").AsDebit().WithStatus(StatusPending).
				WithBookingDate("2024-05-16").WithValueDate("2024-05-16"),
			errMsg: "account servicer reference is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTransactionDetailsBuilder_Errors(t *testing.T) {
	_, err := NewTransactionDetailsBuilder().WithDebtor("Alice").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction amount is required")

	_, err = NewTransactionDetailsBuilder().WithAmount("1.00", "EUR").WithCreditor("").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creditor name cannot be empty")

	_, err = NewTransactionDetailsBuilder().WithReference("").Build()
	require.Error(t, err)

	_, err = NewTransactionDetailsBuilder().WithAmount("1.00", "").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction currency cannot be empty")
}

func TestTransactionDetailsBuilder_PartyWithoutAddress(t *testing.T) {
	details, err := NewTransactionDetailsBuilder().
		WithAmount("5.00", "EUR").
		WithCreditor("Shop").
		Build()
	require.NoError(t, err)

	creditor, ok := details.Creditor.Get()
	require.True(t, ok)
	assert.Nil(t, creditor.PostalAddress)
	assert.False(t, details.Reference.IsPresent())
	assert.False(t, details.RemittanceInformation.IsPresent())
}
