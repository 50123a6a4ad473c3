package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rayslava/camt053/internal/dateutils"

	"github.com/google/uuid"
)

// DocumentBuilder provides a fluent API for constructing documents.
// The first error encountered is kept and returned by Build.
type DocumentBuilder struct {
	doc Document
	err error
}

// NewDocumentBuilder creates a builder whose document carries the
// camt.053.001.02 namespace.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		doc: Document{Namespace: NamespaceCamt05300102},
	}
}

// WithNamespace overrides the document namespace
func (b *DocumentBuilder) WithNamespace(namespace string) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	if namespace == "" {
		b.err = errors.New("namespace cannot be empty")
		return b
	}
	b.doc.Namespace = namespace
	return b
}

// WithMessageID sets the group header message identifier
func (b *DocumentBuilder) WithMessageID(id string) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	if id == "" {
		b.err = errors.New("message id cannot be empty")
		return b
	}
	b.doc.Statement.GroupHeader.MessageID = id
	return b
}

// WithGeneratedMessageID sets a random message identifier. Dashes are dropped
// so the id fits the 35 character Max35Text limit.
func (b *DocumentBuilder) WithGeneratedMessageID() *DocumentBuilder {
	return b.WithMessageID(strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// WithCreationDateTime sets the group header creation time (ISO 8601 date-time)
func (b *DocumentBuilder) WithCreationDateTime(dateTime string) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	if _, err := dateutils.ParseISODateTime(dateTime); err != nil {
		b.err = fmt.Errorf("group header creation time: %w", err)
		return b
	}
	b.doc.Statement.GroupHeader.CreationDateTime = dateTime
	return b
}

// AddStatement appends a statement; order is kept.
func (b *DocumentBuilder) AddStatement(stmt Statement) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	b.doc.Statement.Statements = append(b.doc.Statement.Statements, stmt)
	return b
}

// Build returns the document or the first error recorded.
func (b *DocumentBuilder) Build() (Document, error) {
	if b.err != nil {
		return Document{}, b.err
	}
	hdr := b.doc.Statement.GroupHeader
	if hdr.MessageID == "" {
		return Document{}, errors.New("message id is required")
	}
	if hdr.CreationDateTime == "" {
		return Document{}, errors.New("group header creation time is required")
	}
	if len(b.doc.Statement.Statements) == 0 {
		return Document{}, errors.New("at least one statement is required")
	}
	return b.doc, nil
}

// StatementBuilder provides a fluent API for constructing statements.
type StatementBuilder struct {
	stmt Statement
	err  error
}

// NewStatementBuilder creates a builder for the statement with the given id.
func NewStatementBuilder(id string) *StatementBuilder {
	b := &StatementBuilder{stmt: Statement{ID: id}}
	if id == "" {
		b.err = errors.New("statement id cannot be empty")
	}
	return b
}

// WithElectronicSequenceNumber sets ElctrncSeqNb
func (b *StatementBuilder) WithElectronicSequenceNumber(n uint64) *StatementBuilder {
	if b.err != nil {
		return b
	}
	b.stmt.ElectronicSequenceNumber = Some(n)
	return b
}

// WithLegalSequenceNumber sets LglSeqNb
func (b *StatementBuilder) WithLegalSequenceNumber(n uint64) *StatementBuilder {
	if b.err != nil {
		return b
	}
	b.stmt.LegalSequenceNumber = Some(n)
	return b
}

// WithCreationDateTime sets the statement creation time (ISO 8601 date-time)
func (b *StatementBuilder) WithCreationDateTime(dateTime string) *StatementBuilder {
	if b.err != nil {
		return b
	}
	if _, err := dateutils.ParseISODateTime(dateTime); err != nil {
		b.err = fmt.Errorf("statement %s creation time: %w", b.stmt.ID, err)
		return b
	}
	b.stmt.CreationDateTime = dateTime
	return b
}

// WithIBAN identifies the statement account by IBAN
func (b *StatementBuilder) WithIBAN(iban string) *StatementBuilder {
	if b.err != nil {
		return b
	}
	if iban == "" {
		b.err = errors.New("IBAN cannot be empty")
		return b
	}
	b.stmt.Account.ID = IBANAccountID(iban)
	return b
}

// WithOtherAccountID identifies the statement account by a proprietary id
func (b *StatementBuilder) WithOtherAccountID(id string) *StatementBuilder {
	if b.err != nil {
		return b
	}
	if id == "" {
		b.err = errors.New("account id cannot be empty")
		return b
	}
	b.stmt.Account.ID = OtherAccountID(id)
	return b
}

// AddBalance appends a balance of the given type code
func (b *StatementBuilder) AddBalance(code string, amount Amount, cdtDbt CreditDebitIndicator, date string) *StatementBuilder {
	if b.err != nil {
		return b
	}
	if code == "" {
		b.err = errors.New("balance type code cannot be empty")
		return b
	}
	if amount.Currency == "" {
		b.err = fmt.Errorf("balance %s: currency cannot be empty", code)
		return b
	}
	if !cdtDbt.IsValid() {
		b.err = fmt.Errorf("balance %s: invalid credit/debit indicator '%s'", code, cdtDbt)
		return b
	}
	if _, err := dateutils.ParseISODate(date); err != nil {
		b.err = fmt.Errorf("balance %s date: %w", code, err)
		return b
	}
	b.stmt.Balances = append(b.stmt.Balances, Balance{
		Code:        code,
		Amount:      amount,
		CreditDebit: cdtDbt,
		Date:        date,
	})
	return b
}

// AddEntry appends an entry; order is kept.
func (b *StatementBuilder) AddEntry(entry Entry) *StatementBuilder {
	if b.err != nil {
		return b
	}
	b.stmt.Entries = append(b.stmt.Entries, entry)
	return b
}

// Build returns the statement or the first error recorded.
func (b *StatementBuilder) Build() (Statement, error) {
	if b.err != nil {
		return Statement{}, b.err
	}
	if b.stmt.CreationDateTime == "" {
		return Statement{}, fmt.Errorf("statement %s: creation time is required", b.stmt.ID)
	}
	if !b.stmt.Account.ID.IsSet() {
		return Statement{}, fmt.Errorf("statement %s: account identifier is required", b.stmt.ID)
	}
	return b.stmt, nil
}

// EntryBuilder provides a fluent API for constructing entries.
type EntryBuilder struct {
	entry     Entry
	hasAmount bool
	err       error
}

// NewEntryBuilder creates a new EntryBuilder
func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{}
}

// WithAmount sets the entry amount from a decimal string
func (b *EntryBuilder) WithAmount(value, currency string) *EntryBuilder {
	if b.err != nil {
		return b
	}
	amount, err := ParseAmount(value, currency)
	if err != nil {
		b.err = fmt.Errorf("entry amount: %w", err)
		return b
	}
	return b.WithAmountValue(amount)
}

// WithAmountValue sets the entry amount
func (b *EntryBuilder) WithAmountValue(amount Amount) *EntryBuilder {
	if b.err != nil {
		return b
	}
	if amount.Currency == "" {
		b.err = errors.New("entry currency cannot be empty")
		return b
	}
	b.entry.Amount = amount
	b.hasAmount = true
	return b
}

// AsCredit marks the entry as a credit (CRDT)
func (b *EntryBuilder) AsCredit() *EntryBuilder {
	if b.err != nil {
		return b
	}
	b.entry.CreditDebit = Credit
	return b
}

// AsDebit marks the entry as a debit (DBIT)
func (b *EntryBuilder) AsDebit() *EntryBuilder {
	if b.err != nil {
		return b
	}
	b.entry.CreditDebit = Debit
	return b
}

// WithStatus sets the entry status, e.g. BOOK or PDNG
func (b *EntryBuilder) WithStatus(status string) *EntryBuilder {
	if b.err != nil {
		return b
	}
	if status == "" {
		b.err = errors.New("entry status cannot be empty")
		return b
	}
	b.entry.Status = status
	return b
}

// WithBookingDate sets the booking date (YYYY-MM-DD)
func (b *EntryBuilder) WithBookingDate(date string) *EntryBuilder {
	if b.err != nil {
		return b
	}
	if _, err := dateutils.ParseISODate(date); err != nil {
		b.err = fmt.Errorf("booking date: %w", err)
		return b
	}
	b.entry.BookingDate = date
	return b
}

// WithValueDate sets the value date (YYYY-MM-DD)
func (b *EntryBuilder) WithValueDate(date string) *EntryBuilder {
	if b.err != nil {
		return b
	}
	if _, err := dateutils.ParseISODate(date); err != nil {
		b.err = fmt.Errorf("value date: %w", err)
		return b
	}
	b.entry.ValueDate = date
	return b
}

// WithAccountServicerReference sets the bank's reference for the entry
func (b *EntryBuilder) WithAccountServicerReference(ref string) *EntryBuilder {
	if b.err != nil {
		return b
	}
	if ref == "" {
		b.err = errors.New("account servicer reference cannot be empty")
		return b
	}
	b.entry.AccountServicerReference = ref
	return b
}

// WithBankTransactionCode sets the domain/family/sub-family code
func (b *EntryBuilder) WithBankTransactionCode(domain, family, subFamily string) *EntryBuilder {
	if b.err != nil {
		return b
	}
	if domain == "" || family == "" || subFamily == "" {
		b.err = fmt.Errorf("bank transaction code needs domain, family and sub-family, got '%s/%s/%s'",
			domain, family, subFamily)
		return b
	}
	b.entry.BankTransactionCode = BankTransactionCode{
		Domain:    domain,
		Family:    family,
		SubFamily: subFamily,
	}
	return b
}

// AddDetails appends transaction details; order is kept.
func (b *EntryBuilder) AddDetails(details ...TransactionDetails) *EntryBuilder {
	if b.err != nil {
		return b
	}
	b.entry.Details = append(b.entry.Details, details...)
	return b
}

// Build returns the entry or the first error recorded.
func (b *EntryBuilder) Build() (Entry, error) {
	if b.err != nil {
		return Entry{}, b.err
	}
	switch {
	case !b.hasAmount:
		return Entry{}, errors.New("entry amount is required")
	case b.entry.CreditDebit == "":
		return Entry{}, errors.New("entry credit/debit indicator is required")
	case b.entry.Status == "":
		return Entry{}, errors.New("entry status is required")
	case b.entry.BookingDate == "":
		return Entry{}, errors.New("entry booking date is required")
	case b.entry.ValueDate == "":
		return Entry{}, errors.New("entry value date is required")
	case b.entry.AccountServicerReference == "":
		return Entry{}, errors.New("entry account servicer reference is required")
	case b.entry.BankTransactionCode.Domain == "":
		return Entry{}, errors.New("entry bank transaction code is required")
	}
	return b.entry, nil
}

// TransactionDetailsBuilder provides a fluent API for constructing transaction details.
type TransactionDetailsBuilder struct {
	details   TransactionDetails
	hasAmount bool
	err       error
}

// NewTransactionDetailsBuilder creates a new TransactionDetailsBuilder
func NewTransactionDetailsBuilder() *TransactionDetailsBuilder {
	return &TransactionDetailsBuilder{}
}

// WithReference sets Refs/AcctSvcrRef
func (b *TransactionDetailsBuilder) WithReference(ref string) *TransactionDetailsBuilder {
	if b.err != nil {
		return b
	}
	if ref == "" {
		b.err = errors.New("transaction reference cannot be empty")
		return b
	}
	b.details.Reference = Some(ref)
	return b
}

// WithAmount sets the transaction amount from a decimal string
func (b *TransactionDetailsBuilder) WithAmount(value, currency string) *TransactionDetailsBuilder {
	if b.err != nil {
		return b
	}
	amount, err := ParseAmount(value, currency)
	if err != nil {
		b.err = fmt.Errorf("transaction amount: %w", err)
		return b
	}
	if currency == "" {
		b.err = errors.New("transaction currency cannot be empty")
		return b
	}
	b.details.Amount = amount
	b.hasAmount = true
	return b
}

// WithDebtor sets the debtor name and address lines
func (b *TransactionDetailsBuilder) WithDebtor(name string, addressLines ...string) *TransactionDetailsBuilder {
	if b.err != nil {
		return b
	}
	party, err := newParty("debtor", name, addressLines)
	if err != nil {
		b.err = err
		return b
	}
	b.details.Debtor = Some(party)
	return b
}

// WithCreditor sets the creditor name and address lines
func (b *TransactionDetailsBuilder) WithCreditor(name string, addressLines ...string) *TransactionDetailsBuilder {
	if b.err != nil {
		return b
	}
	party, err := newParty("creditor", name, addressLines)
	if err != nil {
		b.err = err
		return b
	}
	b.details.Creditor = Some(party)
	return b
}

// WithRemittanceInformation sets the unstructured remittance text
func (b *TransactionDetailsBuilder) WithRemittanceInformation(text string) *TransactionDetailsBuilder {
	if b.err != nil {
		return b
	}
	b.details.RemittanceInformation = Some(text)
	return b
}

// Build returns the transaction details or the first error recorded.
func (b *TransactionDetailsBuilder) Build() (TransactionDetails, error) {
	if b.err != nil {
		return TransactionDetails{}, b.err
	}
	if !b.hasAmount {
		return TransactionDetails{}, errors.New("transaction amount is required")
	}
	return b.details, nil
}

func newParty(role, name string, addressLines []string) (Party, error) {
	if name == "" {
		return Party{}, fmt.Errorf("%s name cannot be empty", role)
	}
	party := Party{Name: name}
	if len(addressLines) > 0 {
		party.PostalAddress = append([]string(nil), addressLines...)
	}
	return party, nil
}
