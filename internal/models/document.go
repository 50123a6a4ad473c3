// Package models provides the camt.053.001.02 document model.
//
// The types mirror the XML element tree one to one. They hold data only; the
// mapping to element names lives in the codec package.
package models

import "fmt"

// Document is the root of a camt.053 message.
type Document struct {
	// Namespace is written as the xmlns attribute of the root element.
	Namespace string
	Statement BankToCustomerStatement
}

// NewDocument returns a Document with the camt.053.001.02 namespace.
func NewDocument(header GroupHeader, statements ...Statement) Document {
	return Document{
		Namespace: NamespaceCamt05300102,
		Statement: BankToCustomerStatement{
			GroupHeader: header,
			Statements:  statements,
		},
	}
}

// BankToCustomerStatement is the BkToCstmrStmt envelope. It carries one or
// more statements.
type BankToCustomerStatement struct {
	GroupHeader GroupHeader
	Statements  []Statement
}

// GroupHeader identifies the message.
type GroupHeader struct {
	MessageID        string
	CreationDateTime string
}

// Statement is a single account statement (Stmt).
type Statement struct {
	ID                       string
	ElectronicSequenceNumber Optional[uint64]
	LegalSequenceNumber      Optional[uint64]
	CreationDateTime         string
	Account                  Account
	Balances                 []Balance
	Entries                  []Entry
}

// Account is the statement account (Acct).
type Account struct {
	ID AccountID
}

// AccountIDKind tells which identifier an AccountID carries.
type AccountIDKind int

const (
	AccountIDUnset AccountIDKind = iota
	AccountIDIBAN
	AccountIDOther
)

func (k AccountIDKind) String() string {
	switch k {
	case AccountIDIBAN:
		return "IBAN"
	case AccountIDOther:
		return "Othr"
	default:
		return "unset"
	}
}

// AccountID is either an IBAN or a free-form identifier, never both.
// Use IBANAccountID or OtherAccountID to build one.
type AccountID struct {
	kind  AccountIDKind
	value string
}

// IBANAccountID returns an account identifier holding an IBAN.
func IBANAccountID(iban string) AccountID {
	return AccountID{kind: AccountIDIBAN, value: iban}
}

// OtherAccountID returns an account identifier holding a proprietary id.
func OtherAccountID(id string) AccountID {
	return AccountID{kind: AccountIDOther, value: id}
}

// Kind returns which identifier is held.
func (a AccountID) Kind() AccountIDKind {
	return a.kind
}

// Value returns the identifier text regardless of its kind.
func (a AccountID) Value() string {
	return a.value
}

// IBAN returns the IBAN when the identifier is one.
func (a AccountID) IBAN() (string, bool) {
	return a.value, a.kind == AccountIDIBAN
}

// Other returns the proprietary identifier when the identifier is one.
func (a AccountID) Other() (string, bool) {
	return a.value, a.kind == AccountIDOther
}

// IsSet reports whether an identifier has been assigned.
func (a AccountID) IsSet() bool {
	return a.kind != AccountIDUnset
}

func (a AccountID) String() string {
	if !a.IsSet() {
		return ""
	}
	return fmt.Sprintf("%s:%s", a.kind, a.value)
}

// Balance is a statement balance (Bal), e.g. opening or closing booked.
type Balance struct {
	Code        string
	Amount      Amount
	CreditDebit CreditDebitIndicator
	Date        string
}

// Entry is one booked or pending line on the statement (Ntry).
type Entry struct {
	Amount                   Amount
	CreditDebit              CreditDebitIndicator
	Status                   string
	BookingDate              string
	ValueDate                string
	AccountServicerReference string
	BankTransactionCode      BankTransactionCode
	Details                  []TransactionDetails
}

// IsCredit returns true if the entry is a credit transaction
func (e Entry) IsCredit() bool {
	return e.CreditDebit == Credit
}

// BankTransactionCode is the three level domain/family/sub-family code.
type BankTransactionCode struct {
	Domain    string
	Family    string
	SubFamily string
}

func (c BankTransactionCode) String() string {
	return c.Domain + "/" + c.Family + "/" + c.SubFamily
}

// TransactionDetails breaks an entry down into an underlying transaction (TxDtls).
type TransactionDetails struct {
	Reference             Optional[string]
	Amount                Amount
	Debtor                Optional[Party]
	Creditor              Optional[Party]
	RemittanceInformation Optional[string]
}

// Party is a debtor or creditor with its postal address lines.
type Party struct {
	Name          string
	PostalAddress []string
}

// CreditDebitIndicator is CRDT or DBIT.
type CreditDebitIndicator string

// ParseCreditDebitIndicator converts s to an indicator, rejecting anything
// other than CRDT and DBIT.
func ParseCreditDebitIndicator(s string) (CreditDebitIndicator, error) {
	switch CreditDebitIndicator(s) {
	case Credit, Debit:
		return CreditDebitIndicator(s), nil
	default:
		return "", fmt.Errorf("credit/debit indicator must be %s or %s, got '%s'", Credit, Debit, s)
	}
}

// IsValid reports whether the indicator is CRDT or DBIT.
func (c CreditDebitIndicator) IsValid() bool {
	return c == Credit || c == Debit
}
