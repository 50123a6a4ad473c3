package report

import (
	"sort"

	"github.com/rayslava/camt053/internal/currencyutils"
	"github.com/rayslava/camt053/internal/models"

	"github.com/shopspring/decimal"
)

// Summary is the overview of a camt.053 message printed by inspect.
type Summary struct {
	MessageID        string             `json:"messageId" yaml:"messageId" xml:"MessageId"`
	CreationDateTime string             `json:"creationDateTime" yaml:"creationDateTime" xml:"CreationDateTime"`
	Namespace        string             `json:"namespace" yaml:"namespace" xml:"Namespace"`
	Statements       []StatementSummary `json:"statements" yaml:"statements" xml:"Statement"`
}

// StatementSummary describes one statement.
type StatementSummary struct {
	ID                       string           `json:"id" yaml:"id" xml:"Id"`
	Account                  string           `json:"account" yaml:"account" xml:"Account"`
	AccountKind              string           `json:"accountKind" yaml:"accountKind" xml:"AccountKind"`
	ElectronicSequenceNumber *uint64          `json:"electronicSequenceNumber,omitempty" yaml:"electronicSequenceNumber,omitempty" xml:"ElectronicSequenceNumber,omitempty"`
	LegalSequenceNumber      *uint64          `json:"legalSequenceNumber,omitempty" yaml:"legalSequenceNumber,omitempty" xml:"LegalSequenceNumber,omitempty"`
	CreationDateTime         string           `json:"creationDateTime" yaml:"creationDateTime" xml:"CreationDateTime"`
	Balances                 []BalanceSummary `json:"balances,omitempty" yaml:"balances,omitempty" xml:"Balance"`
	Entries                  int              `json:"entries" yaml:"entries" xml:"Entries"`
	TransactionDetails       int              `json:"transactionDetails" yaml:"transactionDetails" xml:"TransactionDetails"`
	Totals                   []CurrencyTotal  `json:"totals,omitempty" yaml:"totals,omitempty" xml:"Total"`
}

// BalanceSummary is a statement balance rendered as text.
type BalanceSummary struct {
	Code        string `json:"code" yaml:"code" xml:"Code"`
	Amount      string `json:"amount" yaml:"amount" xml:"Amount"`
	Currency    string `json:"currency" yaml:"currency" xml:"Currency"`
	CreditDebit string `json:"creditDebit" yaml:"creditDebit" xml:"CreditDebit"`
	Date        string `json:"date" yaml:"date" xml:"Date"`
}

// CurrencyTotal sums the entries of one currency.
type CurrencyTotal struct {
	Currency string `json:"currency" yaml:"currency" xml:"Currency"`
	Credits  string `json:"credits" yaml:"credits" xml:"Credits"`
	Debits   string `json:"debits" yaml:"debits" xml:"Debits"`
	Net      string `json:"net" yaml:"net" xml:"Net"`
}

// Summarize builds a Summary of doc.
func Summarize(doc *models.Document) *Summary {
	s := &Summary{
		MessageID:        doc.Statement.GroupHeader.MessageID,
		CreationDateTime: doc.Statement.GroupHeader.CreationDateTime,
		Namespace:        doc.Namespace,
	}
	for _, stmt := range doc.Statement.Statements {
		s.Statements = append(s.Statements, summarizeStatement(stmt))
	}
	return s
}

// EntryCount returns the number of entries over all statements.
func (s *Summary) EntryCount() int {
	n := 0
	for _, stmt := range s.Statements {
		n += stmt.Entries
	}
	return n
}

func summarizeStatement(stmt models.Statement) StatementSummary {
	out := StatementSummary{
		ID:               stmt.ID,
		Account:          stmt.Account.ID.Value(),
		AccountKind:      stmt.Account.ID.Kind().String(),
		CreationDateTime: stmt.CreationDateTime,
		Entries:          len(stmt.Entries),
	}
	if n, ok := stmt.ElectronicSequenceNumber.Get(); ok {
		out.ElectronicSequenceNumber = &n
	}
	if n, ok := stmt.LegalSequenceNumber.Get(); ok {
		out.LegalSequenceNumber = &n
	}

	for _, bal := range stmt.Balances {
		out.Balances = append(out.Balances, BalanceSummary{
			Code:        bal.Code,
			Amount:      bal.Amount.Text(),
			Currency:    bal.Amount.Currency,
			CreditDebit: string(bal.CreditDebit),
			Date:        bal.Date,
		})
	}

	type sums struct{ credits, debits decimal.Decimal }
	totals := map[string]*sums{}
	for _, entry := range stmt.Entries {
		out.TransactionDetails += len(entry.Details)
		t, ok := totals[entry.Amount.Currency]
		if !ok {
			t = &sums{}
			totals[entry.Amount.Currency] = t
		}
		if entry.IsCredit() {
			t.credits = t.credits.Add(entry.Amount.Value)
		} else {
			t.debits = t.debits.Add(entry.Amount.Value)
		}
	}

	currencies := make([]string, 0, len(totals))
	for ccy := range totals {
		currencies = append(currencies, ccy)
	}
	sort.Strings(currencies)
	for _, ccy := range currencies {
		t := totals[ccy]
		out.Totals = append(out.Totals, CurrencyTotal{
			Currency: ccy,
			Credits:  currencyutils.FormatDecimal(t.credits),
			Debits:   currencyutils.FormatDecimal(t.debits),
			Net:      currencyutils.FormatDecimal(t.credits.Sub(t.debits)),
		})
	}
	return out
}
