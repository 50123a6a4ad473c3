package store

import (
	"fmt"

	"github.com/rayslava/camt053/internal/models"
)

// Definition is the YAML form of a statement message. Amounts are kept as
// strings so "1000.00" keeps both decimals.
type Definition struct {
	MessageID        string                `yaml:"message_id,omitempty"`
	CreationDateTime string                `yaml:"creation_date_time"`
	Namespace        string                `yaml:"namespace,omitempty"`
	Statements       []StatementDefinition `yaml:"statements"`
}

type StatementDefinition struct {
	ID                       string              `yaml:"id"`
	ElectronicSequenceNumber *uint64             `yaml:"electronic_sequence_number,omitempty"`
	LegalSequenceNumber      *uint64             `yaml:"legal_sequence_number,omitempty"`
	CreationDateTime         string              `yaml:"creation_date_time"`
	IBAN                     string              `yaml:"iban,omitempty"`
	OtherAccountID           string              `yaml:"other_account_id,omitempty"`
	Balances                 []BalanceDefinition `yaml:"balances,omitempty"`
	Entries                  []EntryDefinition   `yaml:"entries,omitempty"`
}

type BalanceDefinition struct {
	Code        string `yaml:"code"`
	Amount      string `yaml:"amount"`
	Currency    string `yaml:"currency"`
	CreditDebit string `yaml:"credit_debit"`
	Date        string `yaml:"date"`
}

type EntryDefinition struct {
	Amount                   string              `yaml:"amount"`
	Currency                 string              `yaml:"currency"`
	CreditDebit              string              `yaml:"credit_debit"`
	Status                   string              `yaml:"status"`
	BookingDate              string              `yaml:"booking_date"`
	ValueDate                string              `yaml:"value_date"`
	AccountServicerReference string              `yaml:"account_servicer_reference"`
	Domain                   string              `yaml:"domain"`
	Family                   string              `yaml:"family"`
	SubFamily                string              `yaml:"sub_family"`
	Details                  []DetailsDefinition `yaml:"details,omitempty"`
}

// DetailsDefinition describes one TxDtls. Currency defaults to the
// currency of the enclosing entry.
type DetailsDefinition struct {
	Reference             *string          `yaml:"reference,omitempty"`
	Amount                string           `yaml:"amount"`
	Currency              string           `yaml:"currency,omitempty"`
	Debtor                *PartyDefinition `yaml:"debtor,omitempty"`
	Creditor              *PartyDefinition `yaml:"creditor,omitempty"`
	RemittanceInformation *string          `yaml:"remittance_information,omitempty"`
}

type PartyDefinition struct {
	Name    string   `yaml:"name"`
	Address []string `yaml:"address,omitempty"`
}

// ToDocument builds and validates the document described by d. A missing
// message id is replaced by a generated one.
func (d *Definition) ToDocument() (*models.Document, error) {
	b := models.NewDocumentBuilder()
	if d.Namespace != "" {
		b.WithNamespace(d.Namespace)
	}
	if d.MessageID == "" {
		b.WithGeneratedMessageID()
	} else {
		b.WithMessageID(d.MessageID)
	}
	b.WithCreationDateTime(d.CreationDateTime)

	for i := range d.Statements {
		stmt, err := d.Statements[i].toStatement()
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		b.AddStatement(stmt)
	}

	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *StatementDefinition) toStatement() (models.Statement, error) {
	b := models.NewStatementBuilder(s.ID).WithCreationDateTime(s.CreationDateTime)
	if s.ElectronicSequenceNumber != nil {
		b.WithElectronicSequenceNumber(*s.ElectronicSequenceNumber)
	}
	if s.LegalSequenceNumber != nil {
		b.WithLegalSequenceNumber(*s.LegalSequenceNumber)
	}

	switch {
	case s.IBAN != "" && s.OtherAccountID != "":
		return models.Statement{}, fmt.Errorf("statement %s: iban and other_account_id are mutually exclusive", s.ID)
	case s.IBAN != "":
		b.WithIBAN(s.IBAN)
	case s.OtherAccountID != "":
		b.WithOtherAccountID(s.OtherAccountID)
	}

	for _, bal := range s.Balances {
		amount, err := models.ParseAmount(bal.Amount, bal.Currency)
		if err != nil {
			return models.Statement{}, fmt.Errorf("balance %s: %w", bal.Code, err)
		}
		b.AddBalance(bal.Code, amount, models.CreditDebitIndicator(bal.CreditDebit), bal.Date)
	}

	for i := range s.Entries {
		entry, err := s.Entries[i].toEntry()
		if err != nil {
			return models.Statement{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
		b.AddEntry(entry)
	}
	return b.Build()
}

func (e *EntryDefinition) toEntry() (models.Entry, error) {
	b := models.NewEntryBuilder().
		WithAmount(e.Amount, e.Currency).
		WithStatus(e.Status).
		WithBookingDate(e.BookingDate).
		WithValueDate(e.ValueDate).
		WithAccountServicerReference(e.AccountServicerReference).
		WithBankTransactionCode(e.Domain, e.Family, e.SubFamily)

	switch models.CreditDebitIndicator(e.CreditDebit) {
	case models.Credit:
		b.AsCredit()
	case models.Debit:
		b.AsDebit()
	default:
		return models.Entry{}, fmt.Errorf("credit_debit must be %s or %s, got '%s'", models.Credit, models.Debit, e.CreditDebit)
	}

	for i, det := range e.Details {
		currency := det.Currency
		if currency == "" {
			currency = e.Currency
		}
		db := models.NewTransactionDetailsBuilder().WithAmount(det.Amount, currency)
		if det.Reference != nil {
			db.WithReference(*det.Reference)
		}
		if det.Debtor != nil {
			db.WithDebtor(det.Debtor.Name, det.Debtor.Address...)
		}
		if det.Creditor != nil {
			db.WithCreditor(det.Creditor.Name, det.Creditor.Address...)
		}
		if det.RemittanceInformation != nil {
			db.WithRemittanceInformation(*det.RemittanceInformation)
		}
		details, err := db.Build()
		if err != nil {
			return models.Entry{}, fmt.Errorf("details %d: %w", i+1, err)
		}
		b.AddDetails(details)
	}
	return b.Build()
}

// FromDocument converts doc to its YAML definition.
func FromDocument(doc *models.Document) *Definition {
	d := &Definition{
		MessageID:        doc.Statement.GroupHeader.MessageID,
		CreationDateTime: doc.Statement.GroupHeader.CreationDateTime,
	}
	if doc.Namespace != models.NamespaceCamt05300102 {
		d.Namespace = doc.Namespace
	}

	for _, stmt := range doc.Statement.Statements {
		sd := StatementDefinition{
			ID:               stmt.ID,
			CreationDateTime: stmt.CreationDateTime,
		}
		if n, ok := stmt.ElectronicSequenceNumber.Get(); ok {
			sd.ElectronicSequenceNumber = &n
		}
		if n, ok := stmt.LegalSequenceNumber.Get(); ok {
			sd.LegalSequenceNumber = &n
		}
		if iban, ok := stmt.Account.ID.IBAN(); ok {
			sd.IBAN = iban
		} else if other, ok := stmt.Account.ID.Other(); ok {
			sd.OtherAccountID = other
		}

		for _, bal := range stmt.Balances {
			sd.Balances = append(sd.Balances, BalanceDefinition{
				Code:        bal.Code,
				Amount:      bal.Amount.Text(),
				Currency:    bal.Amount.Currency,
				CreditDebit: string(bal.CreditDebit),
				Date:        bal.Date,
			})
		}
		for _, entry := range stmt.Entries {
			sd.Entries = append(sd.Entries, entryDefinition(entry))
		}
		d.Statements = append(d.Statements, sd)
	}
	return d
}

func entryDefinition(entry models.Entry) EntryDefinition {
	ed := EntryDefinition{
		Amount:                   entry.Amount.Text(),
		Currency:                 entry.Amount.Currency,
		CreditDebit:              string(entry.CreditDebit),
		Status:                   entry.Status,
		BookingDate:              entry.BookingDate,
		ValueDate:                entry.ValueDate,
		AccountServicerReference: entry.AccountServicerReference,
		Domain:                   entry.BankTransactionCode.Domain,
		Family:                   entry.BankTransactionCode.Family,
		SubFamily:                entry.BankTransactionCode.SubFamily,
	}
	for _, tx := range entry.Details {
		dd := DetailsDefinition{Amount: tx.Amount.Text()}
		if tx.Amount.Currency != entry.Amount.Currency {
			dd.Currency = tx.Amount.Currency
		}
		if ref, ok := tx.Reference.Get(); ok {
			dd.Reference = &ref
		}
		if p, ok := tx.Debtor.Get(); ok {
			dd.Debtor = &PartyDefinition{Name: p.Name, Address: p.PostalAddress}
		}
		if p, ok := tx.Creditor.Get(); ok {
			dd.Creditor = &PartyDefinition{Name: p.Name, Address: p.PostalAddress}
		}
		if info, ok := tx.RemittanceInformation.Get(); ok {
			dd.RemittanceInformation = &info
		}
		ed.Details = append(ed.Details, dd)
	}
	return ed
}
