// Package codec converts camt.053.001.02 documents between the models package
// and XML text.
//
// Element names come from the table in tags.go rather than from struct tags,
// so the model stays free of serialization concerns. The encoder and decoder
// are stateless apart from their options and are safe to use from several
// goroutines on separate documents.
package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/rayslava/camt053/internal/models"
	"github.com/rayslava/camt053/internal/parsererror"
)

// Encoder writes camt.053 documents to an output stream.
type Encoder struct {
	w      io.Writer
	prefix string
	indent string
	header bool
}

// EncodeOption configures an Encoder.
type EncodeOption func(*Encoder)

// WithIndent makes the encoder start each element on a new line beginning
// with prefix followed by one copy of indent per nesting level.
func WithIndent(prefix, indent string) EncodeOption {
	return func(e *Encoder) {
		e.prefix = prefix
		e.indent = indent
	}
}

// WithXMLHeader controls whether the <?xml ...?> declaration is written.
// It is written by default.
func WithXMLHeader(enabled bool) EncodeOption {
	return func(e *Encoder) {
		e.header = enabled
	}
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{w: w, header: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes the XML form of doc. The document is rendered in full before
// anything reaches the writer, so a failed Encode leaves the writer untouched.
func (e *Encoder) Encode(doc *models.Document) error {
	if err := Validate(doc); err != nil {
		return &parsererror.EncodingError{Err: err}
	}

	var buf bytes.Buffer
	if e.header {
		buf.WriteString(xml.Header)
	}

	xe := xml.NewEncoder(&buf)
	xe.Indent(e.prefix, e.indent)
	st := &encodeState{enc: xe}
	st.document(doc)
	if st.err != nil {
		return st.err
	}
	if err := xe.Close(); err != nil {
		return &parsererror.EncodingError{Err: err}
	}
	if e.indent != "" || e.prefix != "" {
		buf.WriteByte('\n')
	}

	if _, err := e.w.Write(buf.Bytes()); err != nil {
		return &parsererror.EncodingError{Err: fmt.Errorf("failed to write document: %w", err)}
	}
	return nil
}

// Marshal returns the XML encoding of doc, including the XML declaration.
func Marshal(doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent works like Marshal but indents nested elements.
func MarshalIndent(doc *models.Document, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, WithIndent(prefix, indent)).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeState keeps the first error and turns every later call into a no-op,
// so the element writers below read as a flat sequence.
type encodeState struct {
	enc  *xml.Encoder
	path []string
	err  error
}

func (s *encodeState) document(doc *models.Document) {
	ns := doc.Namespace
	if ns == "" {
		ns = models.NamespaceCamt05300102
	}
	s.checkText(AttrXMLNS, ns)
	s.token(xml.StartElement{
		Name: xml.Name{Local: TagDocument},
		Attr: []xml.Attr{{Name: xml.Name{Local: AttrXMLNS}, Value: ns}},
	})
	s.token(xml.StartElement{Name: xml.Name{Local: TagEnvelope}})

	hdr := doc.Statement.GroupHeader
	s.open(TagGrpHdr)
	s.leaf(TagMsgID, hdr.MessageID)
	s.leaf(TagCreDtTm, hdr.CreationDateTime)
	s.close(TagGrpHdr)

	for i := range doc.Statement.Statements {
		s.statement(&doc.Statement.Statements[i])
	}

	s.token(xml.EndElement{Name: xml.Name{Local: TagEnvelope}})
	s.token(xml.EndElement{Name: xml.Name{Local: TagDocument}})
}

func (s *encodeState) statement(stmt *models.Statement) {
	s.open(TagStmt)
	s.leaf(TagID, stmt.ID)
	if n, ok := stmt.ElectronicSequenceNumber.Get(); ok {
		s.leaf(TagElctrncSq, strconv.FormatUint(n, 10))
	}
	if n, ok := stmt.LegalSequenceNumber.Get(); ok {
		s.leaf(TagLglSeqNb, strconv.FormatUint(n, 10))
	}
	s.leaf(TagCreDtTm, stmt.CreationDateTime)

	s.open(TagAcct)
	s.open(TagID)
	if iban, ok := stmt.Account.ID.IBAN(); ok {
		s.leaf(TagIBAN, iban)
	} else if other, ok := stmt.Account.ID.Other(); ok {
		s.leaf(TagOthr, other)
	}
	s.close(TagID)
	s.close(TagAcct)

	for _, bal := range stmt.Balances {
		s.open(TagBal)
		s.open(TagTp)
		s.open(TagCdOrPrtry)
		s.leaf(TagCd, bal.Code)
		s.close(TagCdOrPrtry)
		s.close(TagTp)
		s.amount(TagAmt, bal.Amount)
		s.leaf(TagCdtDbtInd, string(bal.CreditDebit))
		s.open(TagDt)
		s.leaf(TagDt, bal.Date)
		s.close(TagDt)
		s.close(TagBal)
	}

	for i := range stmt.Entries {
		s.entry(&stmt.Entries[i])
	}
	s.close(TagStmt)
}

func (s *encodeState) entry(entry *models.Entry) {
	s.open(TagNtry)
	s.amount(TagAmt, entry.Amount)
	s.leaf(TagCdtDbtInd, string(entry.CreditDebit))
	s.leaf(TagSts, entry.Status)
	s.open(TagBookgDt)
	s.leaf(TagDt, entry.BookingDate)
	s.close(TagBookgDt)
	s.open(TagValDt)
	s.leaf(TagDt, entry.ValueDate)
	s.close(TagValDt)
	s.leaf(TagAcctSvcrRef, entry.AccountServicerReference)

	code := entry.BankTransactionCode
	s.open(TagBkTxCd)
	s.open(TagDomn)
	s.leaf(TagCd, code.Domain)
	s.open(TagFmly)
	s.leaf(TagCd, code.Family)
	s.leaf(TagSubFmlyCd, code.SubFamily)
	s.close(TagFmly)
	s.close(TagDomn)
	s.close(TagBkTxCd)

	if len(entry.Details) > 0 {
		s.open(TagNtryDtls)
		for i := range entry.Details {
			s.transactionDetails(&entry.Details[i])
		}
		s.close(TagNtryDtls)
	}
	s.close(TagNtry)
}

func (s *encodeState) transactionDetails(tx *models.TransactionDetails) {
	s.open(TagTxDtls)
	if ref, ok := tx.Reference.Get(); ok {
		s.open(TagRefs)
		s.leaf(TagAcctSvcrRef, ref)
		s.close(TagRefs)
	}
	s.open(TagAmtDtls)
	s.amount(TagTxAmt, tx.Amount)
	s.close(TagAmtDtls)

	debtor, hasDebtor := tx.Debtor.Get()
	creditor, hasCreditor := tx.Creditor.Get()
	if hasDebtor || hasCreditor {
		s.open(TagRltdPties)
		if hasDebtor {
			s.party(TagDbtr, debtor)
		}
		if hasCreditor {
			s.party(TagCdtr, creditor)
		}
		s.close(TagRltdPties)
	}

	if info, ok := tx.RemittanceInformation.Get(); ok {
		s.open(TagRmtInf)
		s.leaf(TagUstrd, info)
		s.close(TagRmtInf)
	}
	s.close(TagTxDtls)
}

func (s *encodeState) party(tag string, p models.Party) {
	s.open(tag)
	s.leaf(TagNm, p.Name)
	if len(p.PostalAddress) > 0 {
		s.open(TagPstlAdr)
		for _, line := range p.PostalAddress {
			s.leaf(TagAdrLine, line)
		}
		s.close(TagPstlAdr)
	}
	s.close(tag)
}

// amount writes <tag Ccy="...">value</tag>.
func (s *encodeState) amount(tag string, a models.Amount) {
	s.checkText(Path(tag, AttrCcy), a.Currency)
	s.openWith(tag, xml.Attr{Name: xml.Name{Local: AttrCcy}, Value: a.Currency})
	s.chars(a.Text())
	s.close(tag)
}

func (s *encodeState) leaf(tag, value string) {
	s.checkText(tag, value)
	s.open(tag)
	s.chars(value)
	s.close(tag)
}

func (s *encodeState) open(tag string) {
	s.openWith(tag)
}

func (s *encodeState) openWith(tag string, attrs ...xml.Attr) {
	s.token(xml.StartElement{Name: xml.Name{Local: tag}, Attr: attrs})
	s.path = append(s.path, tag)
}

func (s *encodeState) close(tag string) {
	s.token(xml.EndElement{Name: xml.Name{Local: tag}})
	if len(s.path) > 0 {
		s.path = s.path[:len(s.path)-1]
	}
}

func (s *encodeState) chars(value string) {
	s.token(xml.CharData(value))
}

func (s *encodeState) token(t xml.Token) {
	if s.err != nil {
		return
	}
	if err := s.enc.EncodeToken(t); err != nil {
		s.err = &parsererror.EncodingError{Element: Path(s.path...), Err: err}
	}
}

// checkText rejects text that XML 1.0 cannot carry. encoding/xml would
// silently replace such characters with U+FFFD.
func (s *encodeState) checkText(tag, value string) {
	if s.err != nil {
		return
	}
	element := Path(append(append([]string(nil), s.path...), tag)...)
	if !utf8.ValidString(value) {
		s.err = &parsererror.EncodingError{Element: element, Err: fmt.Errorf("invalid UTF-8 in %q", value)}
		return
	}
	for _, r := range value {
		if !isXMLChar(r) {
			s.err = &parsererror.EncodingError{Element: element, Err: fmt.Errorf("character %U is not allowed in XML", r)}
			return
		}
	}
}

// isXMLChar reports whether r is in the Char production of XML 1.0.
func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
