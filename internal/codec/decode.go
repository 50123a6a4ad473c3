package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rayslava/camt053/internal/dateutils"
	"github.com/rayslava/camt053/internal/models"
	"github.com/rayslava/camt053/internal/parsererror"

	"golang.org/x/net/html/charset"
)

// Decoder reads a camt.053 document from an input stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a decoder that reads from r. Documents declaring a
// non UTF-8 encoding are transcoded before parsing.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads one document. Elements the model does not know are skipped.
// On error no document is returned.
func (d *Decoder) Decode() (*models.Document, error) {
	dec := xml.NewDecoder(d.r)
	dec.CharsetReader = charset.NewReaderLabel

	root, err := readTree(dec)
	if err != nil {
		return nil, err
	}
	return parseDocument(root)
}

// Unmarshal parses data into a Document.
func Unmarshal(data []byte) (*models.Document, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}

// node is one element of the parsed tree. Text holds the character data found
// directly inside the element.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     []byte
	children []*node
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name.Local == name {
			return c
		}
	}
	return nil
}

func (n *node) all(name string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.name.Local == name {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) raw() string {
	return string(n.text)
}

func (n *node) trimmed() string {
	return strings.TrimSpace(string(n.text))
}

// readTree consumes tokens up to the end of the first root element.
func readTree(dec *xml.Decoder) (*node, error) {
	var root *node
	var stack []*node
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if root == nil {
					return nil, &parsererror.UnsupportedStructureError{Expected: TagDocument}
				}
				err = io.ErrUnexpectedEOF
			}
			return nil, &parsererror.MalformedValueError{Element: stackPath(stack), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Attr}
			if root == nil {
				if t.Name.Local != TagDocument {
					return nil, &parsererror.UnsupportedStructureError{Expected: TagDocument, Actual: t.Name.Local}
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return root, nil
			}
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text = append(top.text, t...)
			}
		}
	}
}

// stackPath names the element being read when the token stream broke, in
// the same envelope relative form used by the other errors.
func stackPath(stack []*node) string {
	names := make([]string, 0, len(stack))
	for _, n := range stack {
		names = append(names, n.name.Local)
	}
	rel := names
	for len(rel) > 0 && (rel[0] == TagDocument || rel[0] == TagEnvelope) {
		rel = rel[1:]
	}
	if len(rel) == 0 && len(names) > 0 {
		return names[len(names)-1]
	}
	if len(rel) == 0 {
		return TagDocument
	}
	return Path(rel...)
}

func parseDocument(root *node) (*models.Document, error) {
	ns := root.name.Space
	if ns == "" {
		ns = models.NamespaceCamt05300102
	}

	if len(root.children) == 0 {
		return nil, &parsererror.UnsupportedStructureError{Expected: TagEnvelope}
	}
	env := root.children[0]
	if env.name.Local != TagEnvelope {
		return nil, &parsererror.UnsupportedStructureError{Expected: TagEnvelope, Actual: env.name.Local}
	}

	grpHdr, err := requiredChild(env, TagEnvelope, TagGrpHdr)
	if err != nil {
		return nil, err
	}
	msgID, err := requiredText(grpHdr, TagGrpHdr, TagMsgID)
	if err != nil {
		return nil, err
	}
	created, err := dateTimeValue(grpHdr, TagGrpHdr, TagCreDtTm)
	if err != nil {
		return nil, err
	}

	stmtNodes := env.all(TagStmt)
	if len(stmtNodes) == 0 {
		return nil, &parsererror.MissingFieldError{Container: TagEnvelope, Field: TagStmt}
	}
	statements := make([]models.Statement, 0, len(stmtNodes))
	for _, n := range stmtNodes {
		stmt, err := parseStatement(n)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	doc := models.NewDocument(models.GroupHeader{MessageID: msgID, CreationDateTime: created}, statements...)
	doc.Namespace = ns
	return &doc, nil
}

func parseStatement(n *node) (models.Statement, error) {
	var stmt models.Statement
	var err error

	if stmt.ID, err = requiredText(n, TagStmt, TagID); err != nil {
		return stmt, err
	}
	if stmt.ElectronicSequenceNumber, err = sequenceNumber(n, TagElctrncSq); err != nil {
		return stmt, err
	}
	if stmt.LegalSequenceNumber, err = sequenceNumber(n, TagLglSeqNb); err != nil {
		return stmt, err
	}
	if stmt.CreationDateTime, err = dateTimeValue(n, TagStmt, TagCreDtTm); err != nil {
		return stmt, err
	}
	if stmt.Account.ID, err = accountID(n); err != nil {
		return stmt, err
	}

	balPath := Path(TagStmt, TagBal)
	for _, b := range n.all(TagBal) {
		bal, err := parseBalance(b, balPath)
		if err != nil {
			return stmt, err
		}
		stmt.Balances = append(stmt.Balances, bal)
	}

	for _, e := range n.all(TagNtry) {
		entry, err := parseEntry(e, Path(TagStmt, TagNtry))
		if err != nil {
			return stmt, err
		}
		stmt.Entries = append(stmt.Entries, entry)
	}
	return stmt, nil
}

func accountID(stmt *node) (models.AccountID, error) {
	idNode, idPath, err := descend(stmt, TagStmt, TagAcct, TagID)
	if err != nil {
		return models.AccountID{}, err
	}
	iban := idNode.child(TagIBAN)
	other := idNode.child(TagOthr)
	switch {
	case iban != nil && other != nil:
		return models.AccountID{}, &parsererror.MalformedValueError{
			Element: idPath,
			Err:     fmt.Errorf("%s and %s are mutually exclusive", TagIBAN, TagOthr),
		}
	case iban != nil:
		if iban.raw() == "" {
			return models.AccountID{}, &parsererror.MissingFieldError{Container: idPath, Field: TagIBAN}
		}
		return models.IBANAccountID(iban.raw()), nil
	case other != nil:
		if other.raw() == "" {
			return models.AccountID{}, &parsererror.MissingFieldError{Container: idPath, Field: TagOthr}
		}
		return models.OtherAccountID(other.raw()), nil
	default:
		return models.AccountID{}, &parsererror.MissingFieldError{Container: idPath, Field: TagIBAN + "|" + TagOthr}
	}
}

func parseBalance(n *node, path string) (models.Balance, error) {
	var bal models.Balance
	var err error

	if bal.Code, err = requiredText(n, path, TagTp, TagCdOrPrtry, TagCd); err != nil {
		return bal, err
	}
	if bal.Amount, err = amountValue(n, path, TagAmt); err != nil {
		return bal, err
	}
	if bal.CreditDebit, err = indicatorValue(n, path); err != nil {
		return bal, err
	}
	if bal.Date, err = dateValue(n, path, TagDt, TagDt); err != nil {
		return bal, err
	}
	return bal, nil
}

func parseEntry(n *node, path string) (models.Entry, error) {
	var entry models.Entry
	var err error

	if entry.Amount, err = amountValue(n, path, TagAmt); err != nil {
		return entry, err
	}
	if entry.CreditDebit, err = indicatorValue(n, path); err != nil {
		return entry, err
	}
	if entry.Status, err = requiredText(n, path, TagSts); err != nil {
		return entry, err
	}
	if entry.BookingDate, err = dateValue(n, path, TagBookgDt, TagDt); err != nil {
		return entry, err
	}
	if entry.ValueDate, err = dateValue(n, path, TagValDt, TagDt); err != nil {
		return entry, err
	}
	if entry.AccountServicerReference, err = requiredText(n, path, TagAcctSvcrRef); err != nil {
		return entry, err
	}

	code := &entry.BankTransactionCode
	if code.Domain, err = requiredText(n, path, TagBkTxCd, TagDomn, TagCd); err != nil {
		return entry, err
	}
	if code.Family, err = requiredText(n, path, TagBkTxCd, TagDomn, TagFmly, TagCd); err != nil {
		return entry, err
	}
	if code.SubFamily, err = requiredText(n, path, TagBkTxCd, TagDomn, TagFmly, TagSubFmlyCd); err != nil {
		return entry, err
	}

	txPath := Path(path, TagNtryDtls, TagTxDtls)
	for _, dtls := range n.all(TagNtryDtls) {
		for _, tx := range dtls.all(TagTxDtls) {
			details, err := parseTransactionDetails(tx, txPath)
			if err != nil {
				return entry, err
			}
			entry.Details = append(entry.Details, details)
		}
	}
	return entry, nil
}

func parseTransactionDetails(n *node, path string) (models.TransactionDetails, error) {
	var tx models.TransactionDetails

	if refs := n.child(TagRefs); refs != nil {
		if ref := refs.child(TagAcctSvcrRef); ref != nil {
			tx.Reference = models.Some(ref.raw())
		}
	}

	amtDtls, err := requiredChild(n, path, TagAmtDtls)
	if err != nil {
		return tx, err
	}
	if tx.Amount, err = amountValue(amtDtls, Path(path, TagAmtDtls), TagTxAmt); err != nil {
		return tx, err
	}

	if parties := n.child(TagRltdPties); parties != nil {
		partiesPath := Path(path, TagRltdPties)
		if dbtr := parties.child(TagDbtr); dbtr != nil {
			p, err := parseParty(dbtr, Path(partiesPath, TagDbtr))
			if err != nil {
				return tx, err
			}
			tx.Debtor = models.Some(p)
		}
		if cdtr := parties.child(TagCdtr); cdtr != nil {
			p, err := parseParty(cdtr, Path(partiesPath, TagCdtr))
			if err != nil {
				return tx, err
			}
			tx.Creditor = models.Some(p)
		}
	}

	if rmt := n.child(TagRmtInf); rmt != nil {
		if ustrd := rmt.child(TagUstrd); ustrd != nil {
			tx.RemittanceInformation = models.Some(ustrd.raw())
		}
	}
	return tx, nil
}

func parseParty(n *node, path string) (models.Party, error) {
	name, err := requiredText(n, path, TagNm)
	if err != nil {
		return models.Party{}, err
	}
	p := models.Party{Name: name}
	if adr := n.child(TagPstlAdr); adr != nil {
		for _, line := range adr.all(TagAdrLine) {
			p.PostalAddress = append(p.PostalAddress, line.raw())
		}
	}
	return p, nil
}

// descend follows names below n and returns the final node with its path.
// The first missing step is reported as a MissingFieldError.
func descend(n *node, base string, names ...string) (*node, string, error) {
	cur, path := n, base
	for _, name := range names {
		next := cur.child(name)
		if next == nil {
			return nil, path, &parsererror.MissingFieldError{Container: path, Field: name}
		}
		cur, path = next, Path(path, name)
	}
	return cur, path, nil
}

func requiredChild(n *node, base, name string) (*node, error) {
	c, _, err := descend(n, base, name)
	return c, err
}

// requiredText returns the untrimmed text of the element at names below n.
// Empty text counts as a missing element.
func requiredText(n *node, base string, names ...string) (string, error) {
	c, path, err := descend(n, base, names...)
	if err != nil {
		return "", err
	}
	if c.raw() == "" {
		return "", emptyElement(path)
	}
	return c.raw(), nil
}

func typedText(n *node, base string, names ...string) (string, string, error) {
	c, path, err := descend(n, base, names...)
	if err != nil {
		return "", path, err
	}
	value := c.trimmed()
	if value == "" {
		return "", path, emptyElement(path)
	}
	return value, path, nil
}

func emptyElement(path string) error {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return &parsererror.MissingFieldError{Field: path}
	}
	return &parsererror.MissingFieldError{Container: path[:i], Field: path[i+1:]}
}

func dateValue(n *node, base string, names ...string) (string, error) {
	value, path, err := typedText(n, base, names...)
	if err != nil {
		return "", err
	}
	if _, err := dateutils.ParseISODate(value); err != nil {
		return "", &parsererror.MalformedValueError{Element: path, Value: value, Err: err}
	}
	return value, nil
}

func dateTimeValue(n *node, base string, names ...string) (string, error) {
	value, path, err := typedText(n, base, names...)
	if err != nil {
		return "", err
	}
	if _, err := dateutils.ParseISODateTime(value); err != nil {
		return "", &parsererror.MalformedValueError{Element: path, Value: value, Err: err}
	}
	return value, nil
}

func indicatorValue(n *node, base string) (models.CreditDebitIndicator, error) {
	value, path, err := typedText(n, base, TagCdtDbtInd)
	if err != nil {
		return "", err
	}
	ind, err := models.ParseCreditDebitIndicator(value)
	if err != nil {
		return "", &parsererror.MalformedValueError{Element: path, Value: value, Err: err}
	}
	return ind, nil
}

// amountValue reads an element of the form <tag Ccy="EUR">1000.00</tag>.
func amountValue(n *node, base, tag string) (models.Amount, error) {
	c, path, err := descend(n, base, tag)
	if err != nil {
		return models.Amount{}, err
	}
	ccy, ok := c.attr(AttrCcy)
	ccy = strings.TrimSpace(ccy)
	if !ok || ccy == "" {
		return models.Amount{}, &parsererror.MissingFieldError{Container: path, Field: AttrCcy}
	}
	value := c.trimmed()
	if value == "" {
		return models.Amount{}, emptyElement(path)
	}
	amount, err := models.ParseAmount(value, ccy)
	if err != nil {
		return models.Amount{}, &parsererror.MalformedValueError{Element: path, Value: value, Err: err}
	}
	return amount, nil
}

func sequenceNumber(stmt *node, tag string) (models.Optional[uint64], error) {
	c := stmt.child(tag)
	if c == nil {
		return models.None[uint64](), nil
	}
	value := c.trimmed()
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return models.None[uint64](), &parsererror.MalformedValueError{Element: Path(TagStmt, tag), Value: value, Err: err}
	}
	return models.Some(n), nil
}
