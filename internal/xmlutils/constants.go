// Package xmlutils answers XPath queries against camt.053 files without
// building the full document model.
package xmlutils

import "github.com/rayslava/camt053/internal/codec"

// StatementXPaths holds the XPath expressions used to probe a statement file.
type StatementXPaths struct {
	Envelope   string
	MessageID  string
	Statements string
	Entries    string
	IBAN       string
	Other      string
	// EntryCurrency selects the Ccy attribute of every entry amount.
	EntryCurrency string
}

// DefaultStatementXPaths derives the probe expressions from the codec's
// element names.
func DefaultStatementXPaths() StatementXPaths {
	envelope := "/" + codec.Path(codec.TagDocument, codec.TagEnvelope)
	stmt := codec.Path(envelope, codec.TagStmt)
	ntry := codec.Path(stmt, codec.TagNtry)
	acctID := codec.Path(stmt, codec.TagAcct, codec.TagID)

	return StatementXPaths{
		Envelope:      envelope,
		MessageID:     codec.Path(envelope, codec.TagGrpHdr, codec.TagMsgID),
		Statements:    stmt,
		Entries:       ntry,
		IBAN:          codec.Path(acctID, codec.TagIBAN),
		Other:         codec.Path(acctID, codec.TagOthr),
		EntryCurrency: codec.Path(ntry, codec.TagAmt, "@"+codec.AttrCcy),
	}
}
