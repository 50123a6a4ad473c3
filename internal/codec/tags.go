package codec

import "strings"

// Element and attribute names of camt.053.001.02. The encoder, the decoder and
// Validate all read names from here so the two directions cannot drift apart.
const (
	TagDocument  = "Document"
	AttrXMLNS    = "xmlns"
	TagEnvelope  = "BkToCstmrStmt"
	TagGrpHdr    = "GrpHdr"
	TagMsgID     = "MsgId"
	TagCreDtTm   = "CreDtTm"
	TagStmt      = "Stmt"
	TagID        = "Id"
	TagElctrncSq = "ElctrncSeqNb"
	TagLglSeqNb  = "LglSeqNb"
	TagAcct      = "Acct"
	TagIBAN      = "IBAN"
	TagOthr      = "Othr"

	TagBal       = "Bal"
	TagTp        = "Tp"
	TagCdOrPrtry = "CdOrPrtry"
	TagCd        = "Cd"
	TagAmt       = "Amt"
	AttrCcy      = "Ccy"
	TagCdtDbtInd = "CdtDbtInd"
	TagDt        = "Dt"

	TagNtry        = "Ntry"
	TagSts         = "Sts"
	TagBookgDt     = "BookgDt"
	TagValDt       = "ValDt"
	TagAcctSvcrRef = "AcctSvcrRef"
	TagBkTxCd      = "BkTxCd"
	TagDomn        = "Domn"
	TagFmly        = "Fmly"
	TagSubFmlyCd   = "SubFmlyCd"

	TagNtryDtls  = "NtryDtls"
	TagTxDtls    = "TxDtls"
	TagRefs      = "Refs"
	TagAmtDtls   = "AmtDtls"
	TagTxAmt     = "TxAmt"
	TagRltdPties = "RltdPties"
	TagDbtr      = "Dbtr"
	TagCdtr      = "Cdtr"
	TagNm        = "Nm"
	TagPstlAdr   = "PstlAdr"
	TagAdrLine   = "AdrLine"
	TagRmtInf    = "RmtInf"
	TagUstrd     = "Ustrd"
)

// Path joins element names into the slash separated form used in error
// messages, e.g. Path(TagGrpHdr, TagMsgID) == "GrpHdr/MsgId".
// Paths start below the envelope; elements directly under it are reported
// relative to "BkToCstmrStmt".
func Path(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}
