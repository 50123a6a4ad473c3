package codec

import (
	"errors"
	"fmt"

	"github.com/rayslava/camt053/internal/dateutils"
	"github.com/rayslava/camt053/internal/models"
	"github.com/rayslava/camt053/internal/parsererror"
)

// Validate checks that every required field of doc is present and that coded
// values have the expected form. The returned error is a
// *parsererror.MissingFieldError or *parsererror.MalformedValueError whose path
// matches the one the decoder would report for the same defect.
func Validate(doc *models.Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	env := doc.Statement
	hdr := env.GroupHeader
	if err := requireText(TagGrpHdr, TagMsgID, hdr.MessageID); err != nil {
		return err
	}
	if err := requireDateTime(TagGrpHdr, TagCreDtTm, hdr.CreationDateTime); err != nil {
		return err
	}
	if len(env.Statements) == 0 {
		return &parsererror.MissingFieldError{Container: TagEnvelope, Field: TagStmt}
	}
	for i := range env.Statements {
		if err := validateStatement(&env.Statements[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStatement(stmt *models.Statement) error {
	if err := requireText(TagStmt, TagID, stmt.ID); err != nil {
		return err
	}
	if err := requireDateTime(TagStmt, TagCreDtTm, stmt.CreationDateTime); err != nil {
		return err
	}
	idPath := Path(TagStmt, TagAcct, TagID)
	if !stmt.Account.ID.IsSet() {
		return &parsererror.MissingFieldError{Container: idPath, Field: TagIBAN + "|" + TagOthr}
	}
	idTag := TagIBAN
	if stmt.Account.ID.Kind() == models.AccountIDOther {
		idTag = TagOthr
	}
	if err := requireText(idPath, idTag, stmt.Account.ID.Value()); err != nil {
		return err
	}

	balPath := Path(TagStmt, TagBal)
	for _, bal := range stmt.Balances {
		if err := requireText(Path(balPath, TagTp, TagCdOrPrtry), TagCd, bal.Code); err != nil {
			return err
		}
		if err := validateAmount(balPath, TagAmt, bal.Amount); err != nil {
			return err
		}
		if err := validateIndicator(balPath, bal.CreditDebit); err != nil {
			return err
		}
		if err := requireDate(Path(balPath, TagDt), TagDt, bal.Date); err != nil {
			return err
		}
	}

	for i := range stmt.Entries {
		if err := validateEntry(&stmt.Entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(entry *models.Entry) error {
	ntry := Path(TagStmt, TagNtry)
	if err := validateAmount(ntry, TagAmt, entry.Amount); err != nil {
		return err
	}
	if err := validateIndicator(ntry, entry.CreditDebit); err != nil {
		return err
	}
	if err := requireText(ntry, TagSts, entry.Status); err != nil {
		return err
	}
	if err := requireDate(Path(ntry, TagBookgDt), TagDt, entry.BookingDate); err != nil {
		return err
	}
	if err := requireDate(Path(ntry, TagValDt), TagDt, entry.ValueDate); err != nil {
		return err
	}
	if err := requireText(ntry, TagAcctSvcrRef, entry.AccountServicerReference); err != nil {
		return err
	}
	domn := Path(ntry, TagBkTxCd, TagDomn)
	code := entry.BankTransactionCode
	if err := requireText(domn, TagCd, code.Domain); err != nil {
		return err
	}
	if err := requireText(Path(domn, TagFmly), TagCd, code.Family); err != nil {
		return err
	}
	if err := requireText(Path(domn, TagFmly), TagSubFmlyCd, code.SubFamily); err != nil {
		return err
	}

	txPath := Path(ntry, TagNtryDtls, TagTxDtls)
	for _, tx := range entry.Details {
		if err := validateAmount(Path(txPath, TagAmtDtls), TagTxAmt, tx.Amount); err != nil {
			return err
		}
		if debtor, ok := tx.Debtor.Get(); ok {
			if err := requireText(Path(txPath, TagRltdPties, TagDbtr), TagNm, debtor.Name); err != nil {
				return err
			}
		}
		if creditor, ok := tx.Creditor.Get(); ok {
			if err := requireText(Path(txPath, TagRltdPties, TagCdtr), TagNm, creditor.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateAmount(container, tag string, amount models.Amount) error {
	if amount.Currency == "" {
		return &parsererror.MissingFieldError{Container: Path(container, tag), Field: AttrCcy}
	}
	return nil
}

func validateIndicator(container string, ind models.CreditDebitIndicator) error {
	if ind == "" {
		return &parsererror.MissingFieldError{Container: container, Field: TagCdtDbtInd}
	}
	if !ind.IsValid() {
		return &parsererror.MalformedValueError{
			Element: Path(container, TagCdtDbtInd),
			Value:   string(ind),
			Err:     fmt.Errorf("expected %s or %s", models.Credit, models.Debit),
		}
	}
	return nil
}

func requireText(container, tag, value string) error {
	if value == "" {
		return &parsererror.MissingFieldError{Container: container, Field: tag}
	}
	return nil
}

func requireDate(container, tag, value string) error {
	if err := requireText(container, tag, value); err != nil {
		return err
	}
	if _, err := dateutils.ParseISODate(value); err != nil {
		return &parsererror.MalformedValueError{Element: Path(container, tag), Value: value, Err: err}
	}
	return nil
}

func requireDateTime(container, tag, value string) error {
	if err := requireText(container, tag, value); err != nil {
		return err
	}
	if _, err := dateutils.ParseISODateTime(value); err != nil {
		return &parsererror.MalformedValueError{Element: Path(container, tag), Value: value, Err: err}
	}
	return nil
}
