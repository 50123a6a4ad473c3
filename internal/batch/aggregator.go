// Package batch converts directories of camt.053 statements to CSV and
// consolidates them per account.
package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rayslava/camt053/internal/common"
	"github.com/rayslava/camt053/internal/dateutils"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dateutils.ToISODate(dr.Start), dateutils.ToISODate(dr.End))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// SourceDocument is a decoded statement file.
type SourceDocument struct {
	Path     string
	Document *models.Document
}

// AccountGroup collects the statements of one account across files.
type AccountGroup struct {
	AccountID   string
	Sources     []string
	MessageIDs  []string
	Statements  []models.Statement
	DateRange   DateRange
	EntryCount  int
	headerMsgID string
}

// Document returns the group as a single document carrying every statement.
func (g AccountGroup) Document() *models.Document {
	doc := models.NewDocument(models.GroupHeader{MessageID: g.headerMsgID}, g.Statements...)
	return &doc
}

// BatchAggregator handles the aggregation of statements by account
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	return &BatchAggregator{
		logger: logger,
	}
}

// GroupByAccount splits every source document into its statements and groups
// them by account. Groups are sorted by account id; within a group,
// statements are ordered by their first booking date.
func (ba *BatchAggregator) GroupByAccount(sources []SourceDocument) []AccountGroup {
	groups := make(map[string]*AccountGroup)

	for _, src := range sources {
		for _, stmt := range src.Document.Statement.Statements {
			account := common.ExtractAccountFromStatement(stmt, src.Path)

			ba.logger.Debug("Statement mapped to account",
				logging.F(logging.FieldFile, filepath.Base(src.Path)),
				logging.F(logging.FieldStatementID, stmt.ID),
				logging.F("account", account.ID),
				logging.F("source", account.Source))

			group, exists := groups[account.ID]
			if !exists {
				group = &AccountGroup{AccountID: account.ID}
				groups[account.ID] = group
			}
			group.Statements = append(group.Statements, stmt)
			group.EntryCount += len(stmt.Entries)
			group.DateRange = group.DateRange.Merge(ba.CalculateDateRange(stmt.Entries))
			group.Sources = appendUnique(group.Sources, filepath.Base(src.Path))
			group.MessageIDs = appendUnique(group.MessageIDs, src.Document.Statement.GroupHeader.MessageID)
		}
	}

	result := make([]AccountGroup, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group.Statements, func(i, j int) bool {
			return firstBookingDate(group.Statements[i]) < firstBookingDate(group.Statements[j])
		})
		group.headerMsgID = strings.Join(group.MessageIDs, "+")
		ba.detectAndLogDuplicates(group)
		result = append(result, *group)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].AccountID < result[j].AccountID
	})

	ba.logger.Info("Grouped statements into account groups",
		logging.F("source_files", len(sources)),
		logging.F("account_groups", len(result)))

	return result
}

// CalculateDateRange returns the booking date range of entries.
func (ba *BatchAggregator) CalculateDateRange(entries []models.Entry) DateRange {
	var dr DateRange
	for _, entry := range entries {
		d, err := dateutils.ParseISODate(entry.BookingDate)
		if err != nil {
			continue
		}
		dr = dr.Merge(DateRange{Start: d, End: d})
	}
	return dr
}

// detectAndLogDuplicates warns about entries that appear in more than one
// statement of the group, which happens when exported periods overlap.
// Duplicates are kept.
func (ba *BatchAggregator) detectAndLogDuplicates(group *AccountGroup) {
	seen := make(map[string]bool)
	duplicateCount := 0

	for _, stmt := range group.Statements {
		for _, entry := range stmt.Entries {
			key := strings.Join([]string{
				entry.BookingDate,
				entry.AccountServicerReference,
				string(entry.CreditDebit),
				entry.Amount.String(),
			}, "|")
			if seen[key] {
				duplicateCount++
				ba.logger.Warn("Potential duplicate entry",
					logging.F("account", group.AccountID),
					logging.F("date", entry.BookingDate),
					logging.F("amount", entry.Amount.String()),
					logging.F("reference", entry.AccountServicerReference))
				continue
			}
			seen[key] = true
		}
	}

	if duplicateCount > 0 {
		ba.logger.Warn("Found potential duplicate entries",
			logging.F("count", duplicateCount),
			logging.F("account", group.AccountID))
	}
}

// GenerateOutputFilename creates a filename for the consolidated output
// Format: {account_id}_{start_date}_{end_date}.csv
func (ba *BatchAggregator) GenerateOutputFilename(accountID string, dateRange DateRange) string {
	sanitizedAccountID := common.SanitizeAccountID(accountID)

	if !dateRange.Start.IsZero() && !dateRange.End.IsZero() {
		return fmt.Sprintf("%s_%s.csv", sanitizedAccountID, dateRange.String())
	}

	return fmt.Sprintf("%s.csv", sanitizedAccountID)
}

func firstBookingDate(stmt models.Statement) string {
	first := ""
	for _, entry := range stmt.Entries {
		if first == "" || entry.BookingDate < first {
			first = entry.BookingDate
		}
	}
	return first
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
