package batch

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cryptoRandIntn returns a random int in [0, n) using crypto/rand
func cryptoRandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

func generateRandomDate() time.Time {
	return time.Date(2020+cryptoRandIntn(6), time.Month(cryptoRandIntn(12)+1), cryptoRandIntn(28)+1, 0, 0, 0, 0, time.UTC)
}

func generateRandomAccountID() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 /\\:*?\"<>|.-_"
	n := cryptoRandIntn(20) + 1
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(chars[cryptoRandIntn(len(chars))])
	}
	return b.String()
}

func assertFilesystemSafe(t *testing.T, filename string) {
	t.Helper()
	for _, r := range filename {
		assert.False(t, strings.ContainsRune("/\\:*?\"<>| ", r), "unsafe character %q in %s", r, filename)
	}
	assert.NotContains(t, filename, "..")
}

func testEntry(t *testing.T, bookingDate, amount, ref string) models.Entry {
	t.Helper()
	e, err := models.NewEntryBuilder().
		WithAmount(amount, "EUR").
		AsCredit().
		WithStatus(models.StatusBooked).
		WithBookingDate(bookingDate).
		WithValueDate(bookingDate).
		WithAccountServicerReference(ref).
		WithBankTransactionCode(models.DomainPayments, "RCDT", "ESCT").
		Build()
	require.NoError(t, err)
	return e
}

func testStatement(t *testing.T, id, iban string, entries ...models.Entry) models.Statement {
	t.Helper()
	b := models.NewStatementBuilder(id).
		WithCreationDateTime("2024-06-01T08:00:00").
		WithIBAN(iban)
	for _, e := range entries {
		b.AddEntry(e)
	}
	stmt, err := b.Build()
	require.NoError(t, err)
	return stmt
}

func testDocument(t *testing.T, msgID string, statements ...models.Statement) *models.Document {
	t.Helper()
	b := models.NewDocumentBuilder().
		WithMessageID(msgID).
		WithCreationDateTime("2024-06-01T08:00:00")
	for _, s := range statements {
		b.AddStatement(s)
	}
	doc, err := b.Build()
	require.NoError(t, err)
	return &doc
}

// Property: statements of N distinct accounts spread over any number of
// files always end up in exactly N groups, with no statement lost.
func TestProperty_AccountBasedAggregation(t *testing.T) {
	aggregator := NewBatchAggregator(logging.NewMockLogger())

	for i := 0; i < 50; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			numAccounts := cryptoRandIntn(5) + 1
			filesPerAccount := cryptoRandIntn(5) + 1

			var sources []SourceDocument
			expected := make(map[string]int)
			for a := 0; a < numAccounts; a++ {
				iban := fmt.Sprintf("CH930076201162385295%d", a)
				expected[iban] = filesPerAccount
				for f := 0; f < filesPerAccount; f++ {
					date := generateRandomDate().Format("2006-01-02")
					stmt := testStatement(t, fmt.Sprintf("S%d-%d", a, f), iban, testEntry(t, date, "10.00", fmt.Sprintf("R%d-%d", a, f)))
					sources = append(sources, SourceDocument{
						Path:     fmt.Sprintf("/in/file_%d_%d.xml", a, f),
						Document: testDocument(t, fmt.Sprintf("M%d-%d", a, f), stmt),
					})
				}
			}

			groups := aggregator.GroupByAccount(sources)
			assert.Len(t, groups, numAccounts)

			actual := make(map[string]int)
			for _, g := range groups {
				actual[g.AccountID] = len(g.Statements)
				assert.Len(t, g.Sources, filesPerAccount)
			}
			assert.Equal(t, expected, actual)
		})
	}
}

// Property: consolidated file names are "{account}_{start}_{end}.csv" and
// filesystem safe for any account id.
func TestProperty_ConsolidatedFileNamingConvention(t *testing.T) {
	aggregator := NewBatchAggregator(logging.NewMockLogger())

	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			accountID := generateRandomAccountID()
			startDate := generateRandomDate()
			endDate := startDate.AddDate(0, cryptoRandIntn(12)+1, cryptoRandIntn(30))

			filename := aggregator.GenerateOutputFilename(accountID, DateRange{Start: startDate, End: endDate})
			assert.Contains(t, filename, fmt.Sprintf("_%s_%s.csv", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))
			assertFilesystemSafe(t, filename)

			noDate := aggregator.GenerateOutputFilename(accountID, DateRange{})
			assert.True(t, strings.HasSuffix(noDate, ".csv"))
			assertFilesystemSafe(t, noDate)
		})
	}
}

func TestDateRange_String(t *testing.T) {
	tests := []struct {
		name     string
		dr       DateRange
		expected string
	}{
		{
			name: "valid date range",
			dr: DateRange{
				Start: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			},
			expected: "2025-04-01_2025-06-30",
		},
		{
			name:     "zero dates",
			dr:       DateRange{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dr.String())
		})
	}
}

func TestDateRange_Merge(t *testing.T) {
	apr1 := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	may15 := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	may31 := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	jun30 := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dr1      DateRange
		dr2      DateRange
		expected DateRange
	}{
		{
			name:     "overlapping ranges",
			dr1:      DateRange{Start: apr1, End: may31},
			dr2:      DateRange{Start: may15, End: jun30},
			expected: DateRange{Start: apr1, End: jun30},
		},
		{
			name:     "one range is zero",
			dr1:      DateRange{},
			dr2:      DateRange{Start: may15, End: may31},
			expected: DateRange{Start: may15, End: may31},
		},
		{
			name:     "contained range",
			dr1:      DateRange{Start: apr1, End: jun30},
			dr2:      DateRange{Start: may15, End: may31},
			expected: DateRange{Start: apr1, End: jun30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dr1.Merge(tt.dr2))
		})
	}
}

func TestBatchAggregator_CalculateDateRange(t *testing.T) {
	aggregator := NewBatchAggregator(logging.NewMockLogger())

	dr := aggregator.CalculateDateRange([]models.Entry{
		testEntry(t, "2024-05-20", "1.00", "A"),
		testEntry(t, "2024-05-02", "1.00", "B"),
		testEntry(t, "2024-05-31", "1.00", "C"),
	})
	assert.Equal(t, "2024-05-02_2024-05-31", dr.String())

	assert.Equal(t, DateRange{}, aggregator.CalculateDateRange(nil))
}

func TestBatchAggregator_GroupByAccount(t *testing.T) {
	logger := logging.NewMockLogger()
	aggregator := NewBatchAggregator(logger)

	june := testStatement(t, "JUN", "DE89370400440532013000", testEntry(t, "2024-06-03", "5.00", "R2"))
	may := testStatement(t, "MAY", "DE89370400440532013000", testEntry(t, "2024-05-03", "5.00", "R1"))
	other := testStatement(t, "X", "CH9300762011623852957", testEntry(t, "2024-05-10", "7.00", "R3"))

	groups := aggregator.GroupByAccount([]SourceDocument{
		{Path: "/in/june.xml", Document: testDocument(t, "m-june", june, other)},
		{Path: "/in/may.xml", Document: testDocument(t, "m-may", may)},
	})
	require.Len(t, groups, 2)

	assert.Equal(t, "CH9300762011623852957", groups[0].AccountID)
	assert.Equal(t, []string{"june.xml"}, groups[0].Sources)

	de := groups[1]
	assert.Equal(t, "DE89370400440532013000", de.AccountID)
	assert.Equal(t, []string{"june.xml", "may.xml"}, de.Sources)
	assert.Equal(t, "MAY", de.Statements[0].ID, "statements are ordered by booking date")
	assert.Equal(t, "JUN", de.Statements[1].ID)
	assert.Equal(t, 2, de.EntryCount)
	assert.Equal(t, "2024-05-03_2024-06-03", de.DateRange.String())

	doc := de.Document()
	assert.Equal(t, "m-june+m-may", doc.Statement.GroupHeader.MessageID)
	assert.Len(t, doc.Statement.Statements, 2)

	assert.True(t, logger.HasEntry("INFO", "Grouped statements into account groups"))
}

func TestBatchAggregator_DuplicatesKept(t *testing.T) {
	logger := logging.NewMockLogger()
	aggregator := NewBatchAggregator(logger)

	entry := testEntry(t, "2024-05-03", "5.00", "R1")
	first := testStatement(t, "A", "DE89370400440532013000", entry)
	second := testStatement(t, "B", "DE89370400440532013000", entry)

	groups := aggregator.GroupByAccount([]SourceDocument{
		{Path: "a.xml", Document: testDocument(t, "m1", first)},
		{Path: "b.xml", Document: testDocument(t, "m2", second)},
	})
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].EntryCount)
	assert.True(t, logger.HasEntry("WARN", "Potential duplicate entry"))
	assert.True(t, logger.HasEntry("WARN", "Found potential duplicate entries"))
}
