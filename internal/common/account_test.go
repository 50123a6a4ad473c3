package common

import (
	"testing"

	"github.com/rayslava/camt053/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccountFromCAMTFilename(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		expectedID     string
		expectedSource string
	}{
		{
			name:           "Valid CAMT XML filename",
			filename:       "CAMT.053_54293249_2025-04-01_2025-04-30_1.xml",
			expectedID:     "54293249",
			expectedSource: SourceFilename,
		},
		{
			name:           "Valid CAMT CSV filename",
			filename:       "CAMT.053_12345678_2024-01-01_2024-01-31_2.csv",
			expectedID:     "12345678",
			expectedSource: SourceFilename,
		},
		{
			name:           "CAMT filename with path",
			filename:       "/path/to/CAMT.053_87654321_2023-12-01_2023-12-31_1.xml",
			expectedID:     "87654321",
			expectedSource: SourceFilename,
		},
		{
			name:           "Other filename",
			filename:       "/data/may statement.xml",
			expectedID:     "may_statement",
			expectedSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAccountFromCAMTFilename(tt.filename)
			assert.Equal(t, tt.expectedID, got.ID)
			assert.Equal(t, tt.expectedSource, got.Source)
		})
	}
}

func TestExtractAccountFromStatement(t *testing.T) {
	iban := models.Statement{Account: models.Account{ID: models.IBANAccountID("DE89 3704 0044 0532 0130 00")}}
	got := ExtractAccountFromStatement(iban, "a.xml")
	assert.Equal(t, AccountIdentifier{ID: "DE89370400440532013000", Source: SourceContent}, got)

	other := models.Statement{Account: models.Account{ID: models.OtherAccountID("ACC/42")}}
	got = ExtractAccountFromStatement(other, "a.xml")
	assert.Equal(t, AccountIdentifier{ID: "ACC_42", Source: SourceContent}, got)

	got = ExtractAccountFromStatement(models.Statement{}, "CAMT.053_54293249_2025-04-01_2025-04-30_1.xml")
	assert.Equal(t, AccountIdentifier{ID: "54293249", Source: SourceFilename}, got)
}

func TestSanitizeAccountID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12345678", "12345678"},
		{"  account 1  ", "account_1"},
		{"../../etc/passwd", "etc_passwd"},
		{"a//b", "a_b"},
		{"...", "UNKNOWN"},
		{"", "UNKNOWN"},
		{"CH93-0076.2011", "CH93-0076.2011"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeAccountID(tt.input))
		})
	}
}
