package xmlutils

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rayslava/camt053/internal/parsererror"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// expectedFormat is reported in InvalidFormatError when a probe fails.
const expectedFormat = "camt.053 XML (Document/BkToCstmrStmt)"

const snippetLength = 80

// ProbeResult summarizes a statement file from a handful of XPath queries.
type ProbeResult struct {
	MessageID  string
	Statements int
	Entries    int
	Accounts   []string
	Currencies []string
}

// LoadXML parses r into an xmlpath tree. Non UTF-8 encodings declared in the
// XML header are transcoded.
func LoadXML(r io.Reader) (*xmlpath.Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	root, err := xmlpath.ParseDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// LoadXMLFile loads an XML file and returns the XML root node
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer file.Close()

	return LoadXML(file)
}

// ExtractFromXML extracts values from an XML node using an XPath expression
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}

	return values, nil
}

// ExtractWithXPath extracts values from an XML file using an XPath expression
func ExtractWithXPath(xmlFilePath, xpath string) ([]string, error) {
	root, err := LoadXMLFile(xmlFilePath)
	if err != nil {
		return nil, err
	}

	return ExtractFromXML(root, xpath)
}

// Probe checks that data looks like a camt.053 document and counts its
// statements and entries. It does not validate required fields; use the
// codec for that.
func Probe(data []byte) (*ProbeResult, error) {
	root, err := LoadXML(bytes.NewReader(data))
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat:       expectedFormat,
			ActualContentSnippet: snippet(data),
			Msg:                  err.Error(),
		}
	}

	paths := DefaultStatementXPaths()
	if !xmlpath.MustCompile(paths.Envelope).Exists(root) {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat:       expectedFormat,
			ActualContentSnippet: snippet(data),
			Msg:                  "no BkToCstmrStmt envelope under Document",
		}
	}

	result := &ProbeResult{}
	if id, ok := xmlpath.MustCompile(paths.MessageID).String(root); ok {
		result.MessageID = id
	}
	result.Statements = count(root, paths.Statements)
	result.Entries = count(root, paths.Entries)
	result.Accounts = append(distinct(root, paths.IBAN), distinct(root, paths.Other)...)
	result.Currencies = distinct(root, paths.EntryCurrency)
	return result, nil
}

// ProbeFile runs Probe on the file at path.
func ProbeFile(path string) (*ProbeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	result, err := Probe(data)
	if err != nil {
		if fe, ok := err.(*parsererror.InvalidFormatError); ok {
			fe.FilePath = path
		}
		return nil, err
	}
	return result, nil
}

// GetOrEmpty returns the value at the specified index in a slice, or an empty string if the index is out of bounds
func GetOrEmpty(slice []string, index int) string {
	if index >= 0 && index < len(slice) {
		return slice[index]
	}
	return ""
}

// CleanText folds runs of whitespace, including newlines inside XML text,
// into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func count(root *xmlpath.Node, xpath string) int {
	n := 0
	iter := xmlpath.MustCompile(xpath).Iter(root)
	for iter.Next() {
		n++
	}
	return n
}

func distinct(root *xmlpath.Node, xpath string) []string {
	var out []string
	seen := make(map[string]bool)
	iter := xmlpath.MustCompile(xpath).Iter(root)
	for iter.Next() {
		v := strings.TrimSpace(iter.Node().String())
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func snippet(data []byte) string {
	s := string(data)
	if len(s) > snippetLength {
		s = s[:snippetLength]
		for !utf8.ValidString(s) && len(s) > 0 {
			s = s[:len(s)-1]
		}
	}
	return CleanText(s)
}
