// Package parsererror defines the error types returned when a camt.053 document
// cannot be encoded or decoded.
package parsererror

import (
	"fmt"
	"strings"
)

// EncodingError is returned when a document cannot be rendered as XML text,
// either because the model is incomplete or because the underlying writer failed.
type EncodingError struct {
	Element string
	Err     error
}

func (e *EncodingError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("camt053: cannot encode %s: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("camt053: encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required element that is absent.
// Container is the slash separated path of the enclosing element, e.g. "GrpHdr".
type MissingFieldError struct {
	Container string
	Field     string
}

// Path returns the full element path, e.g. "GrpHdr/MsgId".
func (e *MissingFieldError) Path() string {
	return joinPath(e.Container, e.Field)
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("camt053: missing required element %s", e.Path())
}

// MalformedValueError reports an element whose content fails type coercion.
type MalformedValueError struct {
	Element string
	Value   string
	Err     error
}

func (e *MalformedValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("camt053: malformed value in %s='%s': %v", e.Element, e.Value, e.Err)
	}
	return fmt.Sprintf("camt053: malformed value in %s='%s'", e.Element, e.Value)
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// UnsupportedStructureError reports a document whose root or envelope element
// is not the one expected for camt.053.
type UnsupportedStructureError struct {
	Expected string
	Actual   string
}

func (e *UnsupportedStructureError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("camt053: unsupported structure: expected <%s>, found no element", e.Expected)
	}
	return fmt.Sprintf("camt053: unsupported structure: expected <%s>, found <%s>", e.Expected, e.Actual)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}
