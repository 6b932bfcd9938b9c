package types

import (
	"errors"
	"strings"
)

// Document is one extracted function and the text it is searched by
type Document struct {
	// Identification
	FilePath     string
	FunctionName string
	Package      string
	Receiver     string // For methods: receiver type name

	// Content
	Docstring  string // Empty string when the function has no doc comment
	Signature  string
	SearchText string // Name + docstring + full source span

	// Location
	LineNumber int
	EndLine    int
}

// BuildSearchText joins the parts a function is searched by.
// The separator keeps the last word of one part from fusing with the first of the next.
func BuildSearchText(name, docstring, source string) string {
	var b strings.Builder
	b.Grow(len(name) + len(docstring) + len(source) + 2)
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(docstring)
	b.WriteByte(' ')
	b.WriteString(source)
	return b.String()
}

// IsMethod returns true if the document describes a method with a receiver
func (d *Document) IsMethod() bool {
	return d.Receiver != ""
}

// QualifiedName returns Receiver.Name for methods and Name for functions
func (d *Document) QualifiedName() string {
	if d.Receiver == "" {
		return d.FunctionName
	}
	return d.Receiver + "." + d.FunctionName
}

// Validate checks that the document carries the fields the index relies on
func (d *Document) Validate() error {
	if d.FunctionName == "" {
		return errors.New("function name is required")
	}

	if d.FilePath == "" {
		return errors.New("file path is required")
	}

	if d.LineNumber <= 0 {
		return errors.New("line number must be positive")
	}

	if d.EndLine != 0 && d.EndLine < d.LineNumber {
		return errors.New("end line must be after or equal to line number")
	}

	return nil
}
