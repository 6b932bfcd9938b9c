// Package parser extracts function documents from Go source files using AST parsing.
//
// The parser leverages Go's standard library (go/parser, go/ast, go/token) to
// read function and method declarations without executing any code.
//
// # Basic Usage
//
//	p := parser.New()
//	result, err := p.ParseFile("/path/to/file.go")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, doc := range result.Documents {
//	    fmt.Printf("%s (line %d)\n", doc.FunctionName, doc.LineNumber)
//	}
//
// # Extracted Fields
//
// Each function declaration becomes one types.Document holding:
//   - Function name and, for methods, the receiver type name
//   - Doc comment text (empty when absent)
//   - Line of the func keyword and line of the closing brace
//   - A rendered signature
//   - SearchText: name, doc comment and the full declaration source
//
// Function literals are not documents of their own; their text is part of the
// enclosing declaration's source.
//
// # Error Handling
//
// A file that does not parse yields no documents:
//
//	result, err := p.ParseFile("broken.go")
//	// err is nil for syntax errors, non-nil when the file cannot be read
//
//	if result.HasErrors() {
//	    for _, parseErr := range result.Errors {
//	        fmt.Printf("skipped: %v\n", parseErr)
//	    }
//	}
//
// This allows a directory scan to continue past broken files.
package parser
