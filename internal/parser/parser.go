package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"strings"

	"github.com/dshills/funcsearch/pkg/types"
)

// Parser handles AST-based extraction of functions from Go source files
type Parser struct {
	fset *token.FileSet
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{
		fset: token.NewFileSet(),
	}
}

// ParseFile reads a Go source file and extracts one document per function declaration
func (p *Parser) ParseFile(filePath string) (*types.ParseResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseSource(filePath, content), nil
}

// ParseSource extracts documents from already loaded source.
// A file with syntax errors yields no documents; the cause is recorded in the result.
func (p *Parser) ParseSource(filePath string, content []byte) *types.ParseResult {
	result := &types.ParseResult{}

	file, err := parser.ParseFile(p.fset, filePath, content, parser.ParseComments)
	if err != nil {
		line, col := 0, 0
		var list scanner.ErrorList
		if errors.As(err, &list) && list.Len() > 0 {
			line, col = list[0].Pos.Line, list[0].Pos.Column
		}
		result.AddError(filePath, line, col, fmt.Sprintf("syntax error: %v", err))
		return result
	}

	if file.Name != nil {
		result.PackageName = file.Name.Name
	}

	extractor := &functionExtractor{
		fset:        p.fset,
		content:     content,
		filePath:    filePath,
		packageName: result.PackageName,
		documents:   make([]types.Document, 0),
	}

	ast.Inspect(file, extractor.visit)
	result.Documents = extractor.documents

	return result
}

// functionExtractor is a visitor for AST traversal that extracts function documents
type functionExtractor struct {
	fset        *token.FileSet
	content     []byte
	filePath    string
	packageName string
	documents   []types.Document
}

// visit is called for each AST node during traversal.
// Function declarations are terminal: their bodies hold no further declarations.
func (e *functionExtractor) visit(node ast.Node) bool {
	if node == nil {
		return false
	}

	switch n := node.(type) {
	case *ast.File:
		return true
	case *ast.FuncDecl:
		e.extractFunction(n)
		return false
	default:
		return false
	}
}

// extractFunction extracts function and method declarations
func (e *functionExtractor) extractFunction(funcDecl *ast.FuncDecl) {
	start := e.fset.Position(funcDecl.Pos())
	end := e.fset.Position(funcDecl.End())

	doc := types.Document{
		FilePath:     e.filePath,
		FunctionName: funcDecl.Name.Name,
		Package:      e.packageName,
		Docstring:    e.extractDocComment(funcDecl.Doc),
		Signature:    e.extractFunctionSignature(funcDecl),
		LineNumber:   start.Line,
		EndLine:      end.Line,
	}

	if funcDecl.Recv != nil && len(funcDecl.Recv.List) > 0 {
		doc.Receiver = e.extractReceiverType(funcDecl.Recv.List[0].Type)
	}

	doc.SearchText = types.BuildSearchText(doc.FunctionName, doc.Docstring, e.sourceSegment(start, end))

	e.documents = append(e.documents, doc)
}

// sourceSegment returns the exact source text between two positions
func (e *functionExtractor) sourceSegment(start, end token.Position) string {
	if start.Offset < 0 || end.Offset > len(e.content) || start.Offset > end.Offset {
		return ""
	}
	return string(e.content[start.Offset:end.Offset])
}

// extractReceiverType extracts the receiver type name from a method
func (e *functionExtractor) extractReceiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return e.extractReceiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return e.extractReceiverType(t.X)
	case *ast.IndexListExpr:
		return e.extractReceiverType(t.X)
	case *ast.ParenExpr:
		return e.extractReceiverType(t.X)
	}
	return ""
}

// extractFunctionSignature builds a function signature string
func (e *functionExtractor) extractFunctionSignature(funcDecl *ast.FuncDecl) string {
	var sig strings.Builder

	sig.WriteString("func ")

	// Add receiver for methods
	if funcDecl.Recv != nil && len(funcDecl.Recv.List) > 0 {
		sig.WriteString("(")
		sig.WriteString(e.exprToString(funcDecl.Recv.List[0].Type))
		sig.WriteString(") ")
	}

	sig.WriteString(funcDecl.Name.Name)

	// Type parameters
	if funcDecl.Type.TypeParams != nil && len(funcDecl.Type.TypeParams.List) > 0 {
		sig.WriteString("[")
		sig.WriteString(e.fieldListToString(funcDecl.Type.TypeParams))
		sig.WriteString("]")
	}

	// Parameters
	sig.WriteString("(")
	if funcDecl.Type.Params != nil {
		sig.WriteString(e.fieldListToString(funcDecl.Type.Params))
	}
	sig.WriteString(")")

	// Results
	if funcDecl.Type.Results != nil {
		results := e.fieldListToString(funcDecl.Type.Results)
		if results != "" {
			if funcDecl.Type.Results.NumFields() > 1 || len(funcDecl.Type.Results.List[0].Names) > 0 {
				sig.WriteString(" (")
				sig.WriteString(results)
				sig.WriteString(")")
			} else {
				sig.WriteString(" ")
				sig.WriteString(results)
			}
		}
	}

	return sig.String()
}

// fieldListToString converts a field list to a string representation
func (e *functionExtractor) fieldListToString(fieldList *ast.FieldList) string {
	if fieldList == nil || len(fieldList.List) == 0 {
		return ""
	}

	var parts []string
	for _, field := range fieldList.List {
		typeStr := e.exprToString(field.Type)
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				parts = append(parts, fmt.Sprintf("%s %s", name.Name, typeStr))
			}
		} else {
			parts = append(parts, typeStr)
		}
	}

	return strings.Join(parts, ", ")
}

// exprToString converts an expression to a string representation
func (e *functionExtractor) exprToString(expr ast.Expr) string {
	if expr == nil {
		return ""
	}

	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + e.exprToString(t.X)
	case *ast.ArrayType:
		return "[]" + e.exprToString(t.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", e.exprToString(t.Key), e.exprToString(t.Value))
	case *ast.ChanType:
		return "chan " + e.exprToString(t.Value)
	case *ast.FuncType:
		return "func(...)"
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.SelectorExpr:
		return e.exprToString(t.X) + "." + t.Sel.Name
	case *ast.Ellipsis:
		return "..." + e.exprToString(t.Elt)
	case *ast.IndexExpr:
		return e.exprToString(t.X) + "[" + e.exprToString(t.Index) + "]"
	case *ast.IndexListExpr:
		indices := make([]string, len(t.Indices))
		for i, idx := range t.Indices {
			indices[i] = e.exprToString(idx)
		}
		return e.exprToString(t.X) + "[" + strings.Join(indices, ", ") + "]"
	case *ast.BinaryExpr:
		// type set unions in constraints
		return e.exprToString(t.X) + " " + t.Op.String() + " " + e.exprToString(t.Y)
	case *ast.UnaryExpr:
		return t.Op.String() + e.exprToString(t.X)
	default:
		return "..."
	}
}

// extractDocComment extracts documentation from a comment group
func (e *functionExtractor) extractDocComment(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
