package driver

import (
	"github.com/tsani/nutcalc/eval"
	"github.com/tsani/nutcalc/lexer"
	"github.com/tsani/nutcalc/parser"
	"github.com/tsani/nutcalc/token"
)

// RunLine parses line as a single statement and executes it. A line holding
// only whitespace and comments does nothing.
func RunLine(interp *eval.Interpreter, line string) error {
	tokens, err := lexer.Lex(line)
	if err != nil {
		return err
	}
	if len(tokens) == 1 && tokens[0].Kind == token.EOF {
		return nil
	}
	stmt, err := parser.NewParser(tokens).ParseStmt()
	if err != nil {
		return err
	}
	return interp.Execute(stmt)
}
