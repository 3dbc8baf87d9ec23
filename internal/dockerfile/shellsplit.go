package dockerfile

import (
	"bytes"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// splitChain implements §4.1's shell chain splitter: given a single shell
// string, it returns an alternating [cmd, op, cmd, op, …, cmd] list, where
// op is one of "&&", "||", "|", "|&", ";" or "&". A single command returns a
// one-element list. Text that doesn't parse as a command list returns nil,
// which rule code treats as "no recognisable commands".
func splitChain(text string) []string {
	parser := syntax.NewParser()
	file, err := parser.Parse(strings.NewReader(text), "")
	if err != nil || len(file.Stmts) == 0 {
		return nil
	}

	printer := syntax.NewPrinter()
	var out []string
	for i, stmt := range file.Stmts {
		out = append(out, flattenStmt(stmt, printer)...)
		if i < len(file.Stmts)-1 {
			op := ";"
			if stmt.Background {
				op = "&"
			}
			out = append(out, op)
		}
	}
	return out
}

// flattenStmt recursively unrolls a &&/||/| chain within one top-level
// statement into the same alternating [cmd, op, cmd, …] shape splitChain
// returns for the whole string.
func flattenStmt(stmt *syntax.Stmt, printer *syntax.Printer) []string {
	bin, ok := stmt.Cmd.(*syntax.BinaryCmd)
	if !ok {
		return []string{renderStmt(stmt, printer)}
	}
	left := flattenStmt(bin.X, printer)
	right := flattenStmt(bin.Y, printer)
	out := make([]string, 0, len(left)+1+len(right))
	out = append(out, left...)
	out = append(out, binOpSymbol(bin.Op))
	out = append(out, right...)
	return out
}

func renderStmt(stmt *syntax.Stmt, printer *syntax.Printer) string {
	var buf bytes.Buffer
	if err := printer.Print(&buf, stmt); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

func binOpSymbol(op syntax.BinCmdOperator) string {
	switch op {
	case syntax.AndStmt:
		return "&&"
	case syntax.OrStmt:
		return "||"
	case syntax.Pipe:
		return "|"
	case syntax.PipeAll:
		return "|&"
	default:
		return "&&"
	}
}

// joinChain is the inverse of splitChain: it renders an alternating
// [cmd, op, cmd, …] list back into one shell string.
func joinChain(parts []string) string {
	return strings.Join(parts, " ")
}

// splitWords breaks a single command's text into its shell words, used to
// derive ShellCommand's program/args/options views. Falls back to a plain
// whitespace split when the text doesn't parse (e.g. a bare placeholder).
func splitWords(text string) []string {
	parser := syntax.NewParser()
	file, err := parser.Parse(strings.NewReader(text), "")
	if err != nil || len(file.Stmts) == 0 {
		return strings.Fields(text)
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Args) == 0 {
		return strings.Fields(text)
	}

	printer := syntax.NewPrinter()
	words := make([]string, 0, len(call.Args))
	for _, w := range call.Args {
		var buf bytes.Buffer
		if err := printer.Print(&buf, w); err != nil {
			return strings.Fields(text)
		}
		words = append(words, buf.String())
	}
	return words
}
