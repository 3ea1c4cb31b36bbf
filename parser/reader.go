package parser

import (
	"bufio"
	"os"
	"strings"

	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
completeFormLen returns the length of the first complete top-level form
buffered in toks (a bare literal/symbol is complete after one token; a
parenthesized form is complete once its paren count returns to zero), or 0
if no complete form is buffered yet. A stray leading ')' is reported as
"complete" at length 1 so the caller's parse attempt surfaces the
ExpectedParenthesis error immediately instead of buffering forever.
*/
func completeFormLen(toks []lexer.Token) int {
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case lexer.LeftParen:
			depth++
		case lexer.RightParen:
			depth--
		}
		if depth <= 0 {
			return i + 1
		}
	}
	return 0
}

/*
ReadMulti feeds text through the lexer, appends the resulting tokens to
the parser's buffer, and invokes callback once per complete top-level form
the buffer now contains, in order. Call it repeatedly (e.g. once per input
line) to parse a multi-line form incrementally; per spec §4.2, a form
chunked across calls is only dispatched to callback once its closing
parenthesis arrives. Stops and returns the first error from lexing,
parsing or callback.
*/
func (p *Parser) ReadMulti(text string, callback func(value.Node) error) error {
	toks, err := lexer.Lex(p.source, text, p.line)
	if err != nil {
		return err
	}
	p.line += strings.Count(text, "\n")
	p.buf = append(p.buf, toks...)

	for {
		n := completeFormLen(p.buf)
		if n == 0 {
			return nil
		}
		formToks := p.buf[:n]
		p.buf = p.buf[n:]

		node, err := p.parseForm(formToks)
		if err != nil {
			return err
		}
		if err := callback(node); err != nil {
			return err
		}
	}
}

func (p *Parser) parseForm(toks []lexer.Token) (value.Node, error) {
	ts := &tokStream{toks: toks}
	return p.readExpr(ts)
}

/*
ReadFile reads path line by line through ReadMulti, reporting every
complete top-level form to callback as it completes. A non-empty token
buffer once the file is exhausted is an incomplete final form and fails
with ErrIncompleteExpression.
*/
func ReadFile(path string, loader value.ModuleLoader, callback func(value.Node) error) error {
	f, err := os.Open(path)
	if err != nil {
		return util.NewErrorf(util.ErrUnknownFile, "cannot open %q: %v", path, err)
	}
	defer f.Close()

	p := New(path, loader)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if err := p.ReadMulti(scanner.Text()+"\n", callback); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return util.NewErrorf(util.ErrFileIOError, "error reading %q: %v", path, err)
	}
	if len(p.buf) > 0 {
		return util.NewErrorAt(util.ErrIncompleteExpression, "unexpected end of file", path, p.line)
	}
	return nil
}
