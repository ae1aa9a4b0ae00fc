package tags

import (
	"errors"
	"fmt"
	"strings"
)

var errEmptyExpression = errors.New("empty license expression")

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokAnd
	tokOr
	tokWith
	tokOpen
	tokClose
)

type token struct {
	kind tokenKind
	text string
}

// ParseExpression parses an SPDX license expression and returns its
// constituent license identifiers in order of appearance, without duplicates.
// Exception identifiers following WITH are not licenses and are dropped.
func ParseExpression(expr string) ([]string, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, errEmptyExpression
	}

	p := &exprParser{toks: toks}
	if err := p.parseExpr(); err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected %q in %q", p.toks[p.pos].text, expr)
	}
	return p.ids, nil
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, token{tokOpen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokClose, ")"})
			i++
		case isIdentChar(c):
			j := i
			for j < len(expr) && isIdentChar(expr[j]) {
				j++
			}
			word := expr[i:j]
			toks = append(toks, classify(word))
			i = j
		default:
			return nil, fmt.Errorf("invalid character %q in license expression", c)
		}
	}
	return toks, nil
}

func classify(word string) token {
	switch strings.ToUpper(word) {
	case "AND":
		return token{tokAnd, word}
	case "OR":
		return token{tokOr, word}
	case "WITH":
		return token{tokWith, word}
	}
	return token{tokIdent, word}
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == '+' || c == ':'
}

type exprParser struct {
	toks []token
	pos  int
	ids  []string
}

// parseExpr: term { (AND|OR) term }
func (p *exprParser) parseExpr() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for p.pos < len(p.toks) {
		k := p.toks[p.pos].kind
		if k != tokAnd && k != tokOr {
			return nil
		}
		p.pos++
		if err := p.parseTerm(); err != nil {
			return err
		}
	}
	return nil
}

// parseTerm: "(" expr ")" | ident [ WITH ident ]
func (p *exprParser) parseTerm() error {
	if p.pos >= len(p.toks) {
		return errors.New("license expression ends with an operator")
	}

	tok := p.toks[p.pos]
	switch tok.kind {
	case tokOpen:
		p.pos++
		if err := p.parseExpr(); err != nil {
			return err
		}
		if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokClose {
			return errors.New("unbalanced parenthesis in license expression")
		}
		p.pos++
		return nil
	case tokIdent:
		if err := validIdentifier(tok.text); err != nil {
			return err
		}
		p.pos++
		p.add(tok.text)
		if p.pos < len(p.toks) && p.toks[p.pos].kind == tokWith {
			p.pos++
			if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokIdent {
				return errors.New("WITH must be followed by an exception identifier")
			}
			p.pos++
		}
		return nil
	case tokClose:
		return errors.New("unbalanced parenthesis in license expression")
	default:
		return fmt.Errorf("unexpected operator %q in license expression", tok.text)
	}
}

func (p *exprParser) add(id string) {
	for _, existing := range p.ids {
		if existing == id {
			return
		}
	}
	p.ids = append(p.ids, id)
}

func validIdentifier(id string) error {
	trimmed := strings.TrimSuffix(id, "+")
	if trimmed == "" || strings.Contains(trimmed, "+") {
		return fmt.Errorf("invalid license identifier %q", id)
	}
	if strings.Count(id, ":") > 1 || strings.HasPrefix(id, ":") || strings.HasSuffix(id, ":") {
		return fmt.Errorf("invalid license identifier %q", id)
	}
	return nil
}
