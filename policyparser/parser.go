package policyparser

import (
	"strconv"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/policy"
)

type parser struct {
	lex  *lexer
	tok  token
	text string
}

func newParser(text string) (*parser, error) {
	p := &parser{lex: newLexer(text), text: text}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return errs.Wrap(errs.InvalidParameter, "policyparser.Parse", err)
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(msg string) error {
	return errs.New(errs.InvalidParameter, "policyparser.Parse",
		msg+" at offset "+strconv.Itoa(p.tok.pos)+" in "+strconv.Quote(p.text))
}

// Parse reads an infix policy expression and returns its normalized
// tree with leaf ids already assigned, per spec.md §4.4: `parse(text)
// -> PolicyTree`. Grammar:
//
//	expr     := orTerm
//	orTerm   := andTerm ("or" andTerm)*
//	andTerm  := atom ("and" atom)*
//	atom     := IDENT | "(" expr ")" | NUMBER "of" "(" expr ("," expr)* ")"
func Parse(text string) (*policy.Node, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected trailing token " + strconv.Quote(p.tok.text))
	}
	if err := policy.Validate(n); err != nil {
		return nil, err
	}
	policy.AssignLeafIDs(n)
	return n, nil
}

func (p *parser) parseOr() (*policy.Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []*policy.Node{first}
	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return policy.Or(children...), nil
}

func (p *parser) parseAnd() (*policy.Node, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	children := []*policy.Node{first}
	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return policy.And(children...), nil
}

func (p *parser) parseAtom() (*policy.Node, error) {
	switch p.tok.kind {
	case tokIdent:
		attr := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return policy.Leaf(attr), nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil

	case tokNumber:
		t, err := strconv.Atoi(p.tok.text)
		if err != nil {
			return nil, p.errorf("invalid threshold number " + strconv.Quote(p.tok.text))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokOf {
			return nil, p.errorf("expected 'of' after threshold number")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLParen {
			return nil, p.errorf("expected '(' after 'of'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		children, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return policy.Threshold(t, children...), nil

	default:
		return nil, p.errorf("expected attribute, '(', or threshold number")
	}
}

func (p *parser) parseExprList() ([]*policy.Node, error) {
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	out := []*policy.Node{first}
	for p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}
	return out, nil
}

// Canonicalize returns the canonical byte string of tree, spec.md
// §4.4's `canonicalize(tree) -> String`.
func Canonicalize(tree *policy.Node) string {
	return policy.Canonical(tree)
}
