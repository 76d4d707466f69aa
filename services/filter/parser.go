package filter

import (
	"fmt"
	"strconv"
	"strings"

	c "varsift/api/models/constants"
	"varsift/api/models/constants/operator"
)

/*
	Hand-written recursive descent over the filter grammar,
	lowest to highest precedence:

		or    := and ("||" and)*
		and   := cmp ("&&" cmp)*
		cmp   := unary (cmpOp unary)*
		unary := "!"* atom
		atom  := exists "(" path ")" | bool | number | string
		       | "(" or ")" | path
		path  := ident ( "[" (digits | "*") "]" | "." ident )*

	Chained comparisons fold left into nested binary nodes, each
	producing its own boolean.
*/

// ParseFilterExpression parses one filter expression into an AST. The whole
// input must be consumed; trailing tokens are a syntax error. Every issue
// found is folded into a single *FilterParseError and no partial tree is
// ever returned.
func ParseFilterExpression(text string) (Expression, error) {
	tokens, issues := tokenize(text)
	if len(issues) > 0 {
		return nil, &FilterParseError{Issues: issues}
	}

	p := &filterParser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, &FilterParseError{Issues: []string{err.Error()}}
	}
	if trailing, ok := p.peek(); ok {
		return nil, &FilterParseError{Issues: []string{
			fmt.Sprintf("unexpected trailing input starting at %q (position %d)", trailing.text, trailing.pos),
		}}
	}
	return expr, nil
}

type filterParser struct {
	tokens []token
	pos    int
}

func (p *filterParser) peek() (token, bool) {
	return p.peekAhead(0)
}

func (p *filterParser) peekAhead(offset int) (token, bool) {
	if p.pos+offset >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos+offset], true
}

func (p *filterParser) next() (token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *filterParser) matchOperator(text string) bool {
	tok, ok := p.peek()
	if !ok || tok.kind != tokenOperator || tok.text != text {
		return false
	}
	p.pos++
	return true
}

func (p *filterParser) matchPunct(text string) bool {
	tok, ok := p.peek()
	if !ok || tok.kind != tokenPunct || tok.text != text {
		return false
	}
	p.pos++
	return true
}

func (p *filterParser) expectPunct(text string) error {
	if p.matchPunct(text) {
		return nil
	}
	if tok, ok := p.peek(); ok {
		return fmt.Errorf("expected %q but found %q (position %d)", text, tok.text, tok.pos)
	}
	return fmt.Errorf("expected %q but expression ended", text)
}

func (p *filterParser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.matchOperator("||") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpression{Left: left, Op: operator.Or, Right: right}
	}
	return left, nil
}

func (p *filterParser) parseAnd() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.matchOperator("&&") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpression{Left: left, Op: operator.And, Right: right}
	}
	return left, nil
}

func (p *filterParser) parseComparison() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchComparisonOperator()
		if !ok {
			break
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ComparisonExpression{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *filterParser) matchComparisonOperator() (c.ComparisonOperator, bool) {
	tok, ok := p.peek()
	if !ok {
		return "", false
	}
	if tok.kind == tokenOperator && operator.IsValidComparison(tok.text) {
		p.pos++
		return c.ComparisonOperator(tok.text), true
	}
	// contains is a keyword operator, but only in operator position; as an
	// atom it stays available as a field name
	if tok.kind == tokenIdent && tok.text == "contains" {
		p.pos++
		return operator.Contains, true
	}
	return "", false
}

func (p *filterParser) parseUnary() (Expression, error) {
	if p.matchOperator("!") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpression{Inner: inner}, nil
	}
	return p.parseAtom()
}

func (p *filterParser) parseAtom() (Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	switch tok.kind {
	case tokenNumber:
		p.pos++
		num, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q (position %d)", tok.text, tok.pos)
		}
		return &NumberLiteral{Value: num}, nil

	case tokenString:
		p.pos++
		return &StringLiteral{Value: tok.text}, nil

	case tokenPunct:
		if tok.text == "(" {
			p.pos++
			expr, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return expr, nil
		}

	case tokenIdent:
		switch tok.text {
		case "true":
			p.pos++
			return &BoolLiteral{Value: true}, nil
		case "false":
			p.pos++
			return &BoolLiteral{Value: false}, nil
		case "exists":
			// only a call; a bare `exists` stays usable as a field name
			if open, hasOpen := p.peekAhead(1); hasOpen && open.kind == tokenPunct && open.text == "(" {
				return p.parseExists()
			}
		}
		parts, err := p.parseAccessPath()
		if err != nil {
			return nil, err
		}
		return &FieldPath{Parts: parts}, nil
	}

	return nil, fmt.Errorf("unexpected token %q (position %d)", tok.text, tok.pos)
}

func (p *filterParser) parseExists() (Expression, error) {
	p.pos++ // exists
	p.pos++ // (
	parts, err := p.parseAccessPath()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ExistsExpression{Parts: parts}, nil
}

func (p *filterParser) parseAccessPath() ([]AccessPart, error) {
	tok, ok := p.next()
	if !ok || tok.kind != tokenIdent {
		if ok {
			return nil, fmt.Errorf("expected a field name but found %q (position %d)", tok.text, tok.pos)
		}
		return nil, fmt.Errorf("expected a field name but expression ended")
	}

	parts := []AccessPart{FieldPart(tok.text)}

	for {
		if p.matchPunct("[") {
			part, err := p.parseIndexPart()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			parts = append(parts, part)
			continue
		}

		if p.matchPunct(".") {
			sub, subOk := p.next()
			if !subOk || sub.kind != tokenIdent {
				if subOk {
					return nil, fmt.Errorf("expected a subfield name after '.' but found %q (position %d)", sub.text, sub.pos)
				}
				return nil, fmt.Errorf("expected a subfield name after '.' but expression ended")
			}
			parts = append(parts, FieldPart(sub.text))
			continue
		}

		return parts, nil
	}
}

func (p *filterParser) parseIndexPart() (AccessPart, error) {
	tok, ok := p.next()
	if !ok {
		return AccessPart{}, fmt.Errorf("expected an array index or '*' but expression ended")
	}
	if tok.kind == tokenPunct && tok.text == "*" {
		return WildcardPart(), nil
	}
	if tok.kind == tokenNumber && !strings.Contains(tok.text, ".") {
		index, err := strconv.Atoi(tok.text)
		if err != nil || index < 0 {
			return AccessPart{}, fmt.Errorf("invalid array index %q (position %d)", tok.text, tok.pos)
		}
		return IndexPart(index), nil
	}
	return AccessPart{}, fmt.Errorf("expected an array index or '*' but found %q (position %d)", tok.text, tok.pos)
}
