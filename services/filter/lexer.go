package filter

import (
	"fmt"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNumber
	tokenString
	tokenOperator
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// tokenize scans an expression into tokens, collecting every lexical issue
// it finds instead of stopping at the first one.
func tokenize(text string) ([]token, []string) {
	var tokens []token
	var issues []string

	i := 0
	for i < len(text) {
		b := text[i]

		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			i++

		case isIdentStart(b):
			start := i
			for i < len(text) && isIdentByte(text[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: text[start:i], pos: start})

		case isDigit(b):
			start := i
			for i < len(text) && isDigit(text[i]) {
				i++
			}
			// a fraction needs at least one digit after the dot; a bare
			// trailing dot belongs to the next token
			if i+1 < len(text) && text[i] == '.' && isDigit(text[i+1]) {
				i++
				for i < len(text) && isDigit(text[i]) {
					i++
				}
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text[start:i], pos: start})

		case b == '"':
			start := i
			i++
			for i < len(text) && text[i] != '"' {
				i++
			}
			if i >= len(text) {
				issues = append(issues, fmt.Sprintf("unterminated string literal at position %d", start))
				i = len(text)
				break
			}
			tokens = append(tokens, token{kind: tokenString, text: text[start+1 : i], pos: start})
			i++

		case b == '=' || b == '!' || b == '<' || b == '>' || b == '&' || b == '|':
			if i+1 < len(text) {
				pair := text[i : i+2]
				switch pair {
				case "==", "!=", "<=", ">=", "&&", "||":
					tokens = append(tokens, token{kind: tokenOperator, text: pair, pos: i})
					i += 2
					continue
				}
			}
			switch b {
			case '<', '>', '!':
				tokens = append(tokens, token{kind: tokenOperator, text: string(b), pos: i})
			default:
				issues = append(issues, fmt.Sprintf("unexpected character %q at position %d", string(b), i))
			}
			i++

		case b == '(' || b == ')' || b == '[' || b == ']' || b == '.' || b == '*':
			tokens = append(tokens, token{kind: tokenPunct, text: string(b), pos: i})
			i++

		default:
			issues = append(issues, fmt.Sprintf("unexpected character %q at position %d", string(b), i))
			i++
		}
	}

	return tokens, issues
}
