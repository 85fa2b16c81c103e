package prompt

import (
	"strconv"
	"strings"
	"unicode"
)

type TokenKind int

const (
	TokenWord TokenKind = iota
	TokenNumber
	TokenPunct
)

// Token keeps the text as written plus a lowercased form for matching, so
// captured values ("subject Big Data") come back with their original casing.
type Token struct {
	Kind TokenKind
	Text string
	Norm string
	Num  int
}

// Tokenize splits a prompt into word, number and punctuation tokens.
// Hyphens and slashes act as plain separators, so "true/false" and
// "fill-in-the-blanks" tokenize the same as their spaced forms. Only
// clause-level punctuation (, ; . : =) is kept as tokens.
func Tokenize(s string) []Token {
	var toks []Token
	var run []rune
	runIsNum := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		text := string(run)
		if runIsNum {
			n, err := strconv.Atoi(text)
			if err == nil {
				toks = append(toks, Token{Kind: TokenNumber, Text: text, Norm: text, Num: n})
			}
		} else {
			toks = append(toks, Token{Kind: TokenWord, Text: text, Norm: strings.ToLower(text)})
		}
		run = run[:0]
	}

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if len(run) > 0 && !runIsNum {
				flush()
			}
			runIsNum = true
			run = append(run, r)
		case unicode.IsLetter(r):
			if len(run) > 0 && runIsNum {
				flush()
			}
			runIsNum = false
			run = append(run, r)
		case r == ',' || r == ';' || r == '.' || r == ':' || r == '=':
			flush()
			toks = append(toks, Token{Kind: TokenPunct, Text: string(r), Norm: string(r)})
		default:
			// space, hyphen, slash, anything else: separator
			flush()
		}
	}
	flush()
	return toks
}
