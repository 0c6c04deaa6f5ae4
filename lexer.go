package graql

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenKind classifies a lexeme (§4.1).
type TokenKind int

const (
	TokIdentifier TokenKind = iota
	TokVariable
	TokInteger
	TokReal
	TokString
	TokDate
	TokDateTime
	TokKeyword
	TokPunct
	TokComparator
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokIdentifier:
		return "identifier"
	case TokVariable:
		return "variable"
	case TokInteger:
		return "integer"
	case TokReal:
		return "real"
	case TokString:
		return "string"
	case TokDate:
		return "date"
	case TokDateTime:
		return "datetime"
	case TokKeyword:
		return "keyword"
	case TokPunct:
		return "punctuation"
	case TokComparator:
		return "comparator"
	case TokEOF:
		return "end of input"
	}
	return "unknown"
}

// Token is a single lexeme together with its source position. Text holds
// the literal source text (including surrounding quotes for strings and the
// leading '$' for variables); decoded values are produced on demand by the
// helpers in value.go.
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (%d:%d)", t.Kind, t.Text, t.Line, t.Col)
}

var (
	reDateTime = regexp.MustCompile(`^[+-]?[0-9]{4,}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}(:[0-9]{2}(\.[0-9]+)?)?`)
	reDate     = regexp.MustCompile(`^[+-]?[0-9]{4,}-[0-9]{2}-[0-9]{2}`)
	reReal     = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+`)
	reInteger  = regexp.MustCompile(`^[+-]?[0-9]+`)
	reIdentHead = regexp.MustCompile(`^[A-Za-z_]`)
	reIdentTail = regexp.MustCompile(`^[A-Za-z0-9_-]*`)
	reComparatorSym = regexp.MustCompile(`^(!==|==|<=|>=|<|>|=)`)
)

// illegalCharError reports a single unrecognised character at pos, rendered
// with a caret pointer (§4.1, §6.3).
type illegalCharError struct {
	line, col int
	char      rune
	source    string
}

func (e *illegalCharError) Error() string {
	return renderCaret(e.source, e.line, e.col, fmt.Sprintf("unexpected character %q", e.char))
}

// lexer turns a complete input buffer into a flat slice of tokens. It has no
// suspension points and is single-use: construct a fresh lexer per input.
type lexer struct {
	src        string
	runes      []rune
	pos        int // index into runes
	line, col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, runes: []rune(src), line: 1, col: 1}
}

// tokenize scans the whole input into tokens, ending with a TokEOF token. It
// returns an error immediately on the first illegal character.
func (l *lexer) tokenize() ([]Token, error) {
	var toks []Token
	for {
		l.skipWhitespaceAndComments()
		if l.atEOF() {
			toks = append(toks, Token{Kind: TokEOF, Line: l.line, Col: l.col})
			return toks, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

func (l *lexer) atEOF() bool {
	return l.pos >= len(l.runes)
}

func (l *lexer) peekRune() rune {
	if l.atEOF() {
		return 0
	}
	return l.runes[l.pos]
}

func (l *lexer) advance() rune {
	r := l.runes[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.atEOF() {
		r := l.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '#':
			for !l.atEOF() && l.peekRune() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) remaining() string {
	return string(l.runes[l.pos:])
}

func (l *lexer) next() (Token, error) {
	startLine, startCol := l.line, l.col
	r := l.peekRune()

	switch {
	case r == '$' || r == '?':
		return l.lexVariable(startLine, startCol, r)
	case r == '\'' || r == '"':
		return l.lexString(startLine, startCol, r)
	case isPunct(r):
		l.advance()
		return Token{Kind: TokPunct, Text: string(r), Line: startLine, Col: startCol}, nil
	}

	if m := reComparatorSym.FindString(l.remaining()); m != "" && !startsIdentOrDigit(r) {
		l.advanceN(len([]rune(m)))
		return Token{Kind: TokComparator, Text: m, Line: startLine, Col: startCol}, nil
	}

	if m := reDateTime.FindString(l.remaining()); m != "" {
		l.advanceN(len([]rune(m)))
		return Token{Kind: TokDateTime, Text: m, Line: startLine, Col: startCol}, nil
	}
	if m := reDate.FindString(l.remaining()); m != "" {
		l.advanceN(len([]rune(m)))
		return Token{Kind: TokDate, Text: m, Line: startLine, Col: startCol}, nil
	}
	if m := reReal.FindString(l.remaining()); m != "" {
		l.advanceN(len([]rune(m)))
		return Token{Kind: TokReal, Text: m, Line: startLine, Col: startCol}, nil
	}
	if m := reInteger.FindString(l.remaining()); m != "" {
		l.advanceN(len([]rune(m)))
		return Token{Kind: TokInteger, Text: m, Line: startLine, Col: startCol}, nil
	}
	if reIdentHead.MatchString(string(r)) {
		return l.lexIdentifier(startLine, startCol)
	}

	l.advance()
	return Token{}, &illegalCharError{line: startLine, col: startCol, char: r, source: l.src}
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func startsIdentOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || (r >= '0' && r <= '9')
}

func isPunct(r rune) bool {
	switch string(r) {
	case PunctSemicolon, PunctComma, PunctColon, PunctBraceOpen, PunctBraceClose, PunctBrackOpen, PunctBrackClose, PunctParenOpen, PunctParenClose:
		return true
	}
	return false
}

func (l *lexer) lexVariable(line, col int, sigil rune) (Token, error) {
	l.advance() // '$' or '?'
	start := l.pos
	if sigil == '$' && !l.atEOF() && l.peekRune() == '_' && (l.pos+1 >= len(l.runes) || !identTailRune(l.runes[l.pos+1])) {
		l.advance()
		return Token{Kind: TokVariable, Text: "$_", Line: line, Col: col}, nil
	}
	for !l.atEOF() && identTailRune(l.peekRune()) {
		l.advance()
	}
	name := string(l.runes[start:l.pos])
	if name == "" {
		return Token{}, &illegalCharError{line: line, col: col, char: sigil, source: l.src}
	}
	return Token{Kind: TokVariable, Text: string(sigil) + name, Line: line, Col: col}, nil
}

func identTailRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

func (l *lexer) lexIdentifier(line, col int) (Token, error) {
	start := l.pos
	l.advance()
	for !l.atEOF() && identTailRune(l.peekRune()) {
		l.advance()
	}
	text := string(l.runes[start:l.pos])
	kind := TokIdentifier
	if IsKeyword(text) {
		kind = TokKeyword
	}
	// "sub!" / "isa!" are keywords with a trailing '!' not matched by
	// identTailRune; check for it explicitly.
	if !l.atEOF() && l.peekRune() == '!' && (text == "sub" || text == "isa") {
		l.advance()
		text += "!"
		kind = TokKeyword
	}
	return Token{Kind: kind, Text: text, Line: line, Col: col}, nil
}

func (l *lexer) lexString(line, col int, quote rune) (Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	b.WriteRune(quote)
	for {
		if l.atEOF() {
			return Token{}, &illegalCharError{line: l.line, col: l.col, char: 0, source: l.src}
		}
		r := l.advance()
		if r == '\\' {
			if l.atEOF() {
				return Token{}, &illegalCharError{line: l.line, col: l.col, char: 0, source: l.src}
			}
			esc := l.advance()
			b.WriteRune('\\')
			b.WriteRune(esc)
			continue
		}
		b.WriteRune(r)
		if r == quote {
			break
		}
	}
	return Token{Kind: TokString, Text: b.String(), Line: line, Col: col}, nil
}

// renderCaret renders source's offending line with a caret under col,
// 1-indexed, matching §6.3's pointer rendering.
func renderCaret(source string, line, col int, message string) string {
	lines := strings.Split(source, "\n")
	var offending string
	if line >= 1 && line <= len(lines) {
		offending = lines[line-1]
	}
	caret := strings.Repeat(" ", max0(col-1)) + "^"
	return fmt.Sprintf("%s (line %d, column %d):\n%s\n%s", message, line, col, offending, caret)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
