// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan tokenizes the Python subset accepted by npviz.
package scan // import "numpyviz.dev/npviz/scan"

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"numpyviz.dev/npviz/config"
)

// Token represents a token or text string returned from the scanner.
type Token struct {
	Type Type   // The type of this item.
	Line int    // The line number on which this token appears
	Text string // The text of this item.
}

// Type identifies the type of lex items.
type Type int

const (
	EOF   Type = iota // zero value so an empty scanner delivers EOF
	Error             // error occurred; value is text of error
	Newline           // end of a logical line
	// Interesting things
	Assign     // '='
	AugAssign  // '+=', '//=' etc.
	Char       // printable ASCII character; grab bag for unexpected input
	Colon      // ':'
	Comma      // ','
	Dot        // '.'
	Identifier // alphanumeric identifier
	LeftBrace  // '{'
	LeftBrack  // '['
	LeftParen  // '('
	Number     // integer, float or imaginary literal
	Operator   // known operator
	RightBrace // '}'
	RightBrack // ']'
	RightParen // ')'
	Semicolon  // ';'
	String     // quoted string (includes prefix and quotes)
)

var typeNames = [...]string{
	EOF:        "EOF",
	Error:      "Error",
	Newline:    "Newline",
	Assign:     "Assign",
	AugAssign:  "AugAssign",
	Char:       "Char",
	Colon:      "Colon",
	Comma:      "Comma",
	Dot:        "Dot",
	Identifier: "Identifier",
	LeftBrace:  "LeftBrace",
	LeftBrack:  "LeftBrack",
	LeftParen:  "LeftParen",
	Number:     "Number",
	Operator:   "Operator",
	RightBrace: "RightBrace",
	RightBrack: "RightBrack",
	RightParen: "RightParen",
	Semicolon:  "Semicolon",
	String:     "String",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	conf      *config.Config
	name      string // the name of the input; used only for error reports
	input     string // the text being scanned
	lastRune  rune   // most recent return from next()
	lastWidth int    // size of that rune
	line      int    // line number in input
	tokLine   int    // line on which the current token started
	pos       int    // current position in the input
	start     int    // start position of this item
	depth     int    // bracket nesting; newlines inside brackets are ignored
	lineStart bool   // at the start of a logical line
	done      bool   // an error was reported
	token     Token
}

// New creates and returns a new scanner for the source text.
func New(conf *config.Config, name, input string) *Scanner {
	return &Scanner{
		conf:      conf,
		name:      name,
		input:     input,
		line:      1,
		lineStart: true,
	}
}

// next returns the next rune in the input.
func (l *Scanner) next() rune {
	if l.pos >= len(l.input) {
		l.lastRune, l.lastWidth = eof, 0
		return eof
	}
	l.lastRune, l.lastWidth = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.lastWidth
	if l.lastRune == '\n' {
		l.line++
	}
	return l.lastRune
}

// peek returns but does not consume the next rune in the input.
func (l *Scanner) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peek2 returns the next two runes ahead, but does not consume anything.
func (l *Scanner) peek2() (rune, rune) {
	pos, line, last, width := l.pos, l.line, l.lastRune, l.lastWidth
	r1 := l.next()
	r2 := l.next()
	l.pos, l.line, l.lastRune, l.lastWidth = pos, line, last, width
	return r1, r2
}

// backup steps back one rune. Should only be called once per call of next.
func (l *Scanner) backup() {
	if l.lastRune == eof {
		return
	}
	l.pos -= l.lastWidth
	if l.lastRune == '\n' {
		l.line--
	}
	l.lastRune = eof
}

// ignore skips over the pending input.
func (l *Scanner) ignore() {
	l.start = l.pos
	l.tokLine = l.line
}

// emit passes an item back to the client.
func (l *Scanner) emit(t Type) stateFn {
	text := l.input[l.start:l.pos]
	l.token = Token{t, l.tokLine, text}
	if l.conf.Debug("tokens") {
		fmt.Fprintf(l.conf.Output(), "%s:%d: emit %s\n", l.name, l.tokLine, l.token)
	}
	l.lineStart = t == Newline
	l.ignore()
	return nil
}

// accept consumes the next rune if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf returns an error token and empties the input.
func (l *Scanner) errorf(format string, args ...interface{}) stateFn {
	l.token = Token{Error, l.tokLine, fmt.Sprintf(format, args...)}
	l.done = true
	l.input = ""
	l.start = 0
	l.pos = 0
	return nil
}

// Next returns the next token. After the input is exhausted, or an
// error token has been returned, it returns EOF.
func (l *Scanner) Next() Token {
	l.lastRune = eof
	l.lastWidth = 0
	l.tokLine = l.line
	l.token = Token{EOF, l.line, "EOF"}
	if l.done {
		return l.token
	}
	state := lexAny
	if l.lineStart && l.depth == 0 {
		state = lexIndent
	}
	for {
		state = state(l)
		if state == nil {
			return l.token
		}
	}
}

// state functions

// lexIndent scans the beginning of a logical line. Statements never begin
// with white space, but blank and comment-only lines may.
func lexIndent(l *Scanner) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	switch r := l.peek(); r {
	case eof, '\n', '#':
		l.ignore()
		return lexAny
	case '\\':
		// A continued line is still the start of a statement.
	default:
		if l.pos > l.start {
			return l.errorf("unexpected indent")
		}
	}
	l.ignore()
	return lexAny
}

// lexComment scans a comment. The comment marker has been consumed.
func lexComment(l *Scanner) stateFn {
	for {
		r := l.next()
		if r == eof || r == '\n' {
			l.backup()
			break
		}
	}
	l.ignore()
	return lexAny
}

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		if !l.lineStart {
			// Terminate the final statement.
			return l.emit(Newline)
		}
		return nil
	case r == '\n':
		if l.depth > 0 || l.lineStart {
			// Implicit line joining, or a blank line.
			l.ignore()
			if l.depth == 0 {
				return lexIndent
			}
			return lexAny
		}
		return l.emit(Newline)
	case r == '\\':
		if l.next() != '\n' {
			return l.errorf("unexpected character after line continuation character")
		}
		l.ignore()
		return lexAny
	case r == '#':
		return lexComment
	case isSpace(r):
		return lexSpace
	case r == '\'' || r == '"':
		l.backup() // So lexQuote can read the quote character.
		return lexQuote
	case isDigit(r):
		l.backup()
		return lexNumber
	case r == '.':
		if isDigit(l.peek()) {
			l.backup()
			return lexNumber
		}
		return l.emit(Dot)
	case r == '=':
		if l.peek() != '=' {
			return l.emit(Assign)
		}
		l.next()
		return l.emit(Operator)
	case isOperatorStart(r):
		return lexOperator
	case isAlphaNumeric(r):
		l.backup()
		return lexIdentifier
	case r == '(':
		l.depth++
		return l.emit(LeftParen)
	case r == ')':
		l.close()
		return l.emit(RightParen)
	case r == '[':
		l.depth++
		return l.emit(LeftBrack)
	case r == ']':
		l.close()
		return l.emit(RightBrack)
	case r == '{':
		l.depth++
		return l.emit(LeftBrace)
	case r == '}':
		l.close()
		return l.emit(RightBrace)
	case r == ',':
		return l.emit(Comma)
	case r == ':':
		return l.emit(Colon)
	case r == ';':
		return l.emit(Semicolon)
	case r <= unicode.MaxASCII && unicode.IsPrint(r):
		return l.emit(Char)
	default:
		return l.errorf("unrecognized character: %#U", r)
	}
}

// close records a closing bracket. Unbalanced brackets are left
// for the parser to report.
func (l *Scanner) close() {
	if l.depth > 0 {
		l.depth--
	}
}

// lexSpace scans a run of space characters.
// One space has already been seen.
func lexSpace(l *Scanner) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	l.ignore()
	return lexAny
}

// lexIdentifier scans an alphanumeric. A short run of string prefix
// letters followed by a quote is the start of a string instead.
func lexIdentifier(l *Scanner) stateFn {
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	word := l.input[l.start:l.pos]
	if r := l.peek(); (r == '\'' || r == '"') && isStringPrefix(word) {
		return lexQuote
	}
	return l.emit(Identifier)
}

// isStringPrefix reports whether s is a valid Python string prefix.
func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

// lexOperator completes scanning an operator. The first character has
// been consumed. An operator followed by '=' is an augmented assignment.
func lexOperator(l *Scanner) stateFn {
	r := l.lastRune
	switch r {
	case '*', '/', '<', '>':
		// Doubled forms: ** // << >>.
		l.accept(string(r))
	case '!':
		if l.peek() != '=' {
			return l.errorf("invalid syntax: %q", "!")
		}
	case '-':
		if l.accept(">") {
			return l.emit(Operator)
		}
	}
	op := l.input[l.start:l.pos]
	if l.peek() != '=' {
		return l.emit(Operator)
	}
	l.next()
	switch op {
	case "<", ">", "!":
		// Comparisons <=, >= and !=.
		return l.emit(Operator)
	case "~":
		return l.errorf("invalid syntax: %q", "~=")
	}
	return l.emit(AugAssign)
}

func isOperatorStart(r rune) bool {
	return strings.ContainsRune("+-*/%@&|^~<>!", r)
}

// lexNumber scans a number: decimal, hexadecimal, octal or binary
// integer, float, or imaginary. Underscores may separate digits.
// The parser (via strconv) checks the text in detail.
func lexNumber(l *Scanner) stateFn {
	digits := decimal
	if l.accept("0") {
		switch {
		case l.accept("xX"):
			digits = hex
		case l.accept("oO"):
			digits = octal
		case l.accept("bB"):
			digits = binary
		}
	}
	l.acceptRun(digits)
	if digits == decimal {
		if l.accept(".") {
			l.acceptRun(decimal)
		}
		if l.accept("eE") {
			l.accept("+-")
			if !isDigit(l.peek()) {
				return l.errorf("invalid decimal literal: %s", l.input[l.start:l.pos])
			}
			l.acceptRun(decimal)
		}
		l.accept("jJ")
	}
	if r := l.peek(); isAlphaNumeric(r) || r == '.' {
		l.next()
		return l.errorf("invalid number literal: %s", l.input[l.start:l.pos])
	}
	return l.emit(Number)
}

const (
	binary  = "01_"
	octal   = "01234567_"
	decimal = "0123456789_"
	hex     = "0123456789abcdefABCDEF_"
)

// lexQuote scans a quoted string, single or triple quoted.
// The next character is the quote.
func lexQuote(l *Scanner) stateFn {
	quote := l.next()
	triple := false
	if r1, r2 := l.peek2(); r1 == quote && r2 == quote {
		l.next()
		l.next()
		triple = true
	} else if r1 == quote {
		// Empty string.
		l.next()
		return l.emit(String)
	}
	for {
		switch r := l.next(); r {
		case '\\':
			if r := l.next(); r != eof {
				break
			}
			fallthrough
		case eof:
			return l.errorf("unterminated string literal")
		case '\n':
			if !triple {
				return l.errorf("unterminated string literal")
			}
		case quote:
			if !triple {
				return l.emit(String)
			}
			if r1, r2 := l.peek2(); r1 == quote && r2 == quote {
				l.next()
				l.next()
				return l.emit(String)
			}
		}
	}
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\r'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
