// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

type tokenKind int

const (
	tokString tokenKind = iota
	tokNumber
	tokName
	tokArrayOpen
	tokArrayClose
	tokOperator
)

type token struct {
	kind tokenKind
	text string // decoded string, number literal, name or operator
}

// kernSpaceThreshold is the TJ displacement (thousandths of an em, negative
// moves right) beyond which a word space is assumed.
const kernSpaceThreshold = -200

// contentStreamText returns the text shown by a page content stream. Line
// moves (T*, ', ", Td/TD with a vertical offset) start a new line. A new
// text matrix, a horizontal Td and a large TJ kerning gap become spaces.
func contentStreamText(data []byte) string {
	lx := &lexer{data: data}
	var b strings.Builder
	var operands []token

	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
	}
	space := func() {
		s := b.String()
		if len(s) > 0 && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
			b.WriteByte(' ')
		}
	}
	show := func(s string) {
		b.WriteString(printable(s))
	}
	lastString := func() (string, bool) {
		for i := len(operands) - 1; i >= 0; i-- {
			if operands[i].kind == tokString {
				return operands[i].text, true
			}
		}
		return "", false
	}

	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "Tj":
			if s, ok := lastString(); ok {
				show(s)
			}
		case "'", `"`:
			newline()
			if s, ok := lastString(); ok {
				show(s)
			}
		case "TJ":
			for _, op := range operands {
				switch op.kind {
				case tokString:
					show(op.text)
				case tokNumber:
					if n, err := strconv.ParseFloat(op.text, 64); err == nil && n < kernSpaceThreshold {
						space()
					}
				}
			}
		case "T*":
			newline()
		case "Tm":
			space()
		case "Td", "TD":
			if len(operands) >= 2 {
				ty, err := strconv.ParseFloat(operands[len(operands)-1].text, 64)
				switch {
				case err == nil && ty != 0:
					newline()
				default:
					space()
				}
			}
		case "ET":
			space()
		case "ID":
			lx.skipInlineImage()
		}
		operands = operands[:0]
	}
	return strings.TrimSpace(b.String())
}

// printable drops control characters other than newline and tab.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

type lexer struct {
	data []byte
	pos  int
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func (l *lexer) next() (token, bool) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			l.pos++
			return token{kind: tokString, text: decodeText(l.literal())}, true
		case c == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				l.pos += 2
				continue
			}
			l.pos++
			return token{kind: tokString, text: decodeText(l.hex())}, true
		case c == '>':
			l.pos++
		case c == '[':
			l.pos++
			return token{kind: tokArrayOpen, text: "["}, true
		case c == ']':
			l.pos++
			return token{kind: tokArrayClose, text: "]"}, true
		case c == '{' || c == '}' || c == ')':
			l.pos++
		case c == '/':
			l.pos++
			return token{kind: tokName, text: l.regular()}, true
		default:
			word := l.regular()
			if word == "" {
				l.pos++
				continue
			}
			if _, err := strconv.ParseFloat(word, 64); err == nil {
				return token{kind: tokNumber, text: word}, true
			}
			return token{kind: tokOperator, text: word}, true
		}
	}
	return token{}, false
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a (...) string body; the opening parenthesis is consumed.
func (l *lexer) literal() []byte {
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return out
			}
		case '\\':
			if l.pos >= len(l.data) {
				return out
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := int(e - '0')
				for i := 0; i < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; i++ {
					v = v*8 + int(l.data[l.pos]-'0')
					l.pos++
				}
				out = append(out, byte(v))
			default:
				out = append(out, e)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// hex reads a <...> string body; the opening bracket is consumed.
func (l *lexer) hex() []byte {
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		if c := l.data[l.pos]; !isSpace(c) {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++ // '>'
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// skipInlineImage moves past the binary data of an inline image, up to and
// including the EI operator.
func (l *lexer) skipInlineImage() {
	if i := bytes.Index(l.data[l.pos:], []byte("EI")); i >= 0 {
		for j := l.pos + i; j >= 0 && j+2 <= len(l.data); {
			if (j == 0 || isSpace(l.data[j-1])) && (j+2 == len(l.data) || isSpace(l.data[j+2])) {
				l.pos = j + 2
				return
			}
			k := bytes.Index(l.data[j+2:], []byte("EI"))
			if k < 0 {
				break
			}
			j += 2 + k
		}
	}
	l.pos = len(l.data)
}

// decodeText converts raw string bytes to text: UTF-16BE when the string
// carries a byte order mark, Latin-1 otherwise.
func decodeText(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		units := make([]uint16, 0, (len(raw)-2)/2)
		for i := 2; i+1 < len(raw); i += 2 {
			units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
		}
		return string(utf16.Decode(units))
	}
	runes := make([]rune, len(raw))
	for i, c := range raw {
		runes[i] = rune(c)
	}
	return string(runes)
}
