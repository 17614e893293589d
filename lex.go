package scriptexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenValue is a name or literal.
	tokenValue
	// tokenOp is a run of one operator rune.
	tokenOp
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. Tokens are maximal runs of either
// one repeated operator rune or non-operator runes. The first time EOF is
// encountered, the result is an EOF token with a nil error. Subsequent times,
// the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			tok.kind = tokenEOF
			l.eof = true
			return tok, nil
		}
		return tok, err
	}
	l.buf.WriteRune(r)
	if isOpRune(r) {
		tok.kind = tokenOp
		err = l.scan(func(c rune) bool { return c == r })
	} else {
		tok.kind = tokenValue
		err = l.scan(func(c rune) bool { return !isOpRune(c) })
	}
	tok.text = l.buf.String()
	return tok, err
}

// scan appends runes to the buffer while they satisfy in.
func (l *lexer) scan(in func(rune) bool) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !in(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}
