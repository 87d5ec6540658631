// Package csvscan highlights delimited tabular text with a single-pass state
// machine. Quoted fields may contain delimiters, doubled quotes and newlines.
package csvscan

import (
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// DefaultDelimiter is the field delimiter used when none is configured.
const DefaultDelimiter = ','

// columnKinds colors adjacent columns differently; column i uses
// columnKinds[i%3]. The kinds carry no meaning beyond that.
//
//nolint:gochecknoglobals // Read-only lookup table.
var columnKinds = [...]token.Kind{token.Type, token.String, token.Keyword}

// ColumnKind returns the token kind used for the given zero-based column.
func ColumnKind(column int) token.Kind {
	return columnKinds[column%len(columnKinds)]
}

// Scanner implements highlight.Scanner for CSV-like text.
type Scanner struct {
	delimiter rune
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDelimiter sets the field delimiter. Quotes, carriage returns and
// newlines cannot be delimiters and are ignored.
func WithDelimiter(delimiter rune) Option {
	return func(s *Scanner) {
		switch delimiter {
		case '"', '\r', '\n', 0:
			return
		}
		s.delimiter = delimiter
	}
}

// New returns a Scanner, comma-delimited unless configured otherwise.
func New(opts ...Option) *Scanner {
	s := &Scanner{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delimiter returns the configured field delimiter.
func (s *Scanner) Delimiter() rune {
	return s.delimiter
}

// Scan implements highlight.Scanner.
//
// Each non-empty field becomes one token whose kind depends on its column.
// Delimiters and record terminators (\r, \n or \r\n) become Punctuation
// tokens. Empty fields produce no token.
func (s *Scanner) Scan(text string) []token.Token {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	const initialCapacityDivisor = 4
	sc := &scan{
		text:      text,
		offsets:   token.RuneOffsets(text),
		runes:     runes,
		delimiter: s.delimiter,
		tokens:    make([]token.Token, 0, len(runes)/initialCapacityDivisor+1),
	}
	sc.run()

	return sc.tokens
}

type state uint8

const (
	unquoted state = iota
	inQuotedField
)

// scan holds the per-call state of one Scan.
type scan struct {
	text      string
	offsets   []int
	runes     []rune
	delimiter rune
	tokens    []token.Token

	pos        int
	fieldStart int
	column     int
	state      state
}

func (sc *scan) run() {
	for sc.pos < len(sc.runes) {
		if sc.state == inQuotedField {
			sc.stepQuoted()
		} else {
			sc.stepUnquoted()
		}
	}
	sc.flushField(len(sc.runes))
}

func (sc *scan) stepQuoted() {
	if sc.runes[sc.pos] != '"' {
		sc.pos++
		return
	}
	// A doubled quote is an escaped quote; stay inside the field.
	if sc.pos+1 < len(sc.runes) && sc.runes[sc.pos+1] == '"' {
		sc.pos += 2
		return
	}
	sc.state = unquoted
	sc.pos++
}

func (sc *scan) stepUnquoted() {
	switch c := sc.runes[sc.pos]; {
	case c == '"':
		sc.state = inQuotedField
		sc.pos++

	case c == sc.delimiter:
		sc.flushField(sc.pos)
		sc.emit(token.Punctuation, sc.pos, sc.pos+1)
		sc.pos++
		sc.fieldStart = sc.pos
		sc.column++

	case c == '\r' || c == '\n':
		sc.flushField(sc.pos)
		end := sc.pos + 1
		if c == '\r' && end < len(sc.runes) && sc.runes[end] == '\n' {
			end++
		}
		sc.emit(token.Punctuation, sc.pos, end)
		sc.pos = end
		sc.fieldStart = sc.pos
		sc.column = 0

	default:
		sc.pos++
	}
}

// flushField emits the pending field ending at end, if it is non-empty.
func (sc *scan) flushField(end int) {
	if end > sc.fieldStart {
		sc.emit(ColumnKind(sc.column), sc.fieldStart, end)
	}
}

func (sc *scan) emit(kind token.Kind, start, end int) {
	sc.tokens = append(sc.tokens, token.Token{
		Text:  sc.text[sc.offsets[start]:sc.offsets[end]],
		Kind:  kind,
		Start: start,
	})
}
