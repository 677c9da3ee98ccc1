package ics

// Lexer turns .ics text into a stream of tokens. It is a single-pass state
// machine with no backtracking: every call to Next consumes input and
// classifies exactly one token, and end of input surfaces as ErrEOF rather
// than a sentinel token.
type Lexer struct {
	name string
	src  string
	pos  int
}

// NewLexer creates a lexer over content; name labels the source (usually
// the file path) for diagnostics.
func NewLexer(name, content string) *Lexer {
	return &Lexer{name: name, src: content}
}

// Name returns the label of the source being lexed.
func (l *Lexer) Name() string { return l.name }

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Newlines are significant (they terminate RRULE clause lists); spaces,
// tabs and carriage returns are not.
func isInsignificant(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// Next returns the next token, or ErrEOF once the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	for l.pos < len(l.src) && isInsignificant(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{}, ErrEOF
	}

	c := l.src[l.pos]
	switch {
	case c == '\n':
		l.pos++
		return Token{Kind: KindNewline}, nil
	case c == ':':
		l.pos++
		return Token{Kind: KindColon}, nil
	case c == ';':
		l.pos++
		return Token{Kind: KindSemicolon}, nil
	case c == ',':
		l.pos++
		return Token{Kind: KindComma}, nil
	case c == '=':
		l.pos++
		return Token{Kind: KindEquals}, nil
	case c == '/':
		l.pos++
		return Token{Kind: KindSlash}, nil
	case c == '-':
		l.pos++
		return Token{Kind: KindDash}, nil
	case c == '_':
		l.pos++
		return Token{Kind: KindUnderscore}, nil
	case c == '.':
		l.pos++
		return Token{Kind: KindPeriod}, nil
	case isAlpha(c):
		return l.word(), nil
	case isDigit(c):
		return l.digits(), nil
	default:
		return l.freeText(), nil
	}
}

// word greedily captures an alphabetic run and matches it against the
// keyword table. The run only counts as a keyword when the character after
// it is a legal keyword terminator; otherwise identifiers that merely start
// with a keyword spelling (like the "T" or "Z" of a date literal followed
// by digits) would be misclassified.
func (l *Lexer) word() Token {
	start := l.pos
	for l.pos < len(l.src) && isAlpha(l.src[l.pos]) {
		l.pos++
	}
	run := l.src[start:l.pos]

	if kind, ok := keywords[run]; ok && l.keywordTerminated() {
		return Token{Kind: kind}
	}
	return Token{Kind: KindOther, Text: run}
}

// keywordTerminated reports whether the current position legally ends a
// keyword: end of input, whitespace, or one of the ':', ';', '=' separators.
func (l *Lexer) keywordTerminated() bool {
	if l.pos >= len(l.src) {
		return true
	}
	c := l.src[l.pos]
	return c == '\n' || isInsignificant(c) || c == ':' || c == ';' || c == '='
}

// digits captures a numeric-literal run.
func (l *Lexer) digits() Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: KindNumber, Text: l.src[start:l.pos]}
}

// freeText is the total fallback for anything else: capture up to the end
// of the line so unrecognized characters can never fail the lexer.
func (l *Lexer) freeText() Token {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	return Token{Kind: KindOther, Text: l.src[start:l.pos]}
}
