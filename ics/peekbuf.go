package ics

// PeekBuffer wraps a Lexer with a queue that supports arbitrary-depth,
// idempotent lookahead. Peek(k) never advances the lexer's logical position
// and repeated calls with the same k never re-lex; Next pops the front of
// the queue, pulling a fresh token only when the queue is empty.
type PeekBuffer struct {
	buf []lexResult
	lex *Lexer
}

// lexResult caches one lexer outcome, error included, so that peeking at a
// failing position is as repeatable as peeking at a token.
type lexResult struct {
	tok Token
	err error
}

// NewPeekBuffer wraps a lexer.
func NewPeekBuffer(lex *Lexer) *PeekBuffer {
	return &PeekBuffer{lex: lex}
}

// Peek returns the item k positions ahead, where k == 0 is the immediate
// next item.
func (p *PeekBuffer) Peek(k int) (Token, error) {
	for len(p.buf) <= k {
		tok, err := p.lex.Next()
		p.buf = append(p.buf, lexResult{tok: tok, err: err})
	}
	r := p.buf[k]
	return r.tok, r.err
}

// Next consumes and returns the front item, advancing the stream by one
// token.
func (p *PeekBuffer) Next() (Token, error) {
	if len(p.buf) > 0 {
		r := p.buf[0]
		p.buf = p.buf[1:]
		return r.tok, r.err
	}
	return p.lex.Next()
}
