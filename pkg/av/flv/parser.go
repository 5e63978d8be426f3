package flv

import (
	"bytes"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
)

// Unit is one result of Parser.Advance: Deficit, *Header, PreTagSize or *Tag.
type Unit interface {
	flvUnit()
}

// Deficit is the number of bytes that must still be fed before the pending
// unit can be decoded.
type Deficit int

// PreTagSize is a previous-tag-size field as read from the input.
type PreTagSize uint32

func (Deficit) flvUnit()    {}
func (PreTagSize) flvUnit() {}
func (*Header) flvUnit()    {}
func (*Tag) flvUnit()       {}

type parserState uint8

const (
	stateHeader     parserState = iota // awaiting file header
	statePreTagSize                    // awaiting previous tag size
	stateTagHeader                     // awaiting the fixed part of a tag
	stateTagBody                       // data size known, awaiting the rest of the tag
)

// Parser decodes an FLV stream from arbitrarily chunked input. It never
// performs I/O: bytes are handed in with Feed and decoded units are pulled
// out with Advance until it reports a Deficit.
//
// Any error returned by Advance is final; the parser keeps returning it.
type Parser struct {
	state parserState
	need  int // bytes required to decode the unit of the current state
	buf   bytes.Buffer
	err   error
}

func NewParser() *Parser {
	return &Parser{state: stateHeader, need: HeaderSize}
}

// Feed appends b to the parser's buffer. It does not parse.
func (p *Parser) Feed(b []byte) {
	p.buf.Write(b)
}

// Buffered returns the number of fed bytes not yet consumed.
func (p *Parser) Buffered() int {
	return p.buf.Len()
}

// Idle reports whether the parser sits between units: the header has been
// decoded and no partial unit is buffered.
func (p *Parser) Idle() bool {
	return p.state != stateHeader && p.state != stateTagBody && p.buf.Len() == 0
}

// Advance decodes at most one unit from the buffered bytes, consuming
// exactly the bytes of that unit.
func (p *Parser) Advance() (Unit, error) {
	if p.err != nil {
		return nil, p.err
	}

	u, err := p.advance()
	if err != nil {
		p.err = err
		return nil, err
	}
	return u, nil
}

func (p *Parser) advance() (Unit, error) {
	if p.buf.Len() < p.need {
		return Deficit(p.need - p.buf.Len()), nil
	}

	switch p.state {
	case stateHeader:
		h, err := DecodeHeader(p.buf.Bytes()[:p.need])
		if err != nil {
			return nil, errors.Wrap(err, "decode header")
		}
		p.buf.Next(p.need)
		p.transition(statePreTagSize, PreTagSizeLength)
		return h, nil

	case statePreTagSize:
		size := pio.U32BE(p.buf.Next(p.need))
		p.transition(stateTagHeader, TagHeaderSize)
		return PreTagSize(size), nil

	case stateTagHeader:
		// peek the data size, the tag header stays buffered
		_, size, err := peekTagHeader(p.buf.Bytes())
		if err != nil {
			return nil, errors.Wrap(err, "decode tag header")
		}
		full := TagHeaderSize + int(size)
		if p.buf.Len() < full {
			p.transition(stateTagBody, full)
			return Deficit(full - p.buf.Len()), nil
		}
		return p.decodeTag(full)

	case stateTagBody:
		return p.decodeTag(p.need)

	default:
		return nil, errors.Errorf("flv: invalid parser state %d", p.state)
	}
}

func (p *Parser) decodeTag(full int) (Unit, error) {
	t, err := DecodeTag(p.buf.Bytes()[:full])
	if err != nil {
		return nil, errors.Wrap(err, "decode tag")
	}
	p.buf.Next(full)
	p.transition(statePreTagSize, PreTagSizeLength)
	return t, nil
}

func (p *Parser) transition(s parserState, need int) {
	p.state = s
	p.need = need
}
