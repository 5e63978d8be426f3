package flv

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

const defaultReadBufSize = 8192

// Demuxer drives a Parser from an io.Reader. It hides deficits by reading
// more input and only returns decoded units.
type Demuxer struct {
	r           io.Reader
	parser      *Parser
	readBufSize int
	buf         []byte
	eof         bool
}

func NewDemuxer(r io.Reader, opts ...demuxerOption) *Demuxer {
	return (&Demuxer{r: r, parser: NewParser()}).loadOptions(opts...)
}

func (d *Demuxer) loadOptions(opts ...demuxerOption) *Demuxer {
	for _, opt := range opts {
		opt(d)
	}

	if d.readBufSize <= 0 {
		d.readBufSize = defaultReadBufSize
	}
	d.buf = make([]byte, d.readBufSize)

	return d
}

// Next returns the next *Header, PreTagSize or *Tag. At the end of the
// source it returns io.EOF if the stream ended between units and a wrapped
// io.ErrUnexpectedEOF if a unit was cut short.
func (d *Demuxer) Next(ctx context.Context) (Unit, error) {
	for {
		u, err := d.parser.Advance()
		if err != nil {
			return nil, err
		}

		need, ok := u.(Deficit)
		if !ok {
			return u, nil
		}

		if d.eof {
			if d.parser.Idle() {
				return nil, io.EOF
			}
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "source ended %d bytes short", int(need))
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := d.r.Read(d.buf)
		d.parser.Feed(d.buf[:n])
		if err == io.EOF {
			d.eof = true
		} else if err != nil {
			return nil, errors.Wrap(err, "read source")
		}
	}
}

type demuxerOption func(*Demuxer)

func WithDemuxerReadBufSize(n int) demuxerOption {
	return func(d *Demuxer) {
		d.readBufSize = n
	}
}
