package flv

import (
	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
)

// Segment is a previous-tag-size field and the tag following it. A nil Tag
// marks the end of the stream.
type Segment struct {
	PreTagSize uint32
	Tag        *Tag
}

func (s *Segment) HasTag() bool {
	return s.Tag != nil
}

func (s *Segment) Bytes() ([]byte, error) {
	b := make([]byte, PreTagSizeLength, PreTagSizeLength+TagHeaderSize)
	pio.PutU32BE(b, s.PreTagSize)
	if s.Tag == nil {
		return b, nil
	}

	tb, err := s.Tag.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "encode segment tag")
	}
	return append(b, tb...), nil
}
