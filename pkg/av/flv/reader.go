package flv

import (
	"bufio"
	"io"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
)

// Reader reads an FLV stream from a blocking source, one segment at a time.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

func (r *Reader) ReadHeader() (*Header, error) {
	b := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	return DecodeHeader(b)
}

// ReadSegment reads the next previous-tag-size field and the tag after it.
// It returns io.EOF when the source holds no further segment, and a segment
// without a tag when the source ends right after the size field.
func (r *Reader) ReadSegment() (*Segment, error) {
	b := make([]byte, PreTagSizeLength)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, err
	}
	seg := &Segment{PreTagSize: pio.U32BE(b)}

	t, err := r.readTag()
	switch {
	case err == io.EOF:
		return seg, nil
	case err != nil:
		return nil, err
	}

	seg.Tag = t
	return seg, nil
}

func (r *Reader) readTag() (*Tag, error) {
	hdr, err := r.r.Peek(TagHeaderSize)
	if err != nil {
		if err == io.EOF && len(hdr) > 0 {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	_, size, err := peekTagHeader(hdr)
	if err != nil {
		return nil, err
	}

	b := make([]byte, TagHeaderSize+int(size))
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, err
	}
	return DecodeTag(b)
}
