package flv

import (
	"fmt"
	"io"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"

	"flvtool/pkg/amf0"
	"flvtool/pkg/av"
)

type TagType uint8

const (
	TagTypeAudio  TagType = 0x08
	TagTypeVideo  TagType = 0x09
	TagTypeScript TagType = 0x12
)

func (t TagType) String() string {
	switch t {
	case TagTypeAudio:
		return "audio"
	case TagTypeVideo:
		return "video"
	case TagTypeScript:
		return "script"
	default:
		return "unknown"
	}
}

const (
	maxDataSize = 0xffffff
	maxStreamID = 0xffffff
)

var (
	errTagTooLarge      = errors.New("flv: tag data larger than 16MiB")
	errStreamIDTooLarge = errors.New("flv: stream id wider than 24 bits")
)

type Tag struct {
	Type     TagType // tag类型 （1 byte）
	StreamID uint32  // 流ID (3 bytes), always 0 in practice

	// Data is the payload as it goes on the wire, for every tag type.
	Data []byte
	// Script is the decoded view of a script tag's Data. Change it through
	// SetScript so that Data follows.
	Script []amf0.Value

	timestamp uint32 // 3 bytes + 1 byte extension on the wire
}

// NewTag returns an audio or video tag carrying data.
func NewTag(typ TagType, timestamp uint32, data []byte) *Tag {
	t := &Tag{Type: typ, Data: data}
	t.SetTimestamp(timestamp)
	return t
}

// NewScriptTag returns a script data tag carrying vs.
func NewScriptTag(timestamp uint32, vs []amf0.Value) (*Tag, error) {
	t := &Tag{Type: TagTypeScript}
	if err := t.SetScript(vs); err != nil {
		return nil, err
	}
	t.SetTimestamp(timestamp)
	return t, nil
}

// SetScript replaces the script values and re-encodes Data from them.
func (t *Tag) SetScript(vs []amf0.Value) error {
	b, err := amf0.EncodeAll(vs)
	if err != nil {
		return errors.Wrap(err, "encode script data")
	}
	t.Data = b
	t.Script = vs
	return nil
}

// peekTagHeader validates the fixed part of a tag without needing its
// payload.
func peekTagHeader(b []byte) (TagType, uint32, error) {
	if len(b) < TagHeaderSize {
		return 0, 0, io.ErrUnexpectedEOF
	}

	size := pio.U24BE(b[1:4])
	if size == 0 {
		return 0, 0, ErrZeroLengthTagData
	}

	typ := TagType(b[0])
	switch typ {
	case TagTypeAudio, TagTypeVideo, TagTypeScript:
	default:
		return 0, 0, errors.Wrapf(ErrUnknownTagType, "type 0x%02x", b[0])
	}

	return typ, size, nil
}

// DecodeTag decodes a whole tag: the fixed 11 byte header followed by the
// payload. b must hold at least the complete tag; the payload is copied.
func DecodeTag(b []byte) (*Tag, error) {
	typ, size, err := peekTagHeader(b)
	if err != nil {
		return nil, err
	}
	if len(b) < TagHeaderSize+int(size) {
		return nil, io.ErrUnexpectedEOF
	}

	t := &Tag{
		Type:      typ,
		StreamID:  pio.U24BE(b[8:11]),
		Data:      make([]byte, size),
		timestamp: pio.U24BE(b[4:7]) | uint32(b[7])<<24,
	}
	copy(t.Data, b[TagHeaderSize:])

	if typ == TagTypeScript {
		if t.Script, err = amf0.DecodeAll(t.Data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMetadata, err)
		}
	}

	return t, nil
}

// Bytes encodes the tag with Data as the payload, unchanged.
func (t *Tag) Bytes() ([]byte, error) {
	switch {
	case len(t.Data) == 0:
		return nil, ErrZeroLengthTagData
	case len(t.Data) > maxDataSize:
		return nil, errTagTooLarge
	case t.StreamID > maxStreamID:
		return nil, errors.Wrapf(errStreamIDTooLarge, "got 0x%x", t.StreamID)
	}

	b := make([]byte, TagHeaderSize+len(t.Data))
	b[0] = uint8(t.Type)
	pio.PutU24BE(b[1:4], t.DataSize())
	pio.PutU24BE(b[4:7], t.timestamp&0xffffff)
	b[7] = uint8(t.timestamp >> 24)
	pio.PutU24BE(b[8:11], t.StreamID)
	copy(b[TagHeaderSize:], t.Data)

	return b, nil
}

// DataSize is the payload length written in the tag header.
func (t *Tag) DataSize() uint32 {
	return uint32(len(t.Data))
}

// WireSize is the size of the tag on the wire, header included.
func (t *Tag) WireSize() uint32 {
	return TagHeaderSize + t.DataSize()
}

// Timestamp returns the 32-bit timestamp in milliseconds.
func (t *Tag) Timestamp() uint32 {
	return t.timestamp
}

func (t *Tag) SetTimestamp(ts uint32) {
	t.timestamp = ts
}

func (t *Tag) MediaType() av.MediaType {
	switch t.Type {
	case TagTypeAudio:
		return av.MediaTypeAudio
	case TagTypeVideo:
		return av.MediaTypeVideo
	case TagTypeScript:
		return av.MediaTypeData
	default:
		return 0
	}
}

// Metadata gives typed access to a script tag's values. It is empty for
// audio and video tags.
func (t *Tag) Metadata() Metadata {
	return Metadata(t.Script)
}
