package flv

import (
	"encoding/hex"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flvtool/pkg/amf0"
	"flvtool/pkg/av"
)

func TestTagLayout(t *testing.T) {
	tag := NewTag(TagTypeVideo, 0x01020304, []byte{0xaa, 0xbb})
	tag.StreamID = 0x000102

	b, err := tag.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "0900000202030401000102aabb", hex.EncodeToString(b))
	assert.Equal(t, uint32(13), tag.WireSize())
	assert.Equal(t, uint32(len(b)), tag.WireSize())
}

func TestTagRoundTrip(t *testing.T) {
	tags := []*Tag{
		NewTag(TagTypeAudio, 40, []byte{0xaf, 0x01, 0x21}),
		NewTag(TagTypeVideo, 0xff000001, []byte{0x17, 0x01, 0x00, 0x00, 0x00}),
		metaTag(t),
	}

	for _, tag := range tags {
		b, err := tag.Bytes()
		require.NoError(t, err)

		got, err := DecodeTag(b)
		require.NoError(t, err)
		assert.Equal(t, tag, got, tag.Type.String())
		assert.Equal(t, uint32(len(b)), got.WireSize())
	}
}

func TestTagTimestamp(t *testing.T) {
	tag := NewTag(TagTypeAudio, 0, []byte{0x01})
	tag.SetTimestamp(0x80ffffff)
	b, err := tag.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0x80}, b[4:8])

	got, err := DecodeTag(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80ffffff), got.Timestamp())
}

func TestTagMediaType(t *testing.T) {
	assert.Equal(t, av.MediaTypeAudio, NewTag(TagTypeAudio, 0, []byte{1}).MediaType())
	assert.Equal(t, av.MediaTypeVideo, NewTag(TagTypeVideo, 0, []byte{1}).MediaType())
	assert.Equal(t, av.MediaTypeData, metaTag(t).MediaType())
}

func TestDecodeTagErrors(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		err  error
	}{
		{"unknown type", "0100000100000000000000ff", ErrUnknownTagType},
		{"zero size", "0800000000000000000000", ErrZeroLengthTagData},
		{"short header", "0800000100", io.ErrUnexpectedEOF},
		{"short payload", "0800000200000000000000ff", io.ErrUnexpectedEOF},
		{"bad script data", "12000005000000000000000200017811", ErrMalformedMetadata},
	}

	for _, tt := range tests {
		raw, err := hex.DecodeString(tt.hex)
		require.NoError(t, err, tt.name)
		_, err = DecodeTag(raw)
		assert.True(t, errors.Is(err, tt.err), "%s: %v", tt.name, err)
	}
}

func TestDecodeTagKeepsScriptCause(t *testing.T) {
	raw, err := hex.DecodeString("12000005000000000000000200017811")
	require.NoError(t, err)

	_, err = DecodeTag(raw)
	assert.True(t, errors.Is(err, ErrMalformedMetadata))
	assert.True(t, errors.Is(err, amf0.ErrUnsupportedMarker))
}

func TestScriptTagReencodesValues(t *testing.T) {
	tag := metaTag(t)
	md := tag.Metadata()
	md.SetDuration(99)
	require.NoError(t, tag.SetScript(md))
	assert.Equal(t, uint32(len(tag.Data)), tag.DataSize())

	b, err := tag.Bytes()
	require.NoError(t, err)

	got, err := DecodeTag(b)
	require.NoError(t, err)
	d, ok := got.Metadata().Duration()
	require.True(t, ok)
	assert.Equal(t, 99.0, d)
	assert.Equal(t, amf0.String("onMetaData"), got.Script[0])
}

func TestSegmentBytes(t *testing.T) {
	seg := &Segment{PreTagSize: 13}
	b, err := seg.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 13}, b)
	assert.False(t, seg.HasTag())

	seg.Tag = NewTag(TagTypeAudio, 0, []byte{0xaf})
	b, err = seg.Bytes()
	require.NoError(t, err)
	assert.Len(t, b, 4+12)
	assert.Equal(t, byte(TagTypeAudio), b[4])
}

func TestScriptTagKeepsPayload(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		values []amf0.Value
	}{
		// string "x" then a number cut after two of its eight bytes
		{"cut trailing number", "120000070000000000000002000178003ff0", []amf0.Value{amf0.String("x")}},
		// only the string marker and half its length field
		{"no whole value", "12000002000000000000000200", nil},
	}

	for _, tt := range tests {
		raw, err := hex.DecodeString(tt.hex)
		require.NoError(t, err, tt.name)

		tag, err := DecodeTag(raw)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.values, tag.Script, tt.name)

		b, err := tag.Bytes()
		require.NoError(t, err, tt.name)
		assert.Equal(t, raw, b, tt.name)
		assert.Equal(t, uint32(len(b)), tag.WireSize(), tt.name)

		again, err := DecodeTag(b)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tag, again, tt.name)
	}
}

func TestTagBytesErrors(t *testing.T) {
	_, err := NewTag(TagTypeAudio, 0, nil).Bytes()
	assert.Equal(t, ErrZeroLengthTagData, err)

	empty, err := NewScriptTag(0, nil)
	require.NoError(t, err)
	_, err = empty.Bytes()
	assert.Equal(t, ErrZeroLengthTagData, err)

	tag := NewTag(TagTypeVideo, 0, []byte{0x17})
	tag.StreamID = 0x1000000
	_, err = tag.Bytes()
	assert.True(t, errors.Is(err, errStreamIDTooLarge))
}

func TestTagSizeFollowsData(t *testing.T) {
	tag := NewTag(TagTypeAudio, 0, []byte{0xaf})
	tag.Data = []byte{0xaf, 0x01, 0x02}
	assert.Equal(t, uint32(3), tag.DataSize())

	b, err := tag.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x03}, b[1:4])
	assert.Equal(t, uint32(len(b)), tag.WireSize())
}
