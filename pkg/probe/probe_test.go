package probe

import (
	"bytes"
	"testing"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flvtool/pkg/amf0"
	"flvtool/pkg/av/flv"
)

func build(t *testing.T, h *flv.Header, tags ...*flv.Tag) []byte {
	b := append(h.Bytes(), 0, 0, 0, 0)
	for _, tag := range tags {
		tb, err := tag.Bytes()
		require.NoError(t, err)
		size := make([]byte, 4)
		pio.PutU32BE(size, uint32(len(tb)))
		b = append(append(b, tb...), size...)
	}
	return b
}

func onMetaData(t *testing.T) *flv.Tag {
	tag, err := flv.NewScriptTag(0, []amf0.Value{
		amf0.String("onMetaData"),
		amf0.NewECMAArray(
			amf0.Property{Key: "duration", Value: amf0.Number(12.5)},
			amf0.Property{Key: "width", Value: amf0.Number(640)},
			amf0.Property{Key: "framerate", Value: amf0.Number(29.97)},
			amf0.Property{Key: "videocodecid", Value: amf0.Number(7)},
			amf0.Property{Key: "audiocodecid", Value: amf0.Number(10)},
		),
	})
	require.NoError(t, err)
	return tag
}

func TestProbe(t *testing.T) {
	in := build(t, flv.NewHeader(true, true),
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17}),
		onMetaData(t),
		flv.NewTag(flv.TagTypeAudio, 0, []byte{0xaf}),
	)

	info, err := Probe(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, info.Tags)
	assert.NoError(t, info.ScanErr)

	var out bytes.Buffer
	_, err = info.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, `flv version: 1
video: yes
audio: yes
duration: 12.5
width: 640
framerate: 29.97
video codec: AVC
audio codec: AAC
`, out.String())
}

func TestProbeWithoutMetadata(t *testing.T) {
	in := build(t, flv.NewHeader(true, false), flv.NewTag(flv.TagTypeAudio, 0, []byte{0xaf}))

	info, err := Probe(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Nil(t, info.Metadata)
	assert.NoError(t, info.ScanErr)

	var out bytes.Buffer
	_, err = info.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "flv version: 1\nvideo: no\naudio: yes\n", out.String())
}

func TestProbeDegradesOnBadTag(t *testing.T) {
	in := append(flv.NewHeader(true, true).Bytes(), 0, 0, 0, 0)
	in = append(in, 0x12, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0x11, 0x00)

	info, err := Probe(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Nil(t, info.Metadata)
	assert.True(t, errors.Is(info.ScanErr, flv.ErrMalformedMetadata))

	var out bytes.Buffer
	_, err = info.WriteTo(&out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "video: yes\n")
	assert.Contains(t, out.String(), "scan stopped: decode tag 1")
}

func TestProbeBadHeader(t *testing.T) {
	_, err := Probe(bytes.NewReader([]byte("NOTFLV!!!")))
	assert.True(t, errors.Is(err, flv.ErrMalformedSignature))
}
