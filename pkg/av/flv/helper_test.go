package flv

import (
	"testing"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/stretchr/testify/require"

	"flvtool/pkg/amf0"
)

func u32(v uint32) []byte {
	b := make([]byte, 4)
	pio.PutU32BE(b, v)
	return b
}

// buildStream lays out header, a zero linkage field, then every tag followed
// by its own size.
func buildStream(t *testing.T, h *Header, tags ...*Tag) []byte {
	t.Helper()

	b := append(h.Bytes(), u32(0)...)
	for _, tag := range tags {
		tb, err := tag.Bytes()
		require.NoError(t, err)
		b = append(b, tb...)
		b = append(b, u32(uint32(len(tb)))...)
	}
	return b
}

func metaTag(t *testing.T) *Tag {
	t.Helper()

	tag, err := NewScriptTag(0, []amf0.Value{
		amf0.String("onMetaData"),
		amf0.NewECMAArray(
			amf0.Property{Key: "duration", Value: amf0.Number(12.5)},
			amf0.Property{Key: "width", Value: amf0.Number(640)},
		),
	})
	require.NoError(t, err)
	return tag
}

// drain advances p until it reports a deficit.
func drain(t *testing.T, p *Parser) ([]Unit, Deficit) {
	t.Helper()

	var units []Unit
	for {
		u, err := p.Advance()
		require.NoError(t, err)
		if d, ok := u.(Deficit); ok {
			return units, d
		}
		units = append(units, u)
	}
}
