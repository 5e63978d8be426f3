package av

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	for s, want := range map[string]Filter{"all": FilterAll, "Audio": FilterAudio, "video": FilterVideo} {
		f, err := ParseFilter(s)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}

	_, err := ParseFilter("subtitles")
	assert.Error(t, err)
}

func TestFilterAccept(t *testing.T) {
	tests := []struct {
		f            Filter
		audio, video bool
	}{
		{FilterAll, true, true},
		{FilterAudio, true, false},
		{FilterVideo, false, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.audio, tt.f.Accept(MediaTypeAudio), tt.f.String())
		assert.Equal(t, tt.video, tt.f.Accept(MediaTypeVideo), tt.f.String())
		assert.True(t, tt.f.Accept(MediaTypeData), tt.f.String())
	}
}

func TestCodecNames(t *testing.T) {
	assert.Equal(t, "AVC", VideoCodecName(7))
	assert.Equal(t, "AAC", AudioCodecName(10))
	assert.Equal(t, "Unknown", VideoCodecName(99))
	assert.Equal(t, "Unknown", AudioCodecName(-1))
}
