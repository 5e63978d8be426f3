package av

import (
	"strings"

	"github.com/pkg/errors"
)

type MediaType uint8

const (
	_              MediaType = iota
	MediaTypeAudio           //音频
	MediaTypeVideo           //视频
	MediaTypeData            //脚本数据(onMetaData)
)

func (t MediaType) String() string {
	switch t {
	case MediaTypeAudio:
		return "audio"
	case MediaTypeVideo:
		return "video"
	case MediaTypeData:
		return "data"
	default:
		return "unknown"
	}
}

// Filter selects the media kinds kept by an extraction.
type Filter uint8

const (
	FilterAll Filter = iota
	FilterAudio
	FilterVideo
)

var errFilter = errors.New("filter must be one of audio, video, all")

func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "all":
		return FilterAll, nil
	case "audio":
		return FilterAudio, nil
	case "video":
		return FilterVideo, nil
	default:
		return FilterAll, errors.Wrapf(errFilter, "got %q", s)
	}
}

// Accept reports whether media of type t survives the filter. Script data
// describes the whole stream and is always kept.
func (f Filter) Accept(t MediaType) bool {
	switch t {
	case MediaTypeData:
		return true
	case MediaTypeAudio:
		return f == FilterAll || f == FilterAudio
	case MediaTypeVideo:
		return f == FilterAll || f == FilterVideo
	default:
		return false
	}
}

func (f Filter) String() string {
	switch f {
	case FilterAudio:
		return "audio"
	case FilterVideo:
		return "video"
	default:
		return "all"
	}
}
