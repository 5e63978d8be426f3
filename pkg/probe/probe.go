// Package probe summarises an FLV stream: header flags and the first
// onMetaData tag.
package probe

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"flvtool/pkg/av"
	"flvtool/pkg/av/flv"
)

type Info struct {
	Header   *flv.Header
	Metadata flv.Metadata // nil when no script tag was found
	Tags     int          // tags read, the script tag included

	// ScanErr is set when scanning for metadata failed; what was
	// determined before the failure is still valid.
	ScanErr error
}

// Probe reads the header of r and scans for the first script data tag. Only
// a header failure is returned as an error.
func Probe(r io.Reader) (*Info, error) {
	rd := flv.NewReader(r)

	h, err := rd.ReadHeader()
	if err != nil {
		return nil, errors.Wrap(err, "read flv header")
	}
	info := &Info{Header: h}

	for {
		seg, err := rd.ReadSegment()
		if err == io.EOF {
			return info, nil
		}
		if err != nil {
			info.ScanErr = errors.Wrapf(err, "decode tag %d", info.Tags+1)
			return info, nil
		}
		if !seg.HasTag() {
			return info, nil
		}

		info.Tags++
		if seg.Tag.Type == flv.TagTypeScript {
			info.Metadata = seg.Tag.Metadata()
			return info, nil
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteTo prints the summary, one "name: value" line per known field.
func (i *Info) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "flv version: %d\n", i.Header.Version)
	fmt.Fprintf(&buf, "video: %s\n", yesNo(i.Header.HasVideo()))
	fmt.Fprintf(&buf, "audio: %s\n", yesNo(i.Header.HasAudio()))

	if i.Metadata != nil {
		fields := []struct {
			name string
			get  func() (float64, bool)
		}{
			{"duration", i.Metadata.Duration},
			{"width", i.Metadata.Width},
			{"height", i.Metadata.Height},
			{"framerate", i.Metadata.FrameRate},
		}
		for _, f := range fields {
			if v, ok := f.get(); ok {
				fmt.Fprintf(&buf, "%s: %s\n", f.name, formatNumber(v))
			}
		}

		if id, ok := i.Metadata.VideoCodecID(); ok {
			fmt.Fprintf(&buf, "video codec: %s\n", av.VideoCodecName(id))
		}
		if id, ok := i.Metadata.AudioCodecID(); ok {
			fmt.Fprintf(&buf, "audio codec: %s\n", av.AudioCodecName(id))
		}
	}

	if i.ScanErr != nil {
		fmt.Fprintf(&buf, "scan stopped: %v\n", i.ScanErr)
	}

	return buf.WriteTo(w)
}
