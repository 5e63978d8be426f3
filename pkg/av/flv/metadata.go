package flv

import "flvtool/pkg/amf0"

// well known onMetaData keys
const (
	MetaDuration     = "duration"
	MetaWidth        = "width"
	MetaHeight       = "height"
	MetaFrameRate    = "framerate"
	MetaVideoCodecID = "videocodecid"
	MetaAudioCodecID = "audiocodecid"
)

// Metadata is the value sequence of a script data tag, typically
// "onMetaData" followed by an associative array.
type Metadata []amf0.Value

// Lookup scans the top level associative values in order and returns the
// first entry named key.
func (m Metadata) Lookup(key string) (amf0.Value, bool) {
	for _, v := range m {
		if pv, ok := properties(v).Get(key); ok {
			return pv, true
		}
	}
	return nil, false
}

// Number returns the numeric value of key. A missing key and a key holding
// something other than a number are both reported as absent.
func (m Metadata) Number(key string) (float64, bool) {
	v, ok := m.Lookup(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(amf0.Number)
	return float64(n), ok
}

func (m Metadata) Duration() (float64, bool)     { return m.Number(MetaDuration) }
func (m Metadata) Width() (float64, bool)        { return m.Number(MetaWidth) }
func (m Metadata) Height() (float64, bool)       { return m.Number(MetaHeight) }
func (m Metadata) FrameRate() (float64, bool)    { return m.Number(MetaFrameRate) }
func (m Metadata) VideoCodecID() (float64, bool) { return m.Number(MetaVideoCodecID) }
func (m Metadata) AudioCodecID() (float64, bool) { return m.Number(MetaAudioCodecID) }

// SetDuration sets duration in the first associative value, appending an
// ECMA array when there is none.
func (m *Metadata) SetDuration(d float64) {
	for _, v := range *m {
		switch v := v.(type) {
		case *amf0.ECMAArray:
			v.Set(MetaDuration, amf0.Number(d))
			return
		case *amf0.Object:
			v.Set(MetaDuration, amf0.Number(d))
			return
		}
	}
	*m = append(*m, amf0.NewECMAArray(amf0.Property{Key: MetaDuration, Value: amf0.Number(d)}))
}

func properties(v amf0.Value) amf0.Properties {
	switch v := v.(type) {
	case *amf0.ECMAArray:
		return v.Properties
	case *amf0.Object:
		return v.Properties
	case amf0.Number, amf0.Boolean, amf0.String, amf0.LongString, amf0.Date,
		amf0.StrictArray, amf0.Null, amf0.Undefined:
	}
	return nil
}
