package amf0

import (
	"bytes"
	"io"
	"math"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
)

// maxDepth bounds nesting of objects and arrays.
const maxDepth = 64

var (
	ErrUnsupportedMarker = errors.New("amf0: unsupported type marker")
	ErrMissingObjectEnd  = errors.New("amf0: missing object end marker")
	ErrTooDeep           = errors.New("amf0: values nested too deeply")
)

// Decode reads one value from r. It returns io.EOF only if r was exhausted
// before the first byte of the value; a value cut short is io.ErrUnexpectedEOF.
func Decode(r io.Reader) (Value, error) {
	var m [1]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, err
	}
	return decodeValue(r, m[0], 0)
}

// DecodeAll decodes every value of a script data payload. Decoding stops
// cleanly when the payload ends, including in the middle of a trailing value.
func DecodeAll(b []byte) ([]Value, error) {
	var vs []Value
	r := bytes.NewReader(b)
	for {
		v, err := Decode(r)
		if err != nil {
			switch errors.Cause(err) {
			case io.EOF, io.ErrUnexpectedEOF:
				return vs, nil
			default:
				return vs, err
			}
		}
		vs = append(vs, v)
	}
}

func decodeValue(r io.Reader, marker byte, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	switch marker {
	case markerNumber:
		f, err := readFloat(r)
		return Number(f), err
	case markerBoolean:
		b, err := readN(r, 1)
		if err != nil {
			return nil, err
		}
		return Boolean(b[0] != 0), nil
	case markerString:
		s, err := readString(r)
		return String(s), err
	case markerLongString:
		b, err := readN(r, 4)
		if err != nil {
			return nil, err
		}
		s, err := readN(r, int(pio.U32BE(b)))
		return LongString(s), err
	case markerNull:
		return Null{}, nil
	case markerUndefined:
		return Undefined{}, nil
	case markerDate:
		f, err := readFloat(r)
		if err != nil {
			return nil, err
		}
		tz, err := readN(r, 2)
		if err != nil {
			return nil, err
		}
		return Date{Millis: f, TimeZone: pio.I16BE(tz)}, nil
	case markerObject:
		ps, err := decodeProperties(r, depth)
		if err != nil {
			return nil, err
		}
		return &Object{Properties: ps}, nil
	case markerECMAArray:
		b, err := readN(r, 4)
		if err != nil {
			return nil, err
		}
		ps, err := decodeProperties(r, depth)
		if err != nil {
			return nil, err
		}
		return &ECMAArray{Length: pio.U32BE(b), Properties: ps}, nil
	case markerStrictArray:
		b, err := readN(r, 4)
		if err != nil {
			return nil, err
		}
		n := pio.U32BE(b)
		arr := make(StrictArray, 0, min(n, 1024))
		for i := uint32(0); i < n; i++ {
			m, err := readN(r, 1)
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(r, m[0], depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedMarker, "marker 0x%02x", marker)
	}
}

// decodeProperties reads key/value entries up to the empty key and object
// end marker.
func decodeProperties(r io.Reader, depth int) (Properties, error) {
	ps := Properties{}
	for {
		key, err := readString(r)
		if err != nil {
			return nil, err
		}

		m, err := readN(r, 1)
		if err != nil {
			return nil, err
		}

		if key == "" && m[0] == markerObjectEnd {
			return ps, nil
		}
		if m[0] == markerObjectEnd {
			return nil, errors.Wrapf(ErrMissingObjectEnd, "end marker after key %q", key)
		}

		v, err := decodeValue(r, m[0], depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "decode property %q", key)
		}
		ps = append(ps, Property{Key: key, Value: v})
	}
}

func readString(r io.Reader) (string, error) {
	b, err := readN(r, 2)
	if err != nil {
		return "", err
	}
	s, err := readN(r, int(pio.U16BE(b)))
	return string(s), err
}

func readFloat(r io.Reader) (float64, error) {
	b, err := readN(r, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(pio.U64BE(b)), nil
}

// readN reads exactly n bytes; running out of input is always
// io.ErrUnexpectedEOF since a value has already started.
func readN(r io.Reader, n int) ([]byte, error) {
	if n > 4096 {
		// grow with the input instead of trusting a length field
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		return buf.Bytes(), nil
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return b, nil
}
