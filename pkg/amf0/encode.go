package amf0

import (
	"io"
	"math"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
)

var (
	ErrStringTooLong = errors.New("amf0: string longer than 65535 bytes")
	ErrNilValue      = errors.New("amf0: nil value")
)

// Encode writes v to w.
func Encode(w io.Writer, v Value) error {
	b, err := Append(nil, v)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "write amf0 value")
	}
	return nil
}

// EncodeAll serialises vs back to back, the inverse of DecodeAll.
func EncodeAll(vs []Value) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	for i, v := range vs {
		if b, err = Append(b, v); err != nil {
			return nil, errors.Wrapf(err, "encode value %d", i)
		}
	}
	return b, nil
}

// Append appends the encoding of v to b.
func Append(b []byte, v Value) ([]byte, error) {
	return appendValue(b, v, 0)
}

func appendValue(b []byte, v Value, depth int) ([]byte, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	var err error
	switch v := v.(type) {
	case Number:
		b = append(b, markerNumber)
		b = appendFloat(b, float64(v))
	case Boolean:
		b = append(b, markerBoolean)
		if v {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	case String:
		b = append(b, markerString)
		if b, err = appendString(b, string(v)); err != nil {
			return nil, err
		}
	case LongString:
		b = append(b, markerLongString)
		b = appendU32(b, uint32(len(v)))
		b = append(b, v...)
	case Null:
		b = append(b, markerNull)
	case Undefined:
		b = append(b, markerUndefined)
	case Date:
		b = append(b, markerDate)
		b = appendFloat(b, v.Millis)
		tz := make([]byte, 2)
		pio.PutI16BE(tz, v.TimeZone)
		b = append(b, tz...)
	case *Object:
		b = append(b, markerObject)
		if b, err = appendProperties(b, v.Properties, depth); err != nil {
			return nil, err
		}
	case *ECMAArray:
		b = append(b, markerECMAArray)
		b = appendU32(b, v.Length)
		if b, err = appendProperties(b, v.Properties, depth); err != nil {
			return nil, err
		}
	case StrictArray:
		b = append(b, markerStrictArray)
		b = appendU32(b, uint32(len(v)))
		for _, e := range v {
			if b, err = appendValue(b, e, depth+1); err != nil {
				return nil, err
			}
		}
	case nil:
		return nil, ErrNilValue
	}
	return b, nil
}

func appendProperties(b []byte, ps Properties, depth int) ([]byte, error) {
	var err error
	for _, p := range ps {
		if b, err = appendString(b, p.Key); err != nil {
			return nil, err
		}
		if b, err = appendValue(b, p.Value, depth+1); err != nil {
			return nil, errors.Wrapf(err, "encode property %q", p.Key)
		}
	}
	return append(b, 0x00, 0x00, markerObjectEnd), nil
}

func appendString(b []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint16 {
		return nil, ErrStringTooLong
	}
	n := make([]byte, 2)
	pio.PutU16BE(n, uint16(len(s)))
	return append(append(b, n...), s...), nil
}

func appendU32(b []byte, v uint32) []byte {
	n := make([]byte, 4)
	pio.PutU32BE(n, v)
	return append(b, n...)
}

func appendFloat(b []byte, f float64) []byte {
	n := make([]byte, 8)
	pio.PutU64BE(n, math.Float64bits(f))
	return append(b, n...)
}
