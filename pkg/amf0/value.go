// Package amf0 encodes and decodes AMF0 values as found in FLV script data.
//
// Decoded values form a closed set of types. Associative values keep their
// entries in wire order so that a decoded payload re-encodes to the same bytes.
package amf0

const (
	markerNumber      = 0x00
	markerBoolean     = 0x01
	markerString      = 0x02
	markerObject      = 0x03
	markerNull        = 0x05
	markerUndefined   = 0x06
	markerECMAArray   = 0x08
	markerObjectEnd   = 0x09
	markerStrictArray = 0x0a
	markerDate        = 0x0b
	markerLongString  = 0x0c
)

// Value is one of Number, Boolean, String, LongString, Object, ECMAArray,
// StrictArray, Date, Null or Undefined.
type Value interface {
	amf0Value()
}

type Number float64

type Boolean bool

// String is a short string (at most 65535 bytes on the wire).
type String string

type LongString string

type Null struct{}

type Undefined struct{}

// Date is milliseconds since the Unix epoch plus the reserved time zone field.
type Date struct {
	Millis   float64
	TimeZone int16
}

type StrictArray []Value

type Property struct {
	Key   string
	Value Value
}

// Properties is an ordered list of key/value entries.
type Properties []Property

// Get returns the value of the first entry named key.
func (ps Properties) Get(key string) (Value, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set replaces the first entry named key, or appends one. It reports whether
// an entry was appended.
func (ps *Properties) Set(key string, v Value) bool {
	for i := range *ps {
		if (*ps)[i].Key == key {
			(*ps)[i].Value = v
			return false
		}
	}
	*ps = append(*ps, Property{Key: key, Value: v})
	return true
}

type Object struct {
	Properties
}

// ECMAArray is an associative array. Length is the advisory count written
// before the entries; it is kept verbatim because encoders disagree on it.
type ECMAArray struct {
	Length uint32
	Properties
}

// NewECMAArray returns an array whose Length matches its entries.
func NewECMAArray(ps ...Property) *ECMAArray {
	return &ECMAArray{Length: uint32(len(ps)), Properties: ps}
}

// Set updates key and keeps Length in step when an entry is appended.
func (a *ECMAArray) Set(key string, v Value) {
	if a.Properties.Set(key, v) {
		a.Length++
	}
}

func (Number) amf0Value()      {}
func (Boolean) amf0Value()     {}
func (String) amf0Value()      {}
func (LongString) amf0Value()  {}
func (Null) amf0Value()        {}
func (Undefined) amf0Value()   {}
func (Date) amf0Value()        {}
func (StrictArray) amf0Value() {}
func (*Object) amf0Value()     {}
func (*ECMAArray) amf0Value()  {}
