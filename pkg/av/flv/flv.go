// Package flv decodes and encodes FLV containers: the file header, the
// tags and the previous-tag-size fields linking them.
package flv

import "github.com/pkg/errors"

const (
	HeaderSize       = 9  // signature(3) version(1) flags(1) data offset(4)
	TagHeaderSize    = 11 // type(1) data size(3) timestamp(3) timestamp ext(1) stream id(3)
	PreTagSizeLength = 4
)

// Signature is the magic at the start of every FLV stream.
var Signature = [3]byte{'F', 'L', 'V'}

var (
	ErrMalformedSignature   = errors.New("flv: malformed signature")
	ErrUnexpectedHeaderSize = errors.New("flv: unexpected header size")
	ErrUnknownTagType       = errors.New("flv: unknown tag type")
	ErrZeroLengthTagData    = errors.New("flv: zero length tag data")
	ErrMalformedMetadata    = errors.New("flv: malformed metadata")
)
