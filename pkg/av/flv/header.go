package flv

import (
	"io"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
)

const (
	flagVideo uint8 = 0x01
	flagAudio uint8 = 0x04
)

type Header struct {
	Signature [3]byte
	Version   uint8
	Flags     uint8  // bit0: video, bit2: audio, 其余保留位原样保留
	Size      uint32 // declared header size, always HeaderSize
}

func NewHeader(hasAudio, hasVideo bool) *Header {
	h := &Header{Signature: Signature, Version: 1, Size: HeaderSize}
	h.SetAudioFlag(hasAudio)
	h.SetVideoFlag(hasVideo)
	return h
}

// DecodeHeader decodes the fixed size file header. b must be exactly
// HeaderSize bytes and only the canonical declared size is accepted.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	if len(b) > HeaderSize {
		return nil, errors.Wrapf(ErrUnexpectedHeaderSize, "%d bytes given", len(b))
	}

	h := &Header{
		Version: b[3],
		Flags:   b[4],
		Size:    pio.U32BE(b[5:9]),
	}
	copy(h.Signature[:], b[0:3])

	if h.Signature != Signature {
		return nil, errors.Wrapf(ErrMalformedSignature, "got % x", h.Signature[:])
	}
	if h.Size != HeaderSize {
		return nil, errors.Wrapf(ErrUnexpectedHeaderSize, "got %d", h.Size)
	}

	return h, nil
}

func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:3], h.Signature[:])
	b[3] = h.Version
	b[4] = h.Flags
	pio.PutU32BE(b[5:9], h.Size)
	return b
}

func (h *Header) HasVideo() bool {
	return h.Flags&flagVideo != 0
}

func (h *Header) HasAudio() bool {
	return h.Flags&flagAudio != 0
}

func (h *Header) SetVideoFlag(on bool) {
	h.setFlag(flagVideo, on)
}

func (h *Header) SetAudioFlag(on bool) {
	h.setFlag(flagAudio, on)
}

func (h *Header) setFlag(bit uint8, on bool) {
	if on {
		h.Flags |= bit
	} else {
		h.Flags &^= bit
	}
}
