// Package remux rewrites an FLV stream keeping a subset of its tags while
// keeping the output structurally valid.
package remux

import (
	"bufio"
	"context"
	"io"

	"github.com/nareix/joy4/utils/bits/pio"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"flvtool/pkg/av"
	"flvtool/pkg/av/flv"
)

type Stats struct {
	Kept    map[av.MediaType]int
	Dropped map[av.MediaType]int
	Bytes   int64 // bytes written to the sink
}

type Remuxer struct {
	w           *bufio.Writer
	filter      av.Filter
	logger      *zap.Logger
	readBufSize int

	gotHeader bool
	stats     Stats
}

var (
	errSink            = errors.New("sink writer required")
	errDuplicateHeader = errors.New("flv header already written")
	errTagBeforeHeader = errors.New("tag before flv header")
)

func New(w io.Writer, opts ...remuxerOption) (*Remuxer, error) {
	if w == nil {
		return nil, errSink
	}
	return (&Remuxer{w: bufio.NewWriter(w)}).loadOptions(opts...), nil
}

func (r *Remuxer) loadOptions(opts ...remuxerOption) *Remuxer {
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	r.stats.Kept = make(map[av.MediaType]int)
	r.stats.Dropped = make(map[av.MediaType]int)

	return r
}

// WriteUnit handles one unit decoded from the input. The input's
// previous-tag-size fields are discarded: each kept tag is followed by its
// own size, so linkage reflects adjacency in the output.
func (r *Remuxer) WriteUnit(u flv.Unit) error {
	switch u := u.(type) {
	case *flv.Header:
		if r.gotHeader {
			return errDuplicateHeader
		}
		r.gotHeader = true

		h := *u
		switch r.filter {
		case av.FilterAudio:
			h.SetVideoFlag(false)
		case av.FilterVideo:
			h.SetAudioFlag(false)
		}
		if err := r.write(h.Bytes()); err != nil {
			return errors.Wrap(err, "write header")
		}
		return r.writePreTagSize(0)

	case flv.PreTagSize, flv.Deficit:
		return nil

	case *flv.Tag:
		if !r.gotHeader {
			return errTagBeforeHeader
		}

		typ := u.MediaType()
		if !r.filter.Accept(typ) {
			r.stats.Dropped[typ]++
			return nil
		}

		b, err := u.Bytes()
		if err != nil {
			return errors.Wrapf(err, "encode %s tag", u.Type)
		}
		if err := r.write(b); err != nil {
			return errors.Wrapf(err, "write %s tag", u.Type)
		}
		r.stats.Kept[typ]++

		return r.writePreTagSize(uint32(len(b)))

	default:
		return errors.Errorf("unexpected unit %T", u)
	}
}

func (r *Remuxer) Flush() error {
	if err := r.w.Flush(); err != nil {
		return errors.Wrap(err, "flush sink")
	}
	return nil
}

// Run remuxes src into the sink until src is exhausted. A stream cut short
// in the middle of a unit is logged and the output produced so far is kept.
func (r *Remuxer) Run(ctx context.Context, src io.Reader) error {
	d := flv.NewDemuxer(src, flv.WithDemuxerReadBufSize(r.readBufSize))

	for {
		u, err := d.Next(ctx)
		if err != nil {
			if errors.Cause(err) == io.ErrUnexpectedEOF && r.gotHeader {
				r.logger.Warn("input truncated, remux stopped", zap.Error(err))
				break
			}
			if err == io.EOF {
				break
			}
			return errors.Wrap(err, "demux input")
		}

		if err := r.WriteUnit(u); err != nil {
			return err
		}
	}

	if err := r.Flush(); err != nil {
		return err
	}

	r.logger.Debug("remux done",
		zap.Stringer("filter", r.filter),
		zap.Int("audio", r.stats.Kept[av.MediaTypeAudio]),
		zap.Int("video", r.stats.Kept[av.MediaTypeVideo]),
		zap.Int("data", r.stats.Kept[av.MediaTypeData]),
		zap.Int("dropped", r.stats.Dropped[av.MediaTypeAudio]+r.stats.Dropped[av.MediaTypeVideo]),
		zap.Int64("bytes", r.stats.Bytes),
	)

	return nil
}

func (r *Remuxer) Stats() Stats {
	return r.stats
}

func (r *Remuxer) writePreTagSize(size uint32) error {
	b := make([]byte, flv.PreTagSizeLength)
	pio.PutU32BE(b, size)
	if err := r.write(b); err != nil {
		return errors.Wrap(err, "write previous tag size")
	}
	return nil
}

func (r *Remuxer) write(b []byte) error {
	n, err := r.w.Write(b)
	r.stats.Bytes += int64(n)
	return err
}

type remuxerOption func(*Remuxer)

func WithFilter(f av.Filter) remuxerOption {
	return func(r *Remuxer) {
		r.filter = f
	}
}

func WithLogger(logger *zap.Logger) remuxerOption {
	return func(r *Remuxer) {
		r.logger = logger
	}
}

// WithReadBufSize sets how many bytes Run reads from the source at a time.
func WithReadBufSize(n int) remuxerOption {
	return func(r *Remuxer) {
		r.readBufSize = n
	}
}
