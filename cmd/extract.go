package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"flvtool/pkg/av"
	"flvtool/pkg/remux"
)

var errTooManySources = errors.New("extract takes at most one source")

func (a *app) extract(ctx context.Context, args []string) (err error) {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	typ := fs.StringP("type", "t", "all", "tags to keep: audio, video or all")
	out := fs.StringP("out", "o", "-", `output path, "-" for standard output`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, err := av.ParseFilter(*typ)
	if err != nil {
		return err
	}

	src := "-"
	switch fs.NArg() {
	case 0:
	case 1:
		src = fs.Arg(0)
	default:
		return errTooManySources
	}

	in, err := a.open(src)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer in.Close()

	var w io.Writer
	if *out == "-" {
		// 下游关闭管道时让 write 返回 EPIPE，而不是被信号杀掉
		signal.Ignore(syscall.SIGPIPE)
		w = a.stdout
	} else {
		f, cerr := os.Create(*out)
		if cerr != nil {
			return errors.Wrap(cerr, "create output")
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "close output")
			}
		}()
		w = f
	}

	r, err := remux.New(w,
		remux.WithFilter(filter),
		remux.WithLogger(a.logger),
		remux.WithReadBufSize(a.config.ReadBufSize),
	)
	if err != nil {
		return err
	}

	if err := r.Run(ctx, in); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			a.logger.Debug("output closed", zap.Error(err))
			return nil
		}
		return err
	}
	return nil
}
