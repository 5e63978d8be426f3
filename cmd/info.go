package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"flvtool/pkg/probe"
)

var (
	errInfoFailed = errors.New("some sources could not be read")
	errStdinTwice = errors.New(`standard input ("-") given more than once`)
)

type infoResult struct {
	info *probe.Info
	err  error
}

func (a *app) info(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("info", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sources := fs.Args()
	if len(sources) == 0 {
		sources = []string{"-"}
	}
	stdin := 0
	for _, src := range sources {
		if src == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errStdinTwice
	}

	results := make([]infoResult, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.InfoConcurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].info, results[i].err = a.probe(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for i, res := range results {
		if len(sources) > 1 {
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprintf(a.stdout, "%s:\n", sources[i])
		}
		if res.err != nil {
			failed = true
			a.logger.Error("probe source", zap.String("source", sources[i]), zap.Error(res.err))
			continue
		}
		if res.info.ScanErr != nil {
			a.logger.Warn("metadata scan stopped", zap.String("source", sources[i]), zap.Error(res.info.ScanErr))
		}
		if _, err := res.info.WriteTo(a.stdout); err != nil {
			return errors.Wrap(err, "write info")
		}
	}

	if failed {
		return errInfoFailed
	}
	return nil
}

func (a *app) probe(src string) (*probe.Info, error) {
	rc, err := a.open(src)
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}
	defer rc.Close()

	return probe.Probe(rc)
}
