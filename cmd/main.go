package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"flvtool/pkg/config"
)

const usage = `usage: flvtool [--config FILE] <command> [flags] [SOURCE...]

commands:
  info     print header flags and the metadata summary of each SOURCE
  extract  write a filtered copy of SOURCE

SOURCE is a file path or "-" for standard input (the default).
`

type app struct {
	config *config.Config
	logger *zap.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("flvtool", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "yaml config file")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}

	c, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "flvtool: %v\n", err)
		return 1
	}
	logger, err := config.NewLogger(c.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "flvtool: %v\n", err)
		return 1
	}
	defer logger.Sync()

	a := &app{
		config: c,
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "info":
		err = a.info(ctx, cmdArgs)
	case "extract":
		err = a.extract(ctx, cmdArgs)
	default:
		fmt.Fprintf(stderr, "flvtool: unknown command %q\n", cmd)
		fs.Usage()
		return 1
	}

	if err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		logger.Error(cmd, zap.Error(err))
		return 1
	}
	return 0
}

// open returns the source named by arg; "-" is standard input.
func (a *app) open(arg string) (io.ReadCloser, error) {
	if arg == "-" {
		return io.NopCloser(a.stdin), nil
	}
	return os.Open(arg)
}
