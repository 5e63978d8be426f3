package config

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger. Output is rotated under l.Path when set,
// and goes to fallback otherwise.
func NewLogger(l Log, fallback io.Writer) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	var w zapcore.WriteSyncer
	if l.Path == "" {
		w = zapcore.AddSync(fallback)
	} else {
		rotator, err := newRotator(l)
		if err != nil {
			return nil, err
		}
		w = zapcore.AddSync(rotator)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		w,
		level,
	)

	return zap.New(core, zap.AddCaller()), nil
}

// newRotator expects l to carry its defaults already (see Load).
func newRotator(l Log) (*rotatelogs.RotateLogs, error) {
	logPath, err := getAbsLogPath(l.Path)
	if err != nil {
		return nil, errors.Wrap(err, "get abs log path")
	}

	rotator, err := rotatelogs.New(
		logPath+"_%Y%m%d",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(time.Duration(l.Age)*24*time.Hour),
		rotatelogs.WithRotationTime(l.RotationTime),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create log rotator")
	}
	return rotator, nil
}

func getAbsLogPath(p string) (string, error) {
	if path.IsAbs(p) {
		return p, nil
	}

	binPath, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", err
	}

	logPath := filepath.Join(filepath.Dir(binPath), p)
	return logPath, nil
}
