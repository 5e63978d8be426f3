// Package config loads flvtool settings and builds its logger.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	defaultReadBufSize     = 8192
	defaultInfoConcurrency = 4
	defaultLogLevel        = "info"
	defaultLogAge          = 7 // days
	defaultRotationTime    = 24 * time.Hour
)

type Config struct {
	ReadBufSize     int // 读源数据的缓冲区大小(默认8192字节)
	InfoConcurrency int // info 同时探测的文件数(默认4)

	// 日志配置
	Log Log
}

type Log struct {
	Path         string // 为空时写 stderr
	Level        string
	RotationTime time.Duration
	Age          int
}

// Load reads the YAML file at path. With an empty path it looks for an
// optional config.yaml in the config directory next to the binary.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read in config")
		}
	} else {
		configPath, err := getAbsConfigPath()
		if err != nil {
			return nil, errors.Wrap(err, "get abs config path")
		}
		v.SetConfigName("config")
		v.AddConfigPath(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "read in config")
			}
		}
	}

	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "Unmarshal config")
	}
	c.setDefaults()

	return c, nil
}

func (c *Config) setDefaults() {
	if c.ReadBufSize <= 0 {
		c.ReadBufSize = defaultReadBufSize
	}
	if c.InfoConcurrency <= 0 {
		c.InfoConcurrency = defaultInfoConcurrency
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Age <= 0 {
		c.Log.Age = defaultLogAge
	}
	if c.Log.RotationTime <= 0 {
		c.Log.RotationTime = defaultRotationTime
	}
}

func getAbsConfigPath() (string, error) {
	binPath, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(filepath.Dir(binPath), "config")
	return configPath, nil
}
