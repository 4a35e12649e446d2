// Package config loads the command line tool's settings.
package config

import (
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/render"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log logx.LogConf

	// DataDir overrides the platform data directory.
	DataDir string `json:",optional"`

	Render RenderConf
	Perft  PerftConf
}

type RenderConf struct {
	SquareSize int  `json:",default=64"`
	Flipped    bool `json:",optional"`
}

type PerftConf struct {
	Depth int `json:",default=4"`
}

// Default returns the configuration used when no file is given.
func Default() (Config, error) {
	var c Config
	if err := conf.FillDefault(&c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Load reads and validates the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default()
	}
	var c Config
	if err := conf.Load(path, &c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Parse reads a YAML document.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := conf.LoadFromYamlBytes(data, &c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Render.SquareSize < render.MinSquareSize {
		return fmt.Errorf("%w: Render.SquareSize %d is below %d", ErrInvalidConfig, c.Render.SquareSize, render.MinSquareSize)
	}
	if c.Perft.Depth < 1 {
		return fmt.Errorf("%w: Perft.Depth must be positive, got %d", ErrInvalidConfig, c.Perft.Depth)
	}
	return nil
}

// SetupLogging applies the log settings with stat reports off.
func (c Config) SetupLogging() error {
	logx.DisableStat()
	return logx.SetUp(c.Log)
}
