package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/krazyTry/ammcore-go/logging"
	"github.com/krazyTry/ammcore-go/simulator"
)

// Config is the root of the ammsim TOML file.
type Config struct {
	Logging   logging.Config   `toml:"logging"`
	Simulator simulator.Config `toml:"simulator"`
}

func NewDefaultConfig() Config {
	return Config{
		Logging:   logging.NewDefaultConfig(),
		Simulator: simulator.NewDefaultConfig(),
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := NewDefaultConfig()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read configuration %s", path)
	}
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return cfg, errors.Wrapf(err, "unable to decode configuration %s", path)
	}
	return cfg, nil
}

func Encode(cfg Config) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to encode configuration")
	}
	return buf.Bytes(), nil
}

func Save(path string, cfg Config) error {
	buf, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return errors.Wrapf(err, "unable to write configuration %s", path)
	}
	return nil
}
