package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrUnknownMode = errors.New("unknown runtime mode")

const (
	DevelopmentMode = "development"
	ProductionMode  = "production"
)

const (
	defaultBackendHost       = "localhost"
	defaultBackendPort       = 8000
	defaultPieceMoveDuration = 100 * time.Millisecond
	defaultLivenessPeriod    = 15 * time.Second
)

type WebSocketConfig struct {
	DevelopmentURL string `yaml:"development_url" validate:"required,url"`
	ProductionURL  string `yaml:"production_url" validate:"required,url"`
}

type BackendConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
}

type AnimationConfig struct {
	PieceMoveDuration time.Duration `yaml:"piece_move_duration" validate:"min=0"`
}

type LivenessConfig struct {
	Period time.Duration `yaml:"period" validate:"min=0"`
}

type Config struct {
	Mode      string          `yaml:"mode"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Backend   BackendConfig   `yaml:"backend"`
	Animation AnimationConfig `yaml:"animation"`
	Liveness  LivenessConfig  `yaml:"liveness"`
}

func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Config{
		Mode:      DevelopmentMode,
		Backend:   BackendConfig{Host: defaultBackendHost, Port: defaultBackendPort},
		Animation: AnimationConfig{PieceMoveDuration: defaultPieceMoveDuration},
		Liveness:  LivenessConfig{Period: defaultLivenessPeriod},
	}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if mode := os.Getenv("CHESS_MODE"); mode != "" {
		c.Mode = mode
	}
	if host := os.Getenv("BACKEND_HOST"); host != "" {
		c.Backend.Host = host
	}
	if port := os.Getenv("BACKEND_PORT"); port != "" {
		v, err := strconv.Atoi(port)
		if err != nil {
			return errors.WithMessagef(err, "parse BACKEND_PORT '%s'", port)
		}
		c.Backend.Port = v
	}
	return nil
}

func (c Config) validate() error {
	if c.Mode != DevelopmentMode && c.Mode != ProductionMode {
		return errors.WithMessagef(ErrUnknownMode, "mode '%s'", c.Mode)
	}
	if err := validator.New().Struct(c); err != nil {
		return errors.WithMessage(err, "validate config")
	}
	return nil
}

func (c Config) WebSocketURL() string {
	if c.Mode == ProductionMode {
		return c.WebSocket.ProductionURL
	}
	return c.WebSocket.DevelopmentURL
}

func (c Config) BackendAddr() string {
	return "http://" + net.JoinHostPort(c.Backend.Host, strconv.Itoa(c.Backend.Port))
}
