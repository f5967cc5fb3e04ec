package mqstub

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/oimyounis/mqstub/utils"
)

const DefaultConfigPath = "config.yml"

type Config struct {
	Listen        ListenConfig     `yaml:"listen"`
	MaxPacketSize int              `yaml:"max_packet_size"` // 0 means the protocol maximum
	ReadTimeout   time.Duration    `yaml:"read_timeout"`    // 0 disables read deadlines
	Logging       LoggingConfig    `yaml:"logging"`
	WebSockets    WebSocketsConfig `yaml:"websockets"`
	Dashboard     DashboardConfig  `yaml:"dashboard"`
}

type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Encoding   string `yaml:"encoding"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
}

type WebSocketsConfig struct {
	Enabled           bool     `yaml:"enabled"`
	Listen            string   `yaml:"listen"`
	Path              string   `yaml:"path"`
	Origins           []string `yaml:"origins"`
	RejectEmptyOrigin bool     `yaml:"reject_empty_origin"`
}

type DashboardConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

func DefaultConfig() Config {
	return Config{
		Listen: ListenConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Encoding:   "console",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
		WebSockets: WebSocketsConfig{
			Listen: ":8083",
			Path:   "/mqtt",
		},
		Dashboard: DashboardConfig{
			Listen: ":18083",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" || !utils.PathExists(path) {
		return cfg, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error opening config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d out of range", c.Listen.Port)
	}

	if c.MaxPacketSize < 0 {
		return errors.New("max_packet_size must not be negative")
	}

	if c.ReadTimeout < 0 {
		return errors.New("read_timeout must not be negative")
	}

	if c.WebSockets.Enabled && !strings.HasPrefix(c.WebSockets.Path, "/") {
		return fmt.Errorf("websockets.path %q must start with /", c.WebSockets.Path)
	}

	return nil
}

// Address is the TCP bind address, host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Listen.Host, strconv.Itoa(c.Listen.Port))
}
