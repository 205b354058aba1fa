package stream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrBadConfig indicates a configuration value the streamer cannot use.
var ErrBadConfig = errors.New("bad config")

// EnvKeyReplacer maps nested config keys such as mqtt.url to MQTT_URL.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// MqttConfig describes the broker frames are published to.
type MqttConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	ClientID string `mapstructure:"client_id"`
	Topics   struct {
		Stream string `mapstructure:"stream"`
	} `mapstructure:"topics"`
}

// StripConfig describes the LED strip being driven.
type StripConfig struct {
	Pixels     int     `mapstructure:"pixels"`
	FPS        float64 `mapstructure:"fps"`
	Background string  `mapstructure:"background"`
}

// Config holds runtime configuration. Values are populated from
// .ledtween.yaml, LEDTWEEN_* env vars, and CLI flags.
type Config struct {
	Mqtt   MqttConfig  `mapstructure:"mqtt"`
	Strip  StripConfig `mapstructure:"strip"`
	Listen string      `mapstructure:"listen"`
}

// LoadConfig reads configuration from viper, applying defaults for any
// values not set elsewhere.
func LoadConfig() (Config, error) {
	viper.SetDefault("mqtt.url", "tcp://localhost:1883")
	viper.SetDefault("mqtt.username", "")
	viper.SetDefault("mqtt.password", "")
	viper.SetDefault("mqtt.client_id", "ledtween")
	viper.SetDefault("mqtt.topics.stream", "home/xmastree/stream")
	viper.SetDefault("strip.pixels", 500)
	viper.SetDefault("strip.fps", 30.0)
	viper.SetDefault("strip.background", "#000000")
	viper.SetDefault("listen", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Strip.Pixels < 1 || cfg.Strip.Pixels > MaxPixels {
		return Config{}, fmt.Errorf("%w: strip.pixels %d must be between 1 and %d", ErrBadConfig, cfg.Strip.Pixels, MaxPixels)
	}
	return cfg, nil
}
