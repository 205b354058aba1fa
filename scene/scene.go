package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Sentinel errors for scene loading and building.
var (
	// ErrUnsupportedFormat indicates a scene file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	// ErrMissingField indicates a required field (name, fixture, length) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateName indicates two fixtures or two tweens share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrUnknownFixture indicates a tween refers to a fixture that does not exist.
	ErrUnknownFixture = errors.New("tween refers to unknown fixture")
	// ErrBadValue indicates a style or goal value that is not a number or a
	// string, or that the fixture cannot display.
	ErrBadValue = errors.New("bad value")
)

// Format names a scene file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Scene describes fixtures on the strip and the tweens that animate them.
type Scene struct {
	Fixtures []Fixture `yaml:"fixtures" toml:"fixtures"`
	Tweens   []Tween   `yaml:"tweens" toml:"tweens"`
}

// Fixture declares a region of the strip and its initial style.
type Fixture struct {
	Name   string                 `yaml:"name" toml:"name"`
	Offset int                    `yaml:"offset" toml:"offset"`
	Length int                    `yaml:"length" toml:"length"`
	Style  map[string]interface{} `yaml:"style" toml:"style"`
}

// Tween declares one animation. Durations are in seconds; an omitted
// duration plays for one second.
type Tween struct {
	Name      string                 `yaml:"name" toml:"name"`
	Fixture   string                 `yaml:"fixture" toml:"fixture"`
	Duration  *float64               `yaml:"duration" toml:"duration"`
	Style     string                 `yaml:"style" toml:"style"`
	Direction string                 `yaml:"direction" toml:"direction"`
	Delay     float64                `yaml:"delay" toml:"delay"`
	Repeat    int                    `yaml:"repeat" toml:"repeat"`
	Reverses  bool                   `yaml:"reverses" toml:"reverses"`
	Autoplay  bool                   `yaml:"autoplay" toml:"autoplay"`
	Goals     map[string]interface{} `yaml:"goals" toml:"goals"`
}

// FormatOf picks the decoder for path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads a scene from a YAML or TOML file.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	var sc Scene
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, err
		}
	case TOML:
		if err := toml.Unmarshal(data, &sc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &sc, nil
}
