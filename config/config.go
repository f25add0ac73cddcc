package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
)

var (
	cfgFile = "globesweeper/config.yaml"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	Hidden      int    `yaml:"hidden"`
	HiddenAlt   int    `yaml:"hidden_alt"`
	Revealed    int    `yaml:"revealed"`
	RevealedAlt int    `yaml:"revealed_alt"`
	Flag        int    `yaml:"flag"`
	Mine        int    `yaml:"mine"`
	Exploded    int    `yaml:"exploded"`
	CursorFG    int    `yaml:"cursor_fg"`
	CursorBG    int    `yaml:"cursor_bg"`
	Numbers     [6]int `yaml:"numbers"`
}

// Symbol is a single character drawn in a cell. It is stored in the config
// file as text.
type Symbol rune

func (s Symbol) MarshalYAML() (interface{}, error) {
	return string(rune(s)), nil
}

func (s *Symbol) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	if utf8.RuneCountInString(text) != 1 {
		return fmt.Errorf("line %d: symbol must be a single character, got %q", value.Line, text)
	}
	r, _ := utf8.DecodeRuneInString(text)
	*s = Symbol(r)
	return nil
}

type ConfigSymbols struct {
	Hidden    Symbol `yaml:"hidden"`
	Flag      Symbol `yaml:"flag"`
	Mine      Symbol `yaml:"mine"`
	Exploded  Symbol `yaml:"exploded"`
	WrongFlag Symbol `yaml:"wrong_flag"`
}

type Theme struct {
	DrawCursorBackground bool          `yaml:"draw_cursor_bg"`
	ShadeAltColumns      bool          `yaml:"shade_alt_columns"`
	Colors               ConfigColors  `yaml:"colors"`
	Symbols              ConfigSymbols `yaml:"symbols"`
}

// Preset is a named board configuration offered on the setup screen.
type Preset struct {
	Name     string `yaml:"name"`
	Rows     int    `yaml:"rows"`
	Cols     int    `yaml:"cols"`
	Mines    int    `yaml:"mines"`
	Chording bool   `yaml:"chording"`
}

// GameConfig converts the preset to an engine configuration.
func (p Preset) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		Rows:     p.Rows,
		Cols:     p.Cols,
		Mines:    p.Mines,
		Chording: p.Chording,
	}
}

// GameSettings holds the presets and which one starts by default.
type GameSettings struct {
	DefaultPreset string   `yaml:"default_preset"`
	Presets       []Preset `yaml:"presets"`
}

// LogSettings controls the debug log.
type LogSettings struct {
	Level string `yaml:"level"`
}

type Config struct {
	Theme Theme        `yaml:"theme"`
	Game  GameSettings `yaml:"game"`
	Log   LogSettings  `yaml:"log"`
}

// InitConfig loads the user's config file over the defaults. A missing file
// is not an error.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	config.Game.Presets = append([]Preset(nil), DefaultConfig.Game.Presets...)
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []Symbol{s.Hidden, s.Flag, s.Mine, s.Exploded, s.WrongFlag} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if len(c.Game.Presets) == 0 {
		return &InvalidConfig{"at least one game preset is required"}
	}
	seen := make(map[string]bool)
	for _, p := range c.Game.Presets {
		key := strings.ToLower(p.Name)
		if key == "" {
			return &InvalidConfig{"game presets need a name"}
		}
		if seen[key] {
			return &InvalidConfig{fmt.Sprintf("duplicate game preset %q", p.Name)}
		}
		seen[key] = true
		if err := p.GameConfig().Validate(); err != nil {
			return &InvalidConfig{fmt.Sprintf("preset %q: %v", p.Name, err)}
		}
	}
	if c.Game.DefaultPreset != "" && !seen[strings.ToLower(c.Game.DefaultPreset)] {
		return &InvalidConfig{fmt.Sprintf("default preset %q is not defined", c.Game.DefaultPreset)}
	}
	return nil
}

// Preset looks up a preset by name, ignoring case. An empty name selects the
// default preset, or the first one when no default is set.
func (c *Config) Preset(name string) (Preset, bool) {
	if name == "" {
		name = c.Game.DefaultPreset
	}
	if name == "" && len(c.Game.Presets) > 0 {
		return c.Game.Presets[0], true
	}
	for _, p := range c.Game.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetNames returns the preset names in file order.
func (c *Config) PresetNames() []string {
	names := make([]string, len(c.Game.Presets))
	for i, p := range c.Game.Presets {
		names[i] = p.Name
	}
	return names
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	yamlData, err := yaml.Marshal(a)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, yamlData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
