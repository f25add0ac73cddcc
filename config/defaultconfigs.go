package config

import "github.com/ferdynandzaposki-spec/globesweeper2/engine"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground: true,
		ShadeAltColumns:      true,
		Colors: ConfigColors{
			Hidden:      66,
			HiddenAlt:   67,
			Revealed:    236,
			RevealedAlt: 237,
			Flag:        214,
			Mine:        255,
			Exploded:    160,
			CursorFG:    0,
			CursorBG:    4,
			Numbers:     [6]int{39, 40, 196, 21, 124, 37},
		},
		Symbols: ConfigSymbols{
			Hidden:    '·',
			Flag:      '⚑',
			Mine:      '✱',
			Exploded:  '✸',
			WrongFlag: '✗',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			DefaultPreset: "classic",
			Presets: []Preset{
				presetOf("classic", engine.DefaultConfig()),
				presetOf("large", engine.LargeConfig()),
			},
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

func presetOf(name string, c engine.GameConfig) Preset {
	return Preset{Name: name, Rows: c.Rows, Cols: c.Cols, Mines: c.Mines, Chording: c.Chording}
}
