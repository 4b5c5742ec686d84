package config

var DefaultConfig Config
var DefaultTheme Theme
var MonoTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawGrid:            true,
		DrawBlockBackground: true,
		Colors: ConfigColors{
			BoardColor:  234,
			GridColor:   238,
			BorderColor: 60,
			TextColor:   250,
			AccentColor: 109,
			PieceColors: [7]int{51, 93, 226, 46, 196, 208, 21},
		},
		Symbols: ConfigSymbols{
			Block: '█',
			Empty: '·',
		},
	}

	MonoTheme = Theme{
		DrawGrid:            false,
		DrawBlockBackground: false,
		Colors: ConfigColors{
			BoardColor:  232,
			GridColor:   236,
			BorderColor: 244,
			TextColor:   252,
			AccentColor: 255,
			PieceColors: [7]int{255, 252, 250, 248, 246, 244, 242},
		},
		Symbols: ConfigSymbols{
			Block: '▓',
			Empty: ' ',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		GUI: GUIConfig{
			Scale: 1,
		},
	}
}
