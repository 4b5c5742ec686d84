package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "termtris/config.json"
	logFile = "termtris/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-color palette indices.
type ConfigColors struct {
	BoardColor  int    `json:"board"`
	GridColor   int    `json:"grid"`
	BorderColor int    `json:"border"`
	TextColor   int    `json:"text"`
	AccentColor int    `json:"accent"`
	PieceColors [7]int `json:"pieces"` // I, T, O, S, Z, L, J
}

type ConfigSymbols struct {
	Block rune `json:"block"`
	Empty rune `json:"empty"`
}

type Theme struct {
	DrawGrid            bool          `json:"draw_grid"`
	DrawBlockBackground bool          `json:"draw_block_bg"`
	Colors              ConfigColors  `json:"colors"`
	Symbols             ConfigSymbols `json:"symbols"`
}

// GUIConfig holds settings for the desktop window.
type GUIConfig struct {
	Scale int `json:"scale"`
}

type Config struct {
	Theme Theme     `json:"theme"`
	GUI   GUIConfig `json:"gui"`
}

// PieceColor returns the palette index for a piece kind, or the text color for an unknown kind.
func (c *Config) PieceColor(kind int) int {
	if kind < 0 || kind >= len(c.Theme.Colors.PieceColors) {
		return c.Theme.Colors.TextColor
	}
	return c.Theme.Colors.PieceColors[kind]
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Block, c.Theme.Symbols.Empty} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	colors := c.Theme.Colors
	all := append([]int{colors.BoardColor, colors.GridColor, colors.BorderColor, colors.TextColor, colors.AccentColor}, colors.PieceColors[:]...)
	for _, code := range all {
		if code < 0 || code > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256-color palette", code)}
		}
	}
	if c.GUI.Scale < 1 || c.GUI.Scale > 4 {
		return &InvalidConfig{fmt.Sprintf("gui scale %d must be between 1 and 4", c.GUI.Scale)}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

// DebugLogPath returns the debug log location, creating its directory.
func DebugLogPath() (string, error) {
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("parse config %s: %w", filePath, err)
	}
	return nil
}
