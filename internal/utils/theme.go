package utils

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/models"
)

// ThemeFileName is loaded from the config dir on startup.
const ThemeFileName = "theme.json"

// Theme holds ANSI color configuration for line mode output. Values are raw
// ANSI escape sequences (e.g. "\u001b[38;2;120;140;160m"). NO_COLOR disables
// all of them.
type Theme struct {
	Primary   string `json:"primary"`
	Breadtext string `json:"breadtext"`

	RoleUser      string `json:"roleUser"`
	RoleAssistant string `json:"roleAssistant"`
	Trace         string `json:"trace"`
}

func defaultTheme() *Theme {
	return &Theme{
		Primary:   "\u001b[38;2;110;130;150m",
		Breadtext: "\u001b[38;2;200;210;220m",

		RoleUser:      "\u001b[36m",
		RoleAssistant: "\u001b[34m",
		Trace:         "\u001b[2m",
	}
}

var globalTheme = *defaultTheme()

// LoadTheme loads (and possibly creates) the theme file within the config dir.
func LoadTheme(configDirPath string) error {
	conf, err := LoadConfigFromFile(configDirPath, ThemeFileName, defaultTheme())
	if err != nil {
		return fmt.Errorf("failed to load theme config: %w", err)
	}
	globalTheme = conf
	return nil
}

// NoColor reports whether color output should be disabled.
func NoColor() bool {
	return misc.Truthy(os.Getenv("NO_COLOR"))
}

const ansiReset = "\u001b[0m"

// Colorize wraps s with the given ANSI color code unless NO_COLOR is set or color is empty.
func Colorize(color, s string) string {
	if NoColor() || color == "" {
		return s
	}
	return color + s + ansiReset
}

func RoleColor(role models.Role) string {
	switch role {
	case models.RoleUser:
		return globalTheme.RoleUser
	default:
		return globalTheme.RoleAssistant
	}
}

func ThemeTraceColor() string   { return globalTheme.Trace }
func ThemePrimaryColor() string { return globalTheme.Primary }
