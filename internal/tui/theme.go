package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"prompt-gallery/internal/mutate"
)

// The gallery must stay readable on light and dark terminals, so colors are adaptive and
// faint styling is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          lipgloss.TerminalColor = ac("240", "243")
	colorDisabled       lipgloss.TerminalColor = ac("252", "238")
	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
	colorSurfaceBg      lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg      lipgloss.TerminalColor = ac("235", "252")
	colorControlBg      lipgloss.TerminalColor = ac("252", "237")
	colorAccent         lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg       lipgloss.TerminalColor = ac("255", "255")
	colorBadgeBg        lipgloss.TerminalColor = ac("254", "238")
	colorBadgeFg        lipgloss.TerminalColor = ac("238", "250")

	colorToastSuccess lipgloss.TerminalColor = ac("28", "34")
	colorToastError   lipgloss.TerminalColor = ac("196", "160")
	colorToastWarning lipgloss.TerminalColor = ac("130", "178")
	colorToastInfo    lipgloss.TerminalColor = colorAccent
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleBadge() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Foreground(colorBadgeFg).Background(colorBadgeBg)
}

func toastColor(k mutate.ToastKind) lipgloss.TerminalColor {
	switch k {
	case mutate.ToastSuccess:
		return colorToastSuccess
	case mutate.ToastError:
		return colorToastError
	case mutate.ToastWarning:
		return colorToastWarning
	default:
		return colorToastInfo
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI, so only
// NO_COLOR is honored here and otherwise the terminal's capabilities are followed.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Color probing under-reports on some terminals; trust TERM/COLORTERM when they claim more.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) GALLERY_TUI_THEME=light|dark|auto
// 2) GALLERY_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic ("fg;bg")
// 4) macOS appearance
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GALLERY_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("GALLERY_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
