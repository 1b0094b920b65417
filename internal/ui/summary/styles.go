package summary

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle   = lipgloss.NewStyle().Foreground(colorDim)
	readyStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen).
			Padding(0, 1)
)

const (
	checkMark = "[OK]"
	warnMark  = "[??]"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// palette resolves the styles for one rendering, plain when color is off.
type palette struct {
	color   bool
	title   styleFunc
	section styleFunc
	label   styleFunc
	ready   styleFunc
	warning styleFunc
}

func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func plain(str string) string { return str }

func newPalette(color bool) palette {
	if !color {
		return palette{title: plain, section: plain, label: plain, ready: plain, warning: plain}
	}
	return palette{
		color:   true,
		title:   sf(titleStyle),
		section: sf(sectionStyle),
		label:   sf(labelStyle),
		ready:   sf(readyStyle),
		warning: sf(warningStyle),
	}
}
