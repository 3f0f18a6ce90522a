package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/codalotl/splitdiff/internal/connector"
	"github.com/codalotl/splitdiff/internal/highlight"
	"github.com/codalotl/splitdiff/internal/viewmodel"
)

// ThemeName selects one of the two palettes in Config.
type ThemeName string

const (
	ThemeDark  ThemeName = "dark"
	ThemeLight ThemeName = "light"
)

// toggle returns the other theme.
func (t ThemeName) toggle() ThemeName {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// styles are the lipgloss styles of one theme.
type styles struct {
	palette connector.StaticPalette

	plain       lipgloss.Style
	removed     lipgloss.Style
	added       lipgloss.Style
	charRemoved lipgloss.Style
	charAdded   lipgloss.Style
	muted       lipgloss.Style
	header      lipgloss.Style
	ribbon      map[connector.BlockType]lipgloss.Style
}

func newStyles(name ThemeName, p connector.StaticPalette) styles {
	muted, ink := lipgloss.Color("#8b949e"), lipgloss.Color("#0d1117")
	if name == ThemeLight {
		muted, ink = lipgloss.Color("#57606a"), lipgloss.Color("#ffffff")
	}

	s := styles{
		palette:     p,
		plain:       lipgloss.NewStyle(),
		removed:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Removed)),
		added:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Added)),
		charRemoved: lipgloss.NewStyle().Foreground(ink).Background(lipgloss.Color(p.Removed)),
		charAdded:   lipgloss.NewStyle().Foreground(ink).Background(lipgloss.Color(p.Added)),
		muted:       lipgloss.NewStyle().Foreground(muted),
		header:      lipgloss.NewStyle().Bold(true),
		ribbon:      make(map[connector.BlockType]lipgloss.Style, 3),
	}
	for _, t := range []connector.BlockType{connector.BlockAdded, connector.BlockRemoved, connector.BlockModified} {
		s.ribbon[t] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color(t)))
	}
	return s
}

// line returns the style of plain text in a line of class on side.
func (s styles) line(class highlight.LineClass, side viewmodel.Side) lipgloss.Style {
	switch class {
	case highlight.LineRemoved:
		return s.removed
	case highlight.LineAdded:
		return s.added
	case highlight.LineModified:
		if side == viewmodel.SideLeft {
			return s.removed
		}
		return s.added
	}
	return s.plain
}

// char returns the style of highlighted runs on side.
func (s styles) char(side viewmodel.Side) lipgloss.Style {
	if side == viewmodel.SideLeft {
		return s.charRemoved
	}
	return s.charAdded
}
