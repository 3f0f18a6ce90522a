// Package tui is the interactive two-pane viewer: the old document on the left, the new one on the right, and the connector ribbons drawn in a gutter
// between them.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codalotl/splitdiff/internal/connector"
	"github.com/codalotl/splitdiff/internal/q/uni"
	"github.com/codalotl/splitdiff/internal/simplelogger"
	"github.com/codalotl/splitdiff/internal/viewmodel"
)

// frameInterval bounds how often scrolling redraws the gutter.
const frameInterval = time.Second / 60

const (
	headerHeight = 1
	statusHeight = 1
)

// Config controls the viewer.
type Config struct {
	OldName string // shown above the left pane
	NewName string // shown above the right pane

	Theme ThemeName
	Dark  connector.StaticPalette
	Light connector.StaticPalette

	TabWidth    int
	GutterWidth int // cells between the panes

	SyncScroll    bool
	ShowConnector bool
}

// DefaultConfig returns a Config with the built-in palettes.
func DefaultConfig() Config {
	return Config{
		OldName:       "old",
		NewName:       "new",
		Theme:         ThemeDark,
		Dark:          connector.DarkPalette,
		Light:         connector.LightPalette,
		TabWidth:      4,
		GutterWidth:   9,
		ShowConnector: true,
	}
}

// frameMsg triggers the coalesced redraw of the gutter.
type frameMsg struct{}

// Model is the bubbletea model of the viewer.
type Model struct {
	vm     viewmodel.Model
	cfg    Config
	blocks []connector.Block

	ready       bool
	width       int
	height      int
	paneHeight  int
	leftWidth   int
	rightWidth  int
	gutterWidth int

	left  viewport.Model
	right viewport.Model
	focus viewmodel.Side

	theme         ThemeName
	styles        styles
	syncScroll    bool
	showConnector bool

	gutter       []string
	framePending bool
	frames       int

	current int // index into blocks of the last navigation, -1 before any
	status  string
}

// New returns a viewer for vm.
func New(vm viewmodel.Model, cfg Config) *Model {
	if cfg.Theme != ThemeLight {
		cfg.Theme = ThemeDark
	}
	blocks := connector.BuildBlocks(vm.Rows)
	connector.SortBlocks(blocks)

	m := &Model{
		vm:            vm,
		cfg:           cfg,
		blocks:        blocks,
		theme:         cfg.Theme,
		syncScroll:    cfg.SyncScroll,
		showConnector: cfg.ShowConnector,
		current:       -1,
	}
	m.styles = newStyles(m.theme, m.palette())
	return m
}

// Run shows the viewer until the user quits or ctx is done.
func Run(ctx context.Context, vm viewmodel.Model, cfg Config) error {
	m := New(vm, cfg)
	simplelogger.Log("tui: start rows=%d blocks=%d", len(vm.Rows), len(m.blocks))
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.redraw()
		return m, nil
	case frameMsg:
		m.framePending = false
		m.redraw()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.ready {
		return "initializing"
	}
	return m.header() + "\n" + m.body() + "\n" + m.statusLine()
}

// RenderStatic renders vm at its full height, without scrolling or a status bar, for printing.
func RenderStatic(vm viewmodel.Model, width int, cfg Config) string {
	m := New(vm, cfg)
	m.resize(width, max(len(vm.OldLines), len(vm.NewLines), 1)+headerHeight+statusHeight)
	m.redraw()
	return m.header() + "\n" + m.body()
}

func (m *Model) palette() connector.StaticPalette {
	if m.theme == ThemeLight {
		return m.cfg.Light
	}
	return m.cfg.Dark
}

func (m *Model) resize(width, height int) {
	m.width, m.height = max(width, 0), max(height, 0)
	m.paneHeight = max(1, m.height-headerHeight-statusHeight)
	m.gutterWidth = max(0, min(m.cfg.GutterWidth, m.width-2))
	m.leftWidth = max(0, (m.width-m.gutterWidth)/2)
	m.rightWidth = max(0, m.width-m.gutterWidth-m.leftWidth)

	leftOffset, rightOffset := m.left.YOffset, m.right.YOffset
	m.left = viewport.New(m.leftWidth, m.paneHeight)
	m.right = viewport.New(m.rightWidth, m.paneHeight)
	m.setContent()
	m.left.SetYOffset(leftOffset)
	m.right.SetYOffset(rightOffset)
	m.ready = true
}

func (m *Model) setContent() {
	m.left.SetContent(strings.Join(paneLines(m.vm, viewmodel.SideLeft, m.leftWidth, m.cfg.TabWidth, m.styles), "\n"))
	m.right.SetContent(strings.Join(paneLines(m.vm, viewmodel.SideRight, m.rightWidth, m.cfg.TabWidth, m.styles), "\n"))
}

func (m *Model) pane(side viewmodel.Side) *viewport.Model {
	if side == viewmodel.SideLeft {
		return &m.left
	}
	return &m.right
}

func (m *Model) other(side viewmodel.Side) viewmodel.Side {
	if side == viewmodel.SideLeft {
		return viewmodel.SideRight
	}
	return viewmodel.SideLeft
}

func (m *Model) snapshot() connector.Snapshot {
	return connector.Snapshot{
		Rows:           m.vm.Rows,
		Scroll:         connector.Scroll{Left: float64(m.left.YOffset), Right: float64(m.right.YOffset)},
		ViewportHeight: float64(m.paneHeight),
		Metrics:        connector.Metrics{LineHeight: 1, PaddingTop: 0, Width: float64(m.gutterWidth)},
		Palette:        m.styles.palette,
	}
}

// redraw rebuilds the gutter from the current scroll offsets.
func (m *Model) redraw() {
	m.frames++
	if !m.showConnector {
		m.gutter = nil
		return
	}
	m.gutter = gutterLines(m.snapshot(), m.styles)
	simplelogger.Log("tui: frame %d scroll=%d/%d", m.frames, m.left.YOffset, m.right.YOffset)
}

// scheduleFrame asks for a redraw on the next frame. Requests made while one is pending are dropped.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.framePending {
		return nil
	}
	m.framePending = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// scroll moves side's pane to offset (clamped). With sync on, the other pane follows.
func (m *Model) scroll(side viewmodel.Side, offset int) tea.Cmd {
	vp := m.pane(side)
	before := vp.YOffset
	vp.SetYOffset(offset)
	if m.syncScroll {
		m.pane(m.other(side)).SetYOffset(vp.YOffset)
	} else if vp.YOffset == before {
		return nil
	}
	return m.scheduleFrame()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !m.ready {
		if key.Matches(msg, keys.Quit) {
			return tea.Quit
		}
		return nil
	}

	offset := m.pane(m.focus).YOffset
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Down):
		return m.scroll(m.focus, offset+1)
	case key.Matches(msg, keys.Up):
		return m.scroll(m.focus, offset-1)
	case key.Matches(msg, keys.PageDown):
		return m.scroll(m.focus, offset+m.paneHeight)
	case key.Matches(msg, keys.PageUp):
		return m.scroll(m.focus, offset-m.paneHeight)
	case key.Matches(msg, keys.Top):
		return m.scroll(m.focus, 0)
	case key.Matches(msg, keys.Bottom):
		return m.scroll(m.focus, m.pane(m.focus).TotalLineCount())
	case key.Matches(msg, keys.Focus):
		m.focus = m.other(m.focus)
	case key.Matches(msg, keys.Next):
		return m.navigate(m.current + 1)
	case key.Matches(msg, keys.Prev):
		if m.current < 0 {
			return m.navigate(len(m.blocks) - 1)
		}
		return m.navigate(m.current - 1)
	case key.Matches(msg, keys.Sync):
		m.syncScroll = !m.syncScroll
		if m.syncScroll {
			return m.scroll(m.focus, offset)
		}
	case key.Matches(msg, keys.Connector):
		m.showConnector = !m.showConnector
		m.redraw()
	case key.Matches(msg, keys.Theme):
		m.theme = m.theme.toggle()
		m.styles = newStyles(m.theme, m.palette())
		m.setContent()
		m.redraw()
	}
	return nil
}

// navigate scrolls both panes to the start of blocks[i].
func (m *Model) navigate(i int) tea.Cmd {
	if len(m.blocks) == 0 {
		m.status = "no changes"
		return nil
	}
	i = max(0, min(i, len(m.blocks)-1))
	return m.jump(connector.TargetFor(m.vm.Rows, m.blocks[i], m.snapshot().Metrics))
}

func (m *Model) jump(t connector.Target) tea.Cmd {
	for i, b := range m.blocks {
		if b == t.Block {
			m.current = i
			break
		}
	}
	m.status = fmt.Sprintf("%s block %d/%d", t.Block.Type, m.current+1, len(m.blocks))
	simplelogger.Log("tui: jump to %s block rows %d-%d, lines %d/%d", t.Block.Type, t.Block.StartIndex, t.Block.EndIndex, t.LeftLine, t.RightLine)

	m.left.SetYOffset(int(t.LeftScroll))
	m.right.SetYOffset(int(t.RightScroll))
	return m.scheduleFrame()
}

const wheelStep = 3

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.ready {
		return nil
	}
	row := msg.Y - headerHeight
	if row < 0 || row >= m.paneHeight {
		return nil
	}

	side := m.focus
	inGutter := false
	switch {
	case msg.X < m.leftWidth:
		side = viewmodel.SideLeft
	case msg.X >= m.leftWidth+m.gutterWidth:
		side = viewmodel.SideRight
	default:
		inGutter = true
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scroll(side, m.pane(side).YOffset-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.scroll(side, m.pane(side).YOffset+wheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		if !inGutter {
			m.focus = side
			return nil
		}
		if !m.showConnector {
			return nil
		}
		t, ok := connector.HitTest(m.snapshot(), float64(msg.X-m.leftWidth)+0.5, float64(row)+0.5)
		if !ok {
			return nil
		}
		return m.jump(t)
	}
	return nil
}

func (m *Model) header() string {
	removed, added := viewmodel.Stats(m.vm.Rows)
	left := m.styles.header.Render(m.cfg.OldName)
	if removed > 0 {
		left += " " + m.styles.removed.Render("-"+strconv.Itoa(removed))
	}
	right := m.styles.header.Render(m.cfg.NewName)
	if added > 0 {
		right += " " + m.styles.added.Render("+"+strconv.Itoa(added))
	}
	return fit(left, m.leftWidth) + strings.Repeat(" ", m.gutterWidth) + fit(right, m.rightWidth)
}

func (m *Model) body() string {
	if m.gutterWidth == 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, m.left.View(), m.right.View())
	}
	gutter := make([]string, m.paneHeight)
	for i := range gutter {
		if i < len(m.gutter) {
			gutter[i] = fit(m.gutter[i], m.gutterWidth)
		} else {
			gutter[i] = strings.Repeat(" ", m.gutterWidth)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.left.View(), strings.Join(gutter, "\n"), m.right.View())
}

func (m *Model) statusLine() string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	parts := []string{
		m.focus.String(),
		"sync:" + onOff(m.syncScroll),
		"ribbons:" + onOff(m.showConnector),
		"theme:" + string(m.theme),
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, keys.helpLine())
	line, _ := uni.Truncate(strings.Join(parts, "  "), m.width, nil)
	return fit(m.styles.muted.Render(line), m.width)
}
