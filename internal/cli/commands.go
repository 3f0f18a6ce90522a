package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/codalotl/splitdiff/internal/connector"
	"github.com/codalotl/splitdiff/internal/page"
	qcli "github.com/codalotl/splitdiff/internal/q/cli"
	"github.com/codalotl/splitdiff/internal/simplelogger"
	"github.com/codalotl/splitdiff/internal/tui"
	"github.com/codalotl/splitdiff/internal/viewmodel"
)

var runTUI = tui.Run

// defaultShowWidth is the width of `show` when stdout is not a terminal.
const defaultShowWidth = 120

// inputs are the two documents being compared.
type inputs struct {
	oldName, newName string
	oldText, newText string
}

// inputArgs checks the OLD and NEW positional args. "-" reads stdin; only one side may use it.
var inputArgs = qcli.Inputs("OLD", "NEW")

// readInputs reads the OLD and NEW positional args.
func readInputs(c *qcli.Context) (inputs, error) {
	oldPath, newPath := c.Args[0], c.Args[1]

	read := func(path string) (string, string, error) {
		if path == "-" {
			data, err := io.ReadAll(c.In)
			if err != nil {
				return "", "", qcli.Exitf(1, "read stdin: %w", err)
			}
			return "stdin", string(data), nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", qcli.Exitf(1, "read %s: %w", path, err)
		}
		return path, string(data), nil
	}

	var in inputs
	var err error
	if in.oldName, in.oldText, err = read(oldPath); err != nil {
		return inputs{}, err
	}
	if in.newName, in.newText, err = read(newPath); err != nil {
		return inputs{}, err
	}
	return in, nil
}

// build is the diff collaborator; its output is checked before anything renders it.
var build = viewmodel.Build

func buildModel(cfg Config, in inputs) (viewmodel.Model, error) {
	vm := build(in.oldText, in.newText, viewmodel.Options{SimilarityThreshold: cfg.SimilarityThreshold})
	simplelogger.Log("cli: model %s vs %s: rows=%d highlights=%d hunks=%d", in.oldName, in.newName, len(vm.Rows), len(vm.Highlights), len(vm.Hunks))
	if err := viewmodel.Validate(vm.Rows, vm.Highlights); err != nil {
		return viewmodel.Model{}, qcli.Exitf(1, "invalid diff of %s and %s: %w", in.oldName, in.newName, err)
	}
	return vm, nil
}

// scrollFlags registers the connector-surface flags shared by svg, blocks and hit.
type scrollFlags struct {
	left, right, height *float64
}

func addScrollFlags(cmd *qcli.Command) scrollFlags {
	fs := cmd.Flags()
	return scrollFlags{
		left:   fs.Float("left-scroll", 0, 0, "scroll offset of the left pane"),
		right:  fs.Float("right-scroll", 0, 0, "scroll offset of the right pane"),
		height: fs.Float("height", 0, 0, "viewport height (default: the full height of the longer document)"),
	}
}

func (f scrollFlags) snapshot(cfg Config, vm viewmodel.Model) connector.Snapshot {
	m := cfg.metrics()
	height := *f.height
	if height <= 0 {
		height = page.Height(vm, m)
	}
	return connector.Snapshot{
		Rows:           vm.Rows,
		Scroll:         connector.Scroll{Left: *f.left, Right: *f.right},
		ViewportHeight: height,
		Metrics:        m,
		Palette:        cfg.palette(),
	}
}

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:  "splitdiff",
		Short: "splitdiff shows two versions of a file side by side, with ribbons connecting the changes.",
		Use:   "OLD NEW",
		Args:  inputArgs,
	}
	theme := root.PersistentFlags().String("theme", 0, "", "color theme: dark or light (default from config)")

	load := func() (Config, error) {
		cfg, _, err := loadConfig()
		if err != nil {
			return Config{}, qcli.ExitError{Code: 1, Err: err}
		}
		if *theme != "" {
			if *theme != "dark" && *theme != "light" {
				return Config{}, qcli.UsageError{Message: fmt.Sprintf("invalid --theme %q: expected dark or light", *theme)}
			}
			cfg.Theme = *theme
		}
		return cfg, nil
	}

	// withModel loads config and both inputs before calling next.
	withModel := func(next func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error) qcli.RunFunc {
		return func(c *qcli.Context) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			in, err := readInputs(c)
			if err != nil {
				return err
			}
			vm, err := buildModel(cfg, in)
			if err != nil {
				return err
			}
			return next(c, cfg, in, vm)
		}
	}

	syncFlag := root.Flags().Bool("sync", 's', false, "start with synchronized scrolling")
	root.Run = withModel(func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error {
		tcfg := tuiConfig(cfg, in)
		tcfg.SyncScroll = tcfg.SyncScroll || *syncFlag
		if err := runTUI(c.Context, vm, tcfg); err != nil {
			return qcli.ExitError{Code: 1, Err: err}
		}
		return nil
	})

	htmlCmd := &qcli.Command{
		Name:  "html",
		Short: "Write a standalone HTML page with both panes and the connector.",
		Use:   "OLD NEW",
		Args:  inputArgs,
	}
	output := htmlCmd.Flags().String("output", 'o', "", "write to this file instead of stdout")
	htmlCmd.Run = withModel(func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error {
		opts := page.Options{
			OldName: in.oldName,
			NewName: in.newName,
			Theme:   cfg.Theme,
			Dark:    cfg.Palette.Dark.static(),
			Light:   cfg.Palette.Light.static(),
			Metrics: cfg.metrics(),
		}
		if *output == "" {
			return page.Write(c.Out, vm, opts)
		}
		f, err := os.Create(*output)
		if err != nil {
			return qcli.ExitError{Code: 1, Err: err}
		}
		if err := page.Write(f, vm, opts); err != nil {
			f.Close()
			return qcli.ExitError{Code: 1, Err: err}
		}
		if err := f.Close(); err != nil {
			return qcli.ExitError{Code: 1, Err: err}
		}
		simplelogger.Log("cli: wrote %s", *output)
		return nil
	})

	svgCmd := &qcli.Command{
		Name:  "svg",
		Short: "Write the connector ribbons as SVG.",
		Use:   "OLD NEW",
		Args:  inputArgs,
	}
	svgFlags := addScrollFlags(svgCmd)
	svgCmd.Run = withModel(func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error {
		s := svgFlags.snapshot(cfg, vm)
		shapes := connector.Draw(s)
		simplelogger.Log("cli: svg shapes=%d", len(shapes))
		return connector.WriteSVG(c.Out, shapes, s.Metrics.Width, s.ViewportHeight)
	})

	blocksCmd := &qcli.Command{
		Name:  "blocks",
		Short: "List connector blocks and their geometry.",
		Use:   "OLD NEW",
		Args:  inputArgs,
	}
	blocksFlags := addScrollFlags(blocksCmd)
	asJSON := blocksCmd.Flags().Bool("json", 0, false, "print JSON")
	blocksCmd.Run = withModel(func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error {
		listing := listBlocks(blocksFlags.snapshot(cfg, vm))
		if *asJSON {
			return writeBlocksJSON(c.Out, listing)
		}
		return writeBlocksText(c.Out, listing)
	})

	hitCmd := &qcli.Command{
		Name:  "hit",
		Short: "Report the block under a point on the connector and where clicking it scrolls to.",
		Long:  "Exits 1 when no block is under the point.",
		Use:   "OLD NEW",
		Args:  inputArgs,
	}
	hitFlags := addScrollFlags(hitCmd)
	hitX := hitCmd.Flags().Float("x", 0, -1, "x on the connector (negative: the middle)")
	hitY := hitCmd.Flags().Float("y", 0, 0, "y on the connector")
	hitCmd.Run = withModel(func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error {
		s := hitFlags.snapshot(cfg, vm)
		x := *hitX
		if x < 0 {
			x = s.Metrics.Width / 2
		}
		t, ok := connector.HitTest(s, x, *hitY)
		if !ok {
			return qcli.Exitf(1, "no block at x=%g y=%g", x, *hitY)
		}
		fmt.Fprintf(c.Out, "%s block rows %d-%d\n", t.Block.Type, t.Block.StartIndex, t.Block.EndIndex)
		fmt.Fprintf(c.Out, "left: line %d (scroll %g)\n", t.LeftLine, t.LeftScroll)
		fmt.Fprintf(c.Out, "right: line %d (scroll %g)\n", t.RightLine, t.RightScroll)
		return nil
	})

	showCmd := &qcli.Command{
		Name:  "show",
		Short: "Print both panes side by side without the interactive viewer.",
		Use:   "OLD NEW",
		Args:  inputArgs,
	}
	showWidth := showCmd.Flags().Int("width", 'w', 0, "output width in cells (default: terminal width, $COLUMNS, or 120)")
	showCmd.Run = withModel(func(c *qcli.Context, cfg Config, in inputs, vm viewmodel.Model) error {
		width := *showWidth
		if width <= 0 {
			width = defaultShowWidth
			if w, ok := terminalWidth(c.Out); ok {
				width = w
			}
		}
		_, err := fmt.Fprintln(c.Out, tui.RenderStatic(vm, width, tuiConfig(cfg, in)))
		return err
	})

	configCmd := &qcli.Command{
		Name:  "config",
		Short: "Print the effective configuration.",
		Args:  qcli.NoArgs,
	}
	sources := configCmd.Flags().Bool("sources", 0, false, "list the configuration sources that were read instead")
	configCmd.Run = func(c *qcli.Context) error {
		cfg, applied, err := loadConfig()
		if err != nil {
			return qcli.ExitError{Code: 1, Err: err}
		}
		if *sources {
			for _, s := range applied {
				fmt.Fprintln(c.Out, s)
			}
			return nil
		}
		return writeConfigJSON(c.Out, cfg)
	}

	versionCmd := &qcli.Command{
		Name:  "version",
		Short: "Print the splitdiff version.",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			_, err := fmt.Fprintln(c.Out, Version)
			return err
		},
	}

	root.AddCommand(htmlCmd, svgCmd, blocksCmd, hitCmd, showCmd, configCmd, versionCmd)
	return root
}

func tuiConfig(cfg Config, in inputs) tui.Config {
	return tui.Config{
		OldName:       in.oldName,
		NewName:       in.newName,
		Theme:         tui.ThemeName(cfg.Theme),
		Dark:          cfg.Palette.Dark.static(),
		Light:         cfg.Palette.Light.static(),
		TabWidth:      cfg.TabWidth,
		GutterWidth:   cfg.GutterWidth,
		SyncScroll:    cfg.SyncScroll,
		ShowConnector: cfg.ShowConnector,
	}
}

// terminalWidth reports the width of w when it is a terminal, falling back to $COLUMNS.
func terminalWidth(w io.Writer) (int, bool) {
	if f, ok := w.(*os.File); ok && f != nil {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				return width, true
			}
		}
	}
	if cols := strings.TrimSpace(os.Getenv("COLUMNS")); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

type blockListing struct {
	Type        string  `json:"type"`
	StartIndex  int     `json:"start"`
	EndIndex    int     `json:"end"`
	LeftTop     float64 `json:"leftTop"`
	LeftBottom  float64 `json:"leftBottom"`
	RightTop    float64 `json:"rightTop"`
	RightBottom float64 `json:"rightBottom"`
	Visible     bool    `json:"visible"`
}

// listBlocks lays out every block of s in row order, visible or not.
func listBlocks(s connector.Snapshot) []blockListing {
	blocks := connector.BuildBlocks(s.Rows)
	connector.SortBlocks(blocks)

	out := make([]blockListing, 0, len(blocks))
	for _, b := range blocks {
		g := connector.Layout(b, s.Rows, s.Scroll, s.Metrics)
		out = append(out, blockListing{
			Type:        b.Type.String(),
			StartIndex:  b.StartIndex,
			EndIndex:    b.EndIndex,
			LeftTop:     g.LeftTop,
			LeftBottom:  g.LeftBottom,
			RightTop:    g.RightTop,
			RightBottom: g.RightBottom,
			Visible:     g.Visible(s.ViewportHeight),
		})
	}
	return out
}

func writeBlocksText(w io.Writer, listing []blockListing) error {
	for _, b := range listing {
		hidden := ""
		if !b.Visible {
			hidden = " (hidden)"
		}
		if _, err := fmt.Fprintf(w, "%s rows %d-%d left %g-%g right %g-%g%s\n", b.Type, b.StartIndex, b.EndIndex, b.LeftTop, b.LeftBottom, b.RightTop, b.RightBottom, hidden); err != nil {
			return err
		}
	}
	return nil
}

func writeBlocksJSON(w io.Writer, listing []blockListing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listing)
}
