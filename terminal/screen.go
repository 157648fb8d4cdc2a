package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"pathway/editor"
	"pathway/graph"
)

// Options configures Run.
type Options struct {
	// Viewport is shown in the status bar; pass the same value to
	// editor.WithViewport so zoom shortcuts reach it.
	Viewport *Viewport
	// AltIsMeta treats Alt as Cmd for terminals that report it that way.
	AltIsMeta bool
	Logger    *zap.Logger
}

const helpLine = "↑/↓ select  space mark  enter connect  del remove  ^S save  q quit"

type app struct {
	screen tcell.Screen
	ed     *editor.Dispatcher
	opts   Options

	selected int
	source   string // node marked as the start of a connection
	status   string
}

// Run draws the editor on an initialized screen and processes key events
// until the user quits. The caller owns the screen and calls Fini.
func Run(screen tcell.Screen, ed *editor.Dispatcher, opts Options) error {
	if opts.Viewport == nil {
		opts.Viewport = NewViewport()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	a := &app{screen: screen, ed: ed, opts: opts}

	for {
		a.draw()
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey returns true when the editor should exit.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	a.status = ""
	nodes := a.ed.CurrentDocument().Nodes()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlS:
		a.run(editor.Save{})
		if a.status == "" {
			a.status = "saved"
		}
		return false
	case tcell.KeyUp:
		if a.selected > 0 {
			a.selected--
		}
		return false
	case tcell.KeyDown:
		if a.selected < len(nodes)-1 {
			a.selected++
		}
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		if n, ok := a.selectedNode(); ok {
			a.run(editor.RemoveNode{ID: n.ID})
			if a.source == n.ID {
				a.source = ""
			}
		}
		return false
	case tcell.KeyEnter:
		if n, ok := a.selectedNode(); ok && a.source != "" {
			a.run(editor.Connect{Source: a.source, Target: n.ID})
			a.source = ""
		}
		return false
	case tcell.KeyRune:
		if ev.Modifiers() == tcell.ModNone {
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				if n, ok := a.selectedNode(); ok {
					a.source = n.ID
					a.status = "connecting from " + n.Label()
				}
				return false
			}
		}
	}

	mods, key, ok := KeyChord(ev, a.opts.AltIsMeta)
	if !ok {
		return false
	}
	if !a.ed.HandleShortcut(mods, key) {
		a.opts.Logger.Debug("key not handled", zap.String("chord", editor.NormalizeChord(mods, key).String()))
	}
	a.clampSelection()
	return false
}

// run dispatches cmd and reports a failure on the status line.
func (a *app) run(cmd editor.Command) {
	if err := a.ed.Dispatch(cmd); err != nil {
		a.status = "error: " + err.Error()
	}
	a.clampSelection()
}

func (a *app) selectedNode() (graph.Node, bool) {
	nodes := a.ed.CurrentDocument().Nodes()
	if a.selected < 0 || a.selected >= len(nodes) {
		return graph.Node{}, false
	}
	return nodes[a.selected], true
}

// clampSelection keeps the selection in range and forgets a connection
// source that no longer exists, for example after an undo.
func (a *app) clampSelection() {
	doc := a.ed.CurrentDocument()
	if a.source != "" && !doc.HasNode(a.source) {
		a.source = ""
	}
	n := doc.NodeCount()
	if a.selected >= n {
		a.selected = n - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *app) draw() {
	s := a.screen
	s.Clear()
	_, height := s.Size()

	doc := a.ed.CurrentDocument()
	session := a.ed.Session()
	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	title := session.Name()
	if a.ed.IsDirty() {
		title += " *"
	}
	state := "inactive"
	if session.IsActive() {
		state = "active"
	}
	pos, total := a.ed.History().Stats()
	drawText(s, 0, 0, bold, title)
	drawText(s, len([]rune(title))+2, 0, dim,
		fmt.Sprintf("%s  history %d/%d  zoom %d%%", state, pos, total, int(a.opts.Viewport.Zoom*100+0.5)))

	row := 2
	drawText(s, 0, row, bold, fmt.Sprintf("Nodes (%d)", doc.NodeCount()))
	row++
	labels := make(map[string]string, doc.NodeCount())
	for i, n := range doc.Nodes() {
		labels[n.ID] = n.Label()
		marker := "  "
		if i == a.selected {
			marker = "> "
		}
		if n.ID == a.source {
			marker = marker[:1] + "@"
		}
		kind := "C"
		if n.Kind.Tag() == graph.KindNote {
			kind = "N"
		}
		style := tcell.StyleDefault
		if i == a.selected {
			style = style.Reverse(true)
		}
		drawText(s, 0, row, style, fmt.Sprintf("%s[%s] %s (%g, %g)", marker, kind, n.Label(), n.Position.X, n.Position.Y))
		row++
	}

	row++
	drawText(s, 0, row, bold, fmt.Sprintf("Edges (%d)", doc.EdgeCount()))
	row++
	for _, e := range doc.Edges() {
		arrow := "-->"
		if !e.Animated {
			arrow = "..>"
		}
		drawText(s, 2, row, tcell.StyleDefault, strings.Join([]string{labels[e.Source], arrow, labels[e.Target]}, " "))
		row++
	}

	if a.status != "" {
		drawText(s, 0, height-2, tcell.StyleDefault.Foreground(tcell.ColorYellow), a.status)
	}
	drawText(s, 0, height-1, dim, helpLine)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	width, height := s.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
