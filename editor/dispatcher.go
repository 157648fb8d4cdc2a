package editor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"pathway/graph"
	"pathway/layout"
)

// Viewport is implemented by the renderer. Zoom commands are forwarded to it
// and never touch the document.
type Viewport interface {
	ZoomToFit()
	ZoomIn()
	ZoomOut()
}

// Saver persists the session's document when a Save command runs.
type Saver interface {
	Save(name string, active bool, doc *graph.Document) error
}

// Dispatcher is the single entry point for every edit. Keyboard shortcuts,
// toolbar buttons and connection drags all end up in Dispatch, which applies
// the change to the current document, commits it to history and marks the
// session dirty.
type Dispatcher struct {
	history   *HistoryManager
	session   *Session
	layout    layout.Engine
	placement *Placement
	viewport  Viewport
	saver     Saver
	keymap    Keymap
	logger    *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLayout sets the engine used by TidyUp.
func WithLayout(e layout.Engine) Option {
	return func(d *Dispatcher) { d.layout = e }
}

// WithPlacement sets how positions for new nodes are chosen.
func WithPlacement(p *Placement) Option {
	return func(d *Dispatcher) { d.placement = p }
}

// WithViewport connects the renderer's viewport.
func WithViewport(v Viewport) Option {
	return func(d *Dispatcher) { d.viewport = v }
}

// WithSaver sets where Save writes the document. Without one, Save only
// marks the session clean.
func WithSaver(s Saver) Option {
	return func(d *Dispatcher) { d.saver = s }
}

// WithKeymap replaces the default shortcut table.
func WithKeymap(k Keymap) Option {
	return func(d *Dispatcher) { d.keymap = k }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher creates a dispatcher over an existing history and session.
func NewDispatcher(history *HistoryManager, session *Session, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		history: history,
		session: session,
		layout:  layout.NewGrid(),
		keymap:  DefaultKeymap(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.placement == nil {
		d.placement = NewPlacement(uint64(time.Now().UnixNano()))
	}
	return d
}

// NewEditor starts an editing session on doc (the starter template if nil).
func NewEditor(name string, doc *graph.Document, historySize int, opts ...Option) *Dispatcher {
	if doc == nil {
		doc = graph.Starter()
	}
	return NewDispatcher(NewHistoryManager(doc, historySize), NewSession(name, doc), opts...)
}

// CurrentDocument returns the document the renderer should draw.
func (d *Dispatcher) CurrentDocument() *graph.Document {
	return d.history.Current()
}

// CanUndo reports whether Undo would do anything.
func (d *Dispatcher) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (d *Dispatcher) CanRedo() bool { return d.history.CanRedo() }

// IsDirty reports unsaved content changes.
func (d *Dispatcher) IsDirty() bool { return d.session.IsDirty() }

// Session returns the session state.
func (d *Dispatcher) Session() *Session { return d.session }

// History returns the history manager.
func (d *Dispatcher) History() *HistoryManager { return d.history }

// Keymap returns the shortcut table in use.
func (d *Dispatcher) Keymap() Keymap { return d.keymap }

// Load replaces the document being edited, clearing history and marking
// the session clean.
func (d *Dispatcher) Load(doc *graph.Document) {
	d.history.Reset(doc)
	d.session.MarkSaved(d.history.Current())
}

// Dispatch applies cmd. Graph errors come back as *graph.GraphError and leave
// the document, history and dirty flag untouched. Undo and Redo at the edge
// of history are no-ops.
func (d *Dispatcher) Dispatch(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil", ErrUnknownCommand)
	}
	doc := d.history.Current()

	switch c := cmd.(type) {
	case AddConversationNode:
		label := c.Label
		if label == "" {
			label = DefaultConversationLabel
		}
		next, _ := doc.AddNode(graph.Conversation{Label: label, Description: c.Description}, d.placement.Next(doc))
		return d.commit(cmd, next)

	case AddNoteNode:
		label := c.Label
		if label == "" {
			label = DefaultNoteLabel
		}
		next, _ := doc.AddNode(graph.Note{Label: label}, d.placement.Next(doc))
		return d.commit(cmd, next)

	case Connect:
		next, _, err := doc.AddEdge(c.Source, c.Target, true)
		if err != nil {
			return d.reject(cmd, err)
		}
		return d.commit(cmd, next)

	case UpdateNode:
		next, err := doc.UpdateNode(c.ID, c.Patch)
		if err != nil {
			return d.reject(cmd, err)
		}
		return d.commit(cmd, next)

	case MoveNode:
		next, err := doc.UpdateNode(c.ID, graph.PatchPosition(c.Position))
		if err != nil {
			return d.reject(cmd, err)
		}
		return d.commit(cmd, next)

	case RemoveNode:
		return d.commit(cmd, doc.RemoveNode(c.ID))

	case RemoveEdge:
		return d.commit(cmd, doc.RemoveEdge(c.ID))

	case TidyUp:
		next, err := layout.Apply(d.layout, doc)
		if err != nil {
			return d.reject(cmd, err)
		}
		return d.commit(cmd, next)

	case Undo:
		if _, ok := d.history.Undo(); ok {
			d.logApplied(cmd)
		}
		return nil

	case Redo:
		if _, ok := d.history.Redo(); ok {
			d.logApplied(cmd)
		}
		return nil

	case ZoomToFit:
		if d.viewport != nil {
			d.viewport.ZoomToFit()
		}
		return nil

	case ZoomIn:
		if d.viewport != nil {
			d.viewport.ZoomIn()
		}
		return nil

	case ZoomOut:
		if d.viewport != nil {
			d.viewport.ZoomOut()
		}
		return nil

	case Save:
		if d.saver != nil {
			if err := d.saver.Save(d.session.Name(), d.session.IsActive(), doc); err != nil {
				return d.reject(cmd, fmt.Errorf("save failed: %w", err))
			}
		}
		d.session.MarkSaved(doc)
		d.logApplied(cmd)
		return nil

	case Rename:
		d.session.SetName(c.NewName)
		return nil

	case SetActive:
		d.session.SetActive(c.Active)
		return nil
	}

	return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

// HandleShortcut resolves a key chord and dispatches its command. It returns
// true if a command ran. Unbound chords, commands whose precondition is not
// met (Undo at the start of history) and failing commands are ignored.
func (d *Dispatcher) HandleShortcut(mods Modifiers, key string) bool {
	name, ok := d.keymap.Resolve(mods, key)
	if !ok {
		return false
	}
	switch name {
	case CmdUndo:
		if !d.CanUndo() {
			return false
		}
	case CmdRedo:
		if !d.CanRedo() {
			return false
		}
	}
	cmd, ok := DefaultCommand(name)
	if !ok {
		return false
	}
	if err := d.Dispatch(cmd); err != nil {
		d.logger.Debug("shortcut ignored", zap.String("command", string(name)), zap.Error(err))
		return false
	}
	return true
}

// commit records next unless it is structurally equal to the current document.
func (d *Dispatcher) commit(cmd Command, next *graph.Document) error {
	if next.Equal(d.history.Current()) {
		d.logger.Debug("command left document unchanged", zap.String("command", string(cmd.Name())))
		return nil
	}
	d.history.Commit(next)
	d.session.MarkDirty()
	d.logApplied(cmd)
	return nil
}

func (d *Dispatcher) reject(cmd Command, err error) error {
	d.logger.Debug("command rejected", zap.String("command", string(cmd.Name())), zap.Error(err))
	return err
}

func (d *Dispatcher) logApplied(cmd Command) {
	pos, total := d.history.Stats()
	doc := d.history.Current()
	d.logger.Debug("command applied",
		zap.String("command", string(cmd.Name())),
		zap.Int("nodes", doc.NodeCount()),
		zap.Int("edges", doc.EdgeCount()),
		zap.Int("historyPosition", pos),
		zap.Int("historyTotal", total),
		zap.Bool("dirty", d.session.IsDirty()),
	)
}
