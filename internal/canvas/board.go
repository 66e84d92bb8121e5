package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/ironsheep/inkboard-mcp/internal/detection"
	"github.com/ironsheep/inkboard-mcp/internal/element"
	"github.com/ironsheep/inkboard-mcp/internal/geometry"
	"github.com/ironsheep/inkboard-mcp/internal/history"
	"github.com/ironsheep/inkboard-mcp/internal/imaging"
)

var (
	// ErrNotWriting is returned by CommitText when no text element is being
	// edited.
	ErrNotWriting = errors.New("no text element is being written")

	// ErrRegionNotFound is returned when a region id does not refer to the
	// most recent detection.
	ErrRegionNotFound = errors.New("region not found")

	// ErrClosed is returned by operations on a closed board.
	ErrClosed = errors.New("board is closed")
)

// Defaults for Options.
const (
	DefaultPenSize      = 4.0
	DefaultEraserRadius = 8.0
	DefaultIdleDelay    = 1500 * time.Millisecond
	DefaultPadding      = 16
)

// Options configures a Board.
type Options struct {
	// PenSize is the stroke width of new pencil elements.
	PenSize float64

	// EraserRadius is how far, in screen pixels, the eraser reaches.
	EraserRadius float64

	// IdleDelay is the quiescence window after the last drawing event
	// before regions are detected automatically. <= 0 disables it.
	IdleDelay time.Duration

	// Detection tunes region detection.
	Detection detection.Options

	// Renderer draws elements for detection and rendering. Defaults to
	// black ink with DefaultPadding.
	Renderer *imaging.Renderer

	// Scheduler drives the idle timer. Defaults to real timers.
	Scheduler Scheduler

	// OnRegions receives the result of every idle-triggered detection. It
	// runs on the timer goroutine without the board lock held.
	OnRegions func(*detection.RegionsResult)

	Logger *slog.Logger
}

// DefaultOptions returns the standard board settings.
func DefaultOptions() Options {
	return Options{
		PenSize:      DefaultPenSize,
		EraserRadius: DefaultEraserRadius,
		IdleDelay:    DefaultIdleDelay,
		Detection:    detection.DefaultOptions(),
	}
}

// Board is one drawing session: the element document, its undo history,
// the active tool and interaction, and the viewport.
//
// All methods are safe for concurrent use. Calls are serialized by a single
// lock, which also serializes the idle-detection callback with pointer
// handling.
type Board struct {
	mu sync.Mutex

	history *history.History[*element.Collection]
	nextID  int

	tool      Tool
	action    Action
	active    *selection
	viewport  Viewport
	spaceHeld bool
	panFrom   geometry.Point
	erased    bool

	tol          element.Tolerances
	penSize      float64
	eraserRadius float64

	renderer  *imaging.Renderer
	detect    detection.Options
	regions   []detection.Region
	idle      *IdleTimer
	onRegions func(*detection.RegionsResult)
	closed    bool

	logger *slog.Logger
}

// selection is the transient state of the element under interaction.
type selection struct {
	id       int
	position element.Position

	// offset from the pointer to (X1, Y1) for bounded elements, or to each
	// point for pencil strokes.
	offsetX, offsetY float64
	pointOffsets     []geometry.Point

	startX, startY float64
	moved          bool
}

// NewBoard creates an empty board with the selection tool active.
func NewBoard(opts Options) *Board {
	if opts.PenSize <= 0 {
		opts.PenSize = DefaultPenSize
	}
	if opts.EraserRadius <= 0 {
		opts.EraserRadius = DefaultEraserRadius
	}
	if opts.Renderer == nil {
		opts.Renderer = imaging.NewRenderer(color.Black, DefaultPadding)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	b := &Board{
		history:      history.New(element.NewCollection()),
		tool:         ToolSelection,
		action:       ActionNone,
		viewport:     DefaultViewport(),
		tol:          element.DefaultTolerances,
		penSize:      opts.PenSize,
		eraserRadius: opts.EraserRadius,
		renderer:     opts.Renderer,
		detect:       opts.Detection,
		onRegions:    opts.OnRegions,
		logger:       opts.Logger,
	}
	b.idle = NewIdleTimer(opts.IdleDelay, b.detectOnIdle, opts.Scheduler)
	return b
}

// Close stops idle detection. The board keeps answering reads afterwards
// but rejects new input.
func (b *Board) Close() {
	b.idle.Close()
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// State summarizes the board for clients.
type State struct {
	Tool      Tool           `json:"tool"`
	Action    Action         `json:"action"`
	Cursor    element.Cursor `json:"cursor,omitempty"`
	ActiveID  *int           `json:"active_id,omitempty"`
	Elements  int            `json:"elements"`
	CanUndo   bool           `json:"can_undo"`
	CanRedo   bool           `json:"can_redo"`
	Viewport  Viewport       `json:"viewport"`
	DocumentX float64        `json:"document_x"`
	DocumentY float64        `json:"document_y"`
}

// State returns a snapshot of the interaction state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked(geometry.Point{}, "")
}

func (b *Board) stateLocked(doc geometry.Point, cursor element.Cursor) State {
	s := State{
		Tool:      b.tool,
		Action:    b.action,
		Cursor:    cursor,
		Elements:  b.current().Len(),
		CanUndo:   b.history.CanUndo(),
		CanRedo:   b.history.CanRedo(),
		Viewport:  b.viewport,
		DocumentX: doc.X,
		DocumentY: doc.Y,
	}
	if b.active != nil {
		id := b.active.id
		s.ActiveID = &id
	}
	return s
}

// Tool returns the active tool.
func (b *Board) Tool() Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tool
}

// SetTool switches tools. Text being written is committed first and any
// other interaction is abandoned.
func (b *Board) SetTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.action == ActionWriting {
		if err := b.finishWritingLocked(); err != nil {
			return err
		}
	}
	b.tool = t
	b.endInteractionLocked()
	return nil
}

// Elements returns a copy of the current document in collection order.
func (b *Board) Elements() []element.Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current().Elements()
}

// Element returns the element with the given id.
func (b *Board) Element(id int) (element.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	el, ok := b.current().Get(id)
	if !ok {
		return element.Element{}, fmt.Errorf("element %d: %w", id, element.ErrNotFound)
	}
	return el, nil
}

// ElementSpec describes an element added programmatically.
type ElementSpec struct {
	Type           element.Type
	X1, Y1, X2, Y2 float64
	Points         []geometry.Point
	Size           float64
	Text           string
}

// AddElement creates an element from spec with a fresh id, canonicalizes
// it, and commits it as one undoable step.
func (b *Board) AddElement(spec ElementSpec) (element.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return element.Element{}, ErrClosed
	}

	size := spec.Size
	if size <= 0 {
		size = b.penSize
	}
	x1, y1 := spec.X1, spec.Y1
	if spec.Type == element.TypePencil {
		if len(spec.Points) == 0 {
			return element.Element{}, fmt.Errorf("pencil element needs at least one point")
		}
		x1, y1 = spec.Points[0].X, spec.Points[0].Y
	}

	el, err := element.Create(b.nextID, x1, y1, spec.X2, spec.Y2, spec.Type, size)
	if err != nil {
		return element.Element{}, err
	}

	switch spec.Type {
	case element.TypePencil:
		pts := make([]element.PencilPoint, len(spec.Points))
		for i, p := range spec.Points {
			pts[i] = element.PencilPoint{X: p.X, Y: p.Y}
		}
		if el, err = element.Apply(el, element.SetPoints{Points: pts}); err != nil {
			return element.Element{}, err
		}
	case element.TypeText:
		if spec.Text == "" {
			return element.Element{}, fmt.Errorf("text element needs text")
		}
		w, h := imaging.MeasureText(spec.Text)
		if el, err = element.Apply(el, element.SetText{Text: spec.Text, Width: w, Height: h}); err != nil {
			return element.Element{}, err
		}
	default:
		if el, err = element.Canonicalize(el); err != nil {
			return element.Element{}, err
		}
	}

	next := b.current().Clone()
	if err := next.Add(el); err != nil {
		return element.Element{}, err
	}
	b.nextID++
	b.history.Commit(next, false)
	b.idle.Reset()

	b.logger.Debug("element added", "id", el.ID, "type", el.Type)
	return el, nil
}

// DeleteElement removes an element by id as one undoable step.
func (b *Board) DeleteElement(id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	next := b.current().Clone()
	if !next.Remove(id) {
		return fmt.Errorf("delete %d: %w", id, element.ErrNotFound)
	}
	if b.active != nil && b.active.id == id {
		b.endInteractionLocked()
	}
	b.history.Commit(next, false)
	b.idle.Reset()
	return nil
}

// Locate hit-tests a document-space point against the current elements
// using tolerances scaled for the current zoom.
func (b *Board) Locate(x, y float64) (element.Hit, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return element.LocateAt(x, y, b.current().Elements(), b.tolerances())
}

// Undo steps back one history entry. Text being written is committed
// first and any other interaction is abandoned. It reports whether anything
// changed.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finishInteractionLocked()
	if !b.history.Undo() {
		return false
	}
	b.idle.Reset()
	return true
}

// Redo steps forward one history entry.
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finishInteractionLocked()
	if !b.history.Redo() {
		return false
	}
	b.idle.Reset()
	return true
}

// Viewport returns the current view transform.
func (b *Board) Viewport() Viewport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewport
}

// SetViewport replaces the view transform, clamping its scale.
func (b *Board) SetViewport(v Viewport) Viewport {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewport = v.Normalized()
	return b.viewport
}

// Zoom scales the view around a screen point.
func (b *Board) Zoom(factor, sx, sy float64) Viewport {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewport = b.viewport.ZoomAt(factor, sx, sy)
	return b.viewport
}

// Pan shifts the view by a screen-space delta.
func (b *Board) Pan(dx, dy float64) Viewport {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewport = b.viewport.Pan(dx, dy)
	return b.viewport
}

func (b *Board) current() *element.Collection {
	return b.history.Current()
}

// tolerances keeps hit slack constant in screen pixels.
func (b *Board) tolerances() element.Tolerances {
	return b.tol.Scaled(b.viewport.scale())
}

// commitUpdate applies u to one element on a copy of the document.
func (b *Board) commitUpdate(id int, u element.Update, overwrite bool) (element.Element, error) {
	next := b.current().Clone()
	el, err := next.Update(id, u)
	if err != nil {
		return element.Element{}, err
	}
	b.history.Commit(next, overwrite)
	return el, nil
}

// finishInteractionLocked commits text being written, then ends whatever
// interaction is in progress.
func (b *Board) finishInteractionLocked() {
	if b.action == ActionWriting {
		if err := b.finishWritingLocked(); err != nil {
			b.logger.Warn("failed to commit text", "error", err)
		}
	}
	b.endInteractionLocked()
}

func (b *Board) endInteractionLocked() {
	b.action = ActionNone
	b.active = nil
	b.erased = false
}
