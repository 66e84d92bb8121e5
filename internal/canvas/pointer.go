package canvas

import (
	"fmt"
	"strings"

	"github.com/ironsheep/inkboard-mcp/internal/element"
	"github.com/ironsheep/inkboard-mcp/internal/geometry"
	"github.com/ironsheep/inkboard-mcp/internal/imaging"
)

// PointerDown starts an interaction at a screen point.
//
// The middle button, or any button while space is held, pans the view.
// Otherwise the active tool decides: selection grabs the element under the
// pointer (its body to move, a handle to resize), drawing tools create a
// new element, text creates a text element to write into, and the eraser
// erases under the pointer.
func (b *Board) PointerDown(ev PointerEvent) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return State{}, ErrClosed
	}
	doc := b.viewport.ToDocument(ev.X, ev.Y)

	if b.action == ActionWriting {
		if err := b.finishWritingLocked(); err != nil {
			return b.stateLocked(doc, ""), err
		}
	}
	b.endInteractionLocked()

	if ev.Button == ButtonMiddle || b.spaceHeld {
		b.action = ActionPanning
		b.panFrom = geometry.Point{X: ev.X, Y: ev.Y}
		return b.stateLocked(doc, ""), nil
	}
	if ev.Button != ButtonPrimary {
		return b.stateLocked(doc, ""), nil
	}

	switch b.tool {
	case ToolSelection:
		return b.grabLocked(doc)

	case ToolEraser:
		b.action = ActionErasing
		if err := b.eraseAtLocked(doc); err != nil {
			b.endInteractionLocked()
			return b.stateLocked(doc, ""), err
		}
		return b.stateLocked(doc, ""), nil

	default:
		typ, ok := b.tool.elementType()
		if !ok {
			return b.stateLocked(doc, ""), fmt.Errorf("tool %q does not draw", b.tool)
		}
		el, err := element.Create(b.nextID, doc.X, doc.Y, doc.X, doc.Y, typ, b.penSize)
		if err != nil {
			return b.stateLocked(doc, ""), err
		}
		next := b.current().Clone()
		if err := next.Add(el); err != nil {
			return b.stateLocked(doc, ""), err
		}
		b.nextID++
		b.history.Commit(next, false)

		b.active = &selection{id: el.ID, startX: el.X1, startY: el.Y1}
		if typ == element.TypeText {
			b.action = ActionWriting
		} else {
			b.action = ActionDrawing
			b.idle.Reset()
		}
		return b.stateLocked(doc, ""), nil
	}
}

// grabLocked selects the element under doc for moving or resizing.
func (b *Board) grabLocked(doc geometry.Point) (State, error) {
	hit, ok, err := element.LocateAt(doc.X, doc.Y, b.current().Elements(), b.tolerances())
	if err != nil {
		return b.stateLocked(doc, ""), err
	}
	if !ok {
		return b.stateLocked(doc, ""), nil
	}

	el := hit.Element
	sel := &selection{id: el.ID, position: hit.Position, startX: el.X1, startY: el.Y1}
	if el.Type == element.TypePencil {
		sel.pointOffsets = make([]geometry.Point, len(el.Points))
		for i, p := range el.Points {
			sel.pointOffsets[i] = geometry.Point{X: doc.X - p.X, Y: doc.Y - p.Y}
		}
		if len(el.Points) > 0 {
			sel.startX, sel.startY = el.Points[0].X, el.Points[0].Y
		}
	} else {
		sel.offsetX = doc.X - el.X1
		sel.offsetY = doc.Y - el.Y1
	}
	b.active = sel

	if hit.Position == element.PositionInside {
		b.action = ActionMoving
	} else {
		b.action = ActionResizing
	}

	// The drag overwrites this copy, so undo restores the pre-drag state.
	b.history.Commit(b.current().Clone(), false)

	return b.stateLocked(doc, element.CursorForHandle(hit.Position)), nil
}

// PointerMove continues the interaction in progress. With no interaction
// and the selection tool active, it reports the hover cursor.
func (b *Board) PointerMove(ev PointerEvent) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return State{}, ErrClosed
	}
	doc := b.viewport.ToDocument(ev.X, ev.Y)

	var err error
	switch b.action {
	case ActionNone:
		if b.tool != ToolSelection {
			break
		}
		hit, ok, herr := element.LocateAt(doc.X, doc.Y, b.current().Elements(), b.tolerances())
		if herr != nil {
			return b.stateLocked(doc, ""), herr
		}
		if ok {
			return b.stateLocked(doc, element.CursorForHandle(hit.Position)), nil
		}

	case ActionPanning:
		b.viewport = b.viewport.Pan(ev.X-b.panFrom.X, ev.Y-b.panFrom.Y)
		b.panFrom = geometry.Point{X: ev.X, Y: ev.Y}
		doc = b.viewport.ToDocument(ev.X, ev.Y)

	case ActionDrawing:
		err = b.drawToLocked(doc)

	case ActionMoving:
		err = b.moveToLocked(doc)

	case ActionResizing:
		err = b.resizeToLocked(doc)

	case ActionErasing:
		err = b.eraseAtLocked(doc)
	}

	if err != nil {
		b.endInteractionLocked()
	}
	return b.stateLocked(doc, ""), err
}

func (b *Board) activeElementLocked() (element.Element, error) {
	if b.active == nil {
		return element.Element{}, fmt.Errorf("no active element")
	}
	el, ok := b.current().Get(b.active.id)
	if !ok {
		return element.Element{}, fmt.Errorf("active element %d: %w", b.active.id, element.ErrNotFound)
	}
	return el, nil
}

func (b *Board) drawToLocked(doc geometry.Point) error {
	el, err := b.activeElementLocked()
	if err != nil {
		return err
	}

	var u element.Update
	if el.Type == element.TypePencil {
		u = element.AppendPoint{X: doc.X, Y: doc.Y}
	} else {
		u = element.SetBounds{X1: el.X1, Y1: el.Y1, X2: doc.X, Y2: doc.Y}
	}
	if _, err := b.commitUpdate(el.ID, u, true); err != nil {
		return err
	}
	b.idle.Reset()
	return nil
}

func (b *Board) moveToLocked(doc geometry.Point) error {
	el, err := b.activeElementLocked()
	if err != nil {
		return err
	}

	var u element.Update
	if el.Type == element.TypePencil {
		offsets := b.active.pointOffsets
		if len(offsets) != len(el.Points) {
			return fmt.Errorf("pencil %d changed during move", el.ID)
		}
		pts := make([]element.PencilPoint, len(el.Points))
		for i, p := range el.Points {
			pts[i] = element.PencilPoint{X: doc.X - offsets[i].X, Y: doc.Y - offsets[i].Y, IsErased: p.IsErased}
		}
		u = element.SetPoints{Points: pts}
	} else {
		w, h := el.X2-el.X1, el.Y2-el.Y1
		x1, y1 := doc.X-b.active.offsetX, doc.Y-b.active.offsetY
		u = element.SetBounds{X1: x1, Y1: y1, X2: x1 + w, Y2: y1 + h}
	}
	if _, err := b.commitUpdate(el.ID, u, true); err != nil {
		return err
	}
	b.idle.Reset()
	return nil
}

func (b *Board) resizeToLocked(doc geometry.Point) error {
	el, err := b.activeElementLocked()
	if err != nil {
		return err
	}

	c, ok := element.ResizedCoordinates(doc.X, doc.Y, b.active.position, element.CoordsOf(el))
	if !ok {
		b.logger.Warn("unknown resize handle", "position", b.active.position, "id", el.ID)
		return nil
	}
	if _, err := b.commitUpdate(el.ID, element.SetBounds{X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2}, true); err != nil {
		return err
	}
	b.idle.Reset()
	return nil
}

// eraseAtLocked erases under doc. Pencil points within the eraser radius
// are marked erased and a stroke left with no visible points is removed;
// any other element under the pointer is removed outright. The first
// change of a gesture is a new history entry and the rest overwrite it.
func (b *Board) eraseAtLocked(doc geometry.Point) error {
	radius := b.eraserRadius / b.viewport.scale()
	tol := b.tolerances()

	next := b.current().Clone()
	changed := false

	for _, el := range next.Elements() {
		if el.Type != element.TypePencil {
			pos, err := element.PositionWithin(doc.X, doc.Y, el, tol)
			if err != nil {
				return err
			}
			if pos != element.PositionNone {
				next.Remove(el.ID)
				changed = true
			}
			continue
		}

		var hits []int
		visible := 0
		for i, p := range el.Points {
			if p.IsErased {
				continue
			}
			visible++
			if geometry.Distance(geometry.Point{X: p.X, Y: p.Y}, doc) <= radius {
				hits = append(hits, i)
			}
		}
		if len(hits) == 0 {
			continue
		}
		changed = true
		if len(hits) == visible {
			next.Remove(el.ID)
			continue
		}
		if _, err := next.Update(el.ID, element.ErasePoints{Indices: hits}); err != nil {
			return err
		}
	}

	if !changed {
		return nil
	}
	b.history.Commit(next, b.erased)
	b.erased = true
	b.idle.Reset()
	return nil
}

// PointerUp ends the interaction. Lines, rectangles and captures are
// canonicalized before the final commit. A text element released without
// being moved is opened for writing.
func (b *Board) PointerUp(ev PointerEvent) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return State{}, ErrClosed
	}
	doc := b.viewport.ToDocument(ev.X, ev.Y)

	switch b.action {
	case ActionWriting:
		return b.stateLocked(doc, ""), nil

	case ActionDrawing, ActionResizing:
		if err := b.settleLocked(); err != nil {
			b.endInteractionLocked()
			return b.stateLocked(doc, ""), err
		}

	case ActionMoving:
		el, err := b.activeElementLocked()
		if err != nil {
			b.endInteractionLocked()
			return b.stateLocked(doc, ""), err
		}
		if el.Type == element.TypeText && el.X1 == b.active.startX && el.Y1 == b.active.startY {
			b.action = ActionWriting
			return b.stateLocked(doc, ""), nil
		}
	}

	b.endInteractionLocked()
	return b.stateLocked(doc, ""), nil
}

// settleLocked canonicalizes the active element. The result overwrites the
// last drag snapshot so the whole gesture undoes in one step.
func (b *Board) settleLocked() error {
	el, err := b.activeElementLocked()
	if err != nil {
		return err
	}
	if !element.AdjustmentRequired(el.Type) {
		return nil
	}

	canon, err := element.Canonicalize(el)
	if err != nil {
		return err
	}
	if element.CoordsOf(canon) == element.CoordsOf(el) {
		return nil
	}

	next := b.current().Clone()
	if err := next.Replace(canon); err != nil {
		return err
	}
	b.history.Commit(next, true)
	b.idle.Reset()
	return nil
}

// CommitText finishes writing: the text element takes text and its
// measured extent. Empty text removes the element.
func (b *Board) CommitText(text string) (element.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.action != ActionWriting || b.active == nil {
		return element.Element{}, ErrNotWriting
	}
	return b.commitTextLocked(text)
}

// finishWritingLocked commits whatever text the element already holds, as
// when the text box loses focus.
func (b *Board) finishWritingLocked() error {
	el, err := b.activeElementLocked()
	if err != nil {
		b.endInteractionLocked()
		return err
	}
	_, err = b.commitTextLocked(el.Text)
	return err
}

func (b *Board) commitTextLocked(text string) (element.Element, error) {
	id := b.active.id
	defer b.endInteractionLocked()

	if text == "" {
		next := b.current().Clone()
		if !next.Remove(id) {
			return element.Element{}, fmt.Errorf("text %d: %w", id, element.ErrNotFound)
		}
		b.history.Commit(next, true)
		return element.Element{}, nil
	}

	w, h := imaging.MeasureText(text)
	el, err := b.commitUpdate(id, element.SetText{Text: text, Width: w, Height: h}, true)
	if err != nil {
		return element.Element{}, err
	}
	b.idle.Reset()
	return el, nil
}

// KeyDown records a key press. Holding space turns the next pointer-down
// into a pan; escape abandons the interaction, committing text being
// written.
func (b *Board) KeyDown(key string) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch normalizeKey(key) {
	case "space":
		b.spaceHeld = true
	case "escape":
		if b.action == ActionWriting {
			if err := b.finishWritingLocked(); err != nil {
				return b.stateLocked(geometry.Point{}, ""), err
			}
		}
		b.endInteractionLocked()
	default:
		return b.stateLocked(geometry.Point{}, ""), fmt.Errorf("unsupported key %q", key)
	}
	return b.stateLocked(geometry.Point{}, ""), nil
}

// KeyUp records a key release.
func (b *Board) KeyUp(key string) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch normalizeKey(key) {
	case "space":
		b.spaceHeld = false
	case "escape":
	default:
		return b.stateLocked(geometry.Point{}, ""), fmt.Errorf("unsupported key %q", key)
	}
	return b.stateLocked(geometry.Point{}, ""), nil
}

func normalizeKey(key string) string {
	switch k := strings.ToLower(key); k {
	case " ", "space", "spacebar":
		return "space"
	case "esc", "escape":
		return "escape"
	default:
		return k
	}
}
