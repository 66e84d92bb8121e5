package canvas

import (
	"fmt"

	"github.com/ironsheep/inkboard-mcp/internal/element"
)

// Tool is the active drawing tool.
type Tool string

const (
	ToolSelection Tool = "selection"
	ToolLine      Tool = "line"
	ToolRectangle Tool = "rectangle"
	ToolPencil    Tool = "pencil"
	ToolText      Tool = "text"
	ToolEraser    Tool = "eraser"
	ToolCapture   Tool = "capture"
)

// Tools lists every tool in menu order.
var Tools = []Tool{ToolSelection, ToolLine, ToolRectangle, ToolPencil, ToolText, ToolEraser, ToolCapture}

// ParseTool validates a tool name.
func ParseTool(name string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", name)
}

// elementType returns the element a drawing tool creates.
func (t Tool) elementType() (element.Type, bool) {
	switch t {
	case ToolLine:
		return element.TypeLine, true
	case ToolRectangle:
		return element.TypeRectangle, true
	case ToolPencil:
		return element.TypePencil, true
	case ToolCapture:
		return element.TypeCapture, true
	case ToolText:
		return element.TypeText, true
	}
	return "", false
}

// Action is the interaction in progress.
type Action string

const (
	ActionNone     Action = "none"
	ActionPanning  Action = "panning"
	ActionDrawing  Action = "drawing"
	ActionMoving   Action = "moving"
	ActionResizing Action = "resizing"
	ActionErasing  Action = "erasing"
	ActionWriting  Action = "writing"
)

// Button identifies the pointer button behind an event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// ParseButton maps "primary", "middle" or "secondary" to a Button. An empty
// name is the primary button.
func ParseButton(name string) (Button, error) {
	switch name {
	case "", "primary", "left":
		return ButtonPrimary, nil
	case "middle":
		return ButtonMiddle, nil
	case "secondary", "right":
		return ButtonSecondary, nil
	}
	return ButtonPrimary, fmt.Errorf("unknown button %q", name)
}

// PointerEvent is a pointer sample in screen coordinates.
type PointerEvent struct {
	X, Y   float64
	Button Button
}
