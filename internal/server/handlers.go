package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/inkboard-mcp/internal/canvas"
	"github.com/ironsheep/inkboard-mcp/internal/detection"
	"github.com/ironsheep/inkboard-mcp/internal/element"
	"github.com/ironsheep/inkboard-mcp/internal/geometry"
	"github.com/ironsheep/inkboard-mcp/internal/imaging"
)

// Default arguments for region tools.
const (
	defaultCropPadding = 8
	defaultOCRPadding  = 4
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "canvas_pointer", "canvas_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Input
	case "canvas_set_tool":
		return s.handleSetTool(args)
	case "canvas_pointer":
		return s.handlePointer(args)
	case "canvas_key":
		return s.handleKey(args)
	case "canvas_commit_text":
		return s.handleCommitText(args)

	// Document
	case "canvas_add_element":
		return s.handleAddElement(args)
	case "canvas_delete_element":
		return s.handleDeleteElement(args)
	case "canvas_list_elements":
		return s.handleListElements(args)
	case "canvas_locate":
		return s.handleLocate(args)
	case "canvas_undo":
		return s.handleUndo(args)
	case "canvas_redo":
		return s.handleRedo(args)
	case "canvas_viewport":
		return s.handleViewport(args)

	// Regions
	case "canvas_detect_regions":
		return s.handleDetectRegions(args)
	case "canvas_render":
		return s.handleRender(args)
	case "canvas_crop_region":
		return s.handleCropRegion(args)
	case "canvas_recognize_region":
		return s.handleRecognizeRegion(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Input Handlers ===

type setToolArgs struct {
	Tool string `json:"tool"`
}

func (s *Server) handleSetTool(args json.RawMessage) (interface{}, error) {
	var a setToolArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tool, err := canvas.ParseTool(a.Tool)
	if err != nil {
		return nil, err
	}
	if err := s.board.SetTool(tool); err != nil {
		return nil, err
	}
	return s.board.State(), nil
}

type pointerArgs struct {
	Event  string  `json:"event"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button"`
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	button, err := canvas.ParseButton(a.Button)
	if err != nil {
		return nil, err
	}
	ev := canvas.PointerEvent{X: a.X, Y: a.Y, Button: button}

	switch a.Event {
	case "down":
		return s.board.PointerDown(ev)
	case "move":
		return s.board.PointerMove(ev)
	case "up":
		return s.board.PointerUp(ev)
	default:
		return nil, fmt.Errorf("unknown pointer event %q (want down, move or up)", a.Event)
	}
}

type keyArgs struct {
	Key   string `json:"key"`
	Event string `json:"event"`
}

func (s *Server) handleKey(args json.RawMessage) (interface{}, error) {
	var a keyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch a.Event {
	case "", "down":
		return s.board.KeyDown(a.Key)
	case "up":
		return s.board.KeyUp(a.Key)
	default:
		return nil, fmt.Errorf("unknown key event %q (want down or up)", a.Event)
	}
}

type commitTextArgs struct {
	Text string `json:"text"`
}

type commitTextResult struct {
	Element *element.Element `json:"element,omitempty"`
	Removed bool             `json:"removed"`
	State   canvas.State     `json:"state"`
}

func (s *Server) handleCommitText(args json.RawMessage) (interface{}, error) {
	var a commitTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	el, err := s.board.CommitText(a.Text)
	if err != nil {
		return nil, err
	}
	result := &commitTextResult{Removed: a.Text == ""}
	if !result.Removed {
		result.Element = &el
	}
	result.State = s.board.State()
	return result, nil
}

// === Document Handlers ===

type addElementArgs struct {
	Type   string           `json:"type"`
	X1     float64          `json:"x1"`
	Y1     float64          `json:"y1"`
	X2     float64          `json:"x2"`
	Y2     float64          `json:"y2"`
	Points []geometry.Point `json:"points"`
	Size   float64          `json:"size"`
	Text   string           `json:"text"`
}

func (s *Server) handleAddElement(args json.RawMessage) (interface{}, error) {
	var a addElementArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.board.AddElement(canvas.ElementSpec{
		Type:   element.Type(a.Type),
		X1:     a.X1,
		Y1:     a.Y1,
		X2:     a.X2,
		Y2:     a.Y2,
		Points: a.Points,
		Size:   a.Size,
		Text:   a.Text,
	})
}

type deleteElementArgs struct {
	ID int `json:"id"`
}

func (s *Server) handleDeleteElement(args json.RawMessage) (interface{}, error) {
	var a deleteElementArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.board.DeleteElement(a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"deleted": a.ID,
		"state":   s.board.State(),
	}, nil
}

type listElementsResult struct {
	Elements []element.Element `json:"elements"`
	Count    int               `json:"count"`
	State    canvas.State      `json:"state"`
}

func (s *Server) handleListElements(_ json.RawMessage) (interface{}, error) {
	elements := s.board.Elements()
	return &listElementsResult{
		Elements: elements,
		Count:    len(elements),
		State:    s.board.State(),
	}, nil
}

type locateArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Screen treats X and Y as screen coordinates.
	Screen bool `json:"screen"`
}

type locateResult struct {
	Found    bool             `json:"found"`
	Element  *element.Element `json:"element,omitempty"`
	Position element.Position `json:"position,omitempty"`
	Cursor   element.Cursor   `json:"cursor,omitempty"`
}

func (s *Server) handleLocate(args json.RawMessage) (interface{}, error) {
	var a locateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	x, y := a.X, a.Y
	if a.Screen {
		p := s.board.Viewport().ToDocument(x, y)
		x, y = p.X, p.Y
	}

	hit, ok, err := s.board.Locate(x, y)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &locateResult{}, nil
	}
	return &locateResult{
		Found:    true,
		Element:  &hit.Element,
		Position: hit.Position,
		Cursor:   element.CursorForHandle(hit.Position),
	}, nil
}

type historyResult struct {
	Changed bool         `json:"changed"`
	State   canvas.State `json:"state"`
}

func (s *Server) handleUndo(_ json.RawMessage) (interface{}, error) {
	changed := s.board.Undo()
	return &historyResult{Changed: changed, State: s.board.State()}, nil
}

func (s *Server) handleRedo(_ json.RawMessage) (interface{}, error) {
	changed := s.board.Redo()
	return &historyResult{Changed: changed, State: s.board.State()}, nil
}

type viewportArgs struct {
	Action  string  `json:"action"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	Factor  float64 `json:"factor"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

func (s *Server) handleViewport(args json.RawMessage) (interface{}, error) {
	var a viewportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch a.Action {
	case "", "get":
		return s.board.Viewport(), nil
	case "set":
		return s.board.SetViewport(canvas.Viewport{OffsetX: a.OffsetX, OffsetY: a.OffsetY, Scale: a.Scale}), nil
	case "pan":
		return s.board.Pan(a.DX, a.DY), nil
	case "zoom":
		if a.Factor <= 0 {
			return nil, fmt.Errorf("zoom factor must be > 0, got %v", a.Factor)
		}
		return s.board.Zoom(a.Factor, a.X, a.Y), nil
	default:
		return nil, fmt.Errorf("unknown viewport action %q (want get, set, pan or zoom)", a.Action)
	}
}

// === Region Handlers ===

type detectRegionsArgs struct {
	// ImagePath runs detection over a raster file instead of the drawing.
	ImagePath        string   `json:"image_path"`
	MinRegionSize    *int     `json:"min_region_size"`
	GroupingDistance *float64 `json:"grouping_distance"`
	DilateRadius     *float64 `json:"dilate_radius"`
	Overlay          bool     `json:"overlay"`
}

type imageRegionsResult struct {
	*detection.RegionsResult
	Overlay *imaging.RenderResult `json:"overlay,omitempty"`
}

func (s *Server) handleDetectRegions(args json.RawMessage) (interface{}, error) {
	var a detectRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := s.board.DetectionOptions()
	if a.MinRegionSize != nil {
		opts.MinRegionSize = *a.MinRegionSize
	}
	if a.GroupingDistance != nil {
		opts.GroupingDistance = *a.GroupingDistance
	}
	if a.DilateRadius != nil {
		opts.DilateRadius = *a.DilateRadius
	}

	if a.ImagePath == "" {
		return s.board.DetectRegionsWith(opts)
	}

	img, err := s.cache.Load(a.ImagePath)
	if err != nil {
		return nil, err
	}
	regions, err := detection.DetectRegions(img, opts)
	if err != nil {
		return nil, err
	}

	result := &imageRegionsResult{RegionsResult: regions}
	if a.Overlay {
		overlay, err := imaging.OverlayImage(img, regions.Regions, imaging.OverlayOptions{})
		if err != nil {
			return nil, err
		}
		result.Overlay = overlay
	}
	return result, nil
}

type renderArgs struct {
	ShowRegions     bool `json:"show_regions"`
	IncludeCapture  bool `json:"include_capture"`
	GridSpacing     int  `json:"grid_spacing"`
	ShowCoordinates bool `json:"show_coordinates"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing < 0 {
		return nil, fmt.Errorf("grid spacing must be >= 0, got %d", a.GridSpacing)
	}
	return s.board.Render(imaging.OverlayOptions{
		IncludeCapture:  a.IncludeCapture,
		GridSpacing:     a.GridSpacing,
		ShowCoordinates: a.ShowCoordinates,
	}, a.ShowRegions)
}

type cropRegionArgs struct {
	RegionID int     `json:"region_id"`
	Padding  *int    `json:"padding"`
	Scale    float64 `json:"scale"`
}

func (s *Server) handleCropRegion(args json.RawMessage) (interface{}, error) {
	var a cropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	padding := defaultCropPadding
	if a.Padding != nil {
		padding = *a.Padding
	}
	return s.board.CropRegion(a.RegionID, padding, a.Scale)
}

type recognizeRegionArgs struct {
	RegionID int    `json:"region_id"`
	Padding  *int   `json:"padding"`
	Language string `json:"language"`
}

func (s *Server) handleRecognizeRegion(args json.RawMessage) (interface{}, error) {
	var a recognizeRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}
	padding := defaultOCRPadding
	if a.Padding != nil {
		padding = *a.Padding
	}
	return s.board.RecognizeRegion(a.RegionID, padding, a.Language)
}
