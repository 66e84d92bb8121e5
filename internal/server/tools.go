package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Input
		{
			Name:        "canvas_set_tool",
			Description: "Switch the active drawing tool. Text being written is committed first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tool": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"selection", "line", "rectangle", "pencil", "text", "eraser", "capture"},
						"description": "Tool to activate",
					},
				},
				"required": []string{"tool"},
			},
		},
		{
			Name:        "canvas_pointer",
			Description: "Send a pointer event in screen coordinates. A down/move.../up sequence draws with the active tool, moves or resizes an element under the selection tool, erases, or pans with the middle button or while space is held. Returns the interaction state including the cursor to show.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"event": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"down", "move", "up"},
						"description": "Pointer event kind",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Screen X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Screen Y coordinate",
					},
					"button": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"primary", "middle", "secondary"},
						"description": "Pointer button. Default primary",
						"default":     "primary",
					},
				},
				"required": []string{"event", "x", "y"},
			},
		},
		{
			Name:        "canvas_key",
			Description: "Press or release a key. Holding space turns the next drag into a pan; escape abandons the current interaction.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"space", "escape"},
						"description": "Key name",
					},
					"event": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"down", "up"},
						"description": "Key event kind. Default down",
						"default":     "down",
					},
				},
				"required": []string{"key"},
			},
		},
		{
			Name:        "canvas_commit_text",
			Description: "Finish writing the active text element. Its extent is measured from the text. Empty text removes the element.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Final text content; newlines start new lines",
					},
				},
				"required": []string{"text"},
			},
		},

		// Document
		{
			Name:        "canvas_add_element",
			Description: "Add an element in document coordinates as one undoable step. Lines and rectangles are canonicalized; pencil needs points; text is measured.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"line", "rectangle", "pencil", "text", "capture"},
						"description": "Element type",
					},
					"x1": map[string]interface{}{
						"type":        "number",
						"description": "First corner X (anchor X for text)",
					},
					"y1": map[string]interface{}{
						"type":        "number",
						"description": "First corner Y (anchor Y for text)",
					},
					"x2": map[string]interface{}{
						"type":        "number",
						"description": "Second corner X",
					},
					"y2": map[string]interface{}{
						"type":        "number",
						"description": "Second corner Y",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Pencil stroke vertices",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "number"},
								"y": map[string]interface{}{"type": "number"},
							},
							"required": []string{"x", "y"},
						},
					},
					"size": map[string]interface{}{
						"type":        "number",
						"description": "Pencil stroke width. Defaults to the configured pen size",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text content for text elements",
					},
				},
				"required": []string{"type"},
			},
		},
		{
			Name:        "canvas_delete_element",
			Description: "Remove an element by id as one undoable step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "integer",
						"description": "Element id",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "canvas_list_elements",
			Description: "List every element of the current document in creation order, with the board state.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "canvas_locate",
			Description: "Hit-test a point. Returns the first element under it, the part hit (inside, a corner, or a line endpoint) and the matching cursor.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y coordinate",
					},
					"screen": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat x and y as screen coordinates. Default false (document coordinates)",
						"default":     false,
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "canvas_undo",
			Description: "Step back one history entry. A whole drag gesture is one entry.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "canvas_redo",
			Description: "Step forward one history entry.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "canvas_viewport",
			Description: "Get or change the view transform used to map screen coordinates to the document.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"get", "set", "pan", "zoom"},
						"description": "Viewport operation. Default get",
						"default":     "get",
					},
					"offset_x": map[string]interface{}{
						"type":        "number",
						"description": "Screen X of the document origin (set)",
					},
					"offset_y": map[string]interface{}{
						"type":        "number",
						"description": "Screen Y of the document origin (set)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Zoom level, clamped to [0.1, 20] (set)",
					},
					"dx": map[string]interface{}{
						"type":        "number",
						"description": "Screen-space pan delta X (pan)",
					},
					"dy": map[string]interface{}{
						"type":        "number",
						"description": "Screen-space pan delta Y (pan)",
					},
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Zoom multiplier, e.g. 2 to zoom in (zoom)",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Screen X that stays fixed while zooming (zoom)",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Screen Y that stays fixed while zooming (zoom)",
					},
				},
			},
		},

		// Regions
		{
			Name:        "canvas_detect_regions",
			Description: "Group ink into regions of connected strokes. Without image_path the current drawing is rasterized and each region lists the ids of the elements it covers; the result becomes the board's current regions. With image_path a raster file is analyzed instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to a PNG, JPEG or GIF to analyze instead of the drawing",
					},
					"min_region_size": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum ink pixels per blob. Defaults to the configured value",
					},
					"grouping_distance": map[string]interface{}{
						"type":        "number",
						"description": "Largest gap in pixels across which blobs merge. Defaults to the configured value",
					},
					"dilate_radius": map[string]interface{}{
						"type":        "number",
						"description": "Grow ink by this radius before grouping. Defaults to the configured value",
					},
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the image with region boxes drawn (image_path only). Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "canvas_render",
			Description: "Render the drawing as a base64 PNG in document coordinates, optionally with the last detected regions outlined and a coordinate grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"show_regions": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline and number the regions from the last detection. Default false",
						"default":     false,
					},
					"include_capture": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw capture marquees. Default false",
						"default":     false,
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Draw grid lines every N pixels. 0 disables the grid",
						"default":     0,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label grid intersections with coordinates. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "canvas_crop_region",
			Description: "Crop a region from the last detection out of the rendered drawing and return it as a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"region_id": map[string]interface{}{
						"type":        "integer",
						"description": "Region id from canvas_detect_regions",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Margin in pixels around the region. Default 8",
						"default":     8,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"region_id"},
			},
		},
		{
			Name:        "canvas_recognize_region",
			Description: "Run OCR over a region from the last detection. Returns the text and word boxes in document coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"region_id": map[string]interface{}{
						"type":        "integer",
						"description": "Region id from canvas_detect_regions",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Margin in pixels around the region. Default 4",
						"default":     4,
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Defaults to the configured language",
					},
				},
				"required": []string{"region_id"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
