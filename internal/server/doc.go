// Package server implements the MCP (Model Context Protocol) server for the
// drawing board.
//
// The server owns one canvas.Board and exposes it as MCP tools. Clients
// drive the board with pointer and key events, inspect and edit the element
// document, and ask for region detection, renders, crops and OCR.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Input:
//   - canvas_set_tool: Switch tools
//   - canvas_pointer: Pointer down/move/up in screen coordinates
//   - canvas_key: Space (pan) and escape
//   - canvas_commit_text: Finish a text element
//
// Document:
//   - canvas_add_element, canvas_delete_element, canvas_list_elements
//   - canvas_locate: Hit-test a point
//   - canvas_undo, canvas_redo
//   - canvas_viewport: Pan and zoom
//
// Regions:
//   - canvas_detect_regions: Group ink into regions, for the drawing or a raster file
//   - canvas_render: PNG of the drawing with optional region boxes and grid
//   - canvas_crop_region: PNG of one region
//   - canvas_recognize_region: OCR of one region
//
// # Idle Detection
//
// After drawing stops for the configured idle delay the board detects
// regions on its own. The result is pushed to the client as a
// notifications/message notification with logger "inkboard.regions".
// Notifications and responses share one mutex-guarded encoder.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv, err := server.New(*cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	return srv.Run()
package server
