package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ironsheep/inkboard-mcp/internal/canvas"
	"github.com/ironsheep/inkboard-mcp/internal/config"
	"github.com/ironsheep/inkboard-mcp/internal/detection"
	"github.com/ironsheep/inkboard-mcp/internal/imaging"
)

// Server handles MCP protocol communication for one drawing board.
type Server struct {
	board  *canvas.Board
	cache  *imaging.ImageCache
	cfg    config.Config
	logger *slog.Logger

	// mu guards enc. Idle notifications are written from the timer
	// goroutine while responses are written from Serve.
	mu  sync.Mutex
	enc *json.Encoder
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server with an empty board configured from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ink, err := imaging.ParseInkColor(cfg.InkColor)
	if err != nil {
		return nil, fmt.Errorf("ink color: %w", err)
	}

	s := &Server{
		cache:  imaging.NewImageCache(),
		cfg:    cfg,
		logger: logger,
	}

	opts := canvas.DefaultOptions()
	opts.PenSize = cfg.PenSize
	opts.IdleDelay = cfg.IdleDelay
	opts.Detection = s.detectionOptions()
	opts.Renderer = imaging.NewRenderer(ink, cfg.RasterPadding)
	opts.Renderer.MaxPixels = cfg.MaxRasterPixels
	opts.OnRegions = s.notifyRegions
	opts.Logger = logger.With("component", "board")
	s.board = canvas.NewBoard(opts)

	return s, nil
}

// Close stops idle detection and drops cached raster files.
func (s *Server) Close() {
	s.board.Close()
	s.cache.Clear()
}

// Run serves MCP over stdin and stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to
// w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	s.mu.Lock()
	s.enc = json.NewEncoder(w)
	s.mu.Unlock()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			continue
		}

		s.logger.Debug("request", "method", req.Method, "id", req.ID)
		resp := s.handleRequest(&req)
		if resp != nil {
			if err := s.write(resp); err != nil {
				s.logger.Error("failed to encode response", "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

func (s *Server) write(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc == nil {
		return fmt.Errorf("server is not serving")
	}
	return s.enc.Encode(v)
}

// notifyRegions pushes an idle-triggered detection to the client as an MCP
// log message.
func (s *Server) notifyRegions(result *detection.RegionsResult) {
	n := &MCPNotification{
		JSONRPC: "2.0",
		Method:  "notifications/message",
		Params: map[string]interface{}{
			"level":  "info",
			"logger": "inkboard.regions",
			"data":   result,
		},
	}
	if err := s.write(n); err != nil {
		s.logger.Debug("dropped region notification", "error", err)
	}
}

func (s *Server) detectionOptions() detection.Options {
	return detection.Options{
		MinRegionSize:    s.cfg.MinRegionSize,
		GroupingDistance: s.cfg.GroupingDistance,
		DilateRadius:     s.cfg.DilateRadius,
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools":   map[string]interface{}{},
				"logging": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "inkboard-mcp",
				"version": "0.1.0",
			},
		},
	}
}
