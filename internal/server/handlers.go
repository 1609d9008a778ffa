package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
	"github.com/ironsheep/fontfit-mcp/internal/imaging"
	"github.com/ironsheep/fontfit-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "fontfit_region").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramError marks a tool failure caused by the caller's arguments.
type paramError struct {
	err error
}

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func invalidParams(format string, args ...interface{}) error {
	return &paramError{err: fmt.Errorf(format, args...)}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument problems, including invalid regions and bounds, return -32602;
// any other tool failure returns -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log := s.log.WithField("tool", params.Name).WithError(err)
		var pe *paramError
		if errors.As(err, &pe) || errors.Is(err, fontfit.ErrInvalidRegion) || errors.Is(err, fontfit.ErrInvalidBounds) {
			log.Debug("tool rejected arguments")
			return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		}
		log.Warn("tool failed")
		return s.errorResponse(req.ID, CodeToolFailed, "Tool execution failed", err.Error())
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_normalize":
		return s.handleImageNormalize(args)

	// Font Fitting
	case "fontfit_region":
		return s.handleFontfitRegion(ctx, args)
	case "fontfit_process_image":
		return s.handleFontfitProcessImage(ctx, args)
	case "fontfit_get_result":
		return s.handleFontfitGetResult(ctx, args)

	default:
		return nil, invalidParams("unknown tool: %s", name)
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

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams("invalid arguments: %v", err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a imageLoadArgs) validate() error {
	if a.Path == "" {
		return invalidParams("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageNormalizeArgs struct {
	Path        string `json:"path"`
	TargetWidth int    `json:"target_width"`
	OutputPath  string `json:"output_path"`
}

func (s *Server) handleImageNormalize(args json.RawMessage) (interface{}, error) {
	var a imageNormalizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	if a.TargetWidth < 0 {
		return nil, invalidParams("target_width must be positive, got %d", a.TargetWidth)
	}
	if a.TargetWidth == 0 {
		a.TargetWidth = s.svc.Config().TargetWidth
	}
	if a.OutputPath == "" {
		base := strings.TrimSuffix(filepath.Base(a.Path), filepath.Ext(a.Path))
		a.OutputPath = filepath.Join(s.svc.Config().OutputDir, base+"_normalized.png")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, res, err := imaging.Normalize(img, a.TargetWidth)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(a.OutputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := imaging.Save(out, a.OutputPath); err != nil {
		return nil, err
	}
	s.cache.Store(a.OutputPath, out)
	res.OutputPath = a.OutputPath
	return res, nil
}

// === Font Fitting Handlers ===

type fontfitRegionArgs struct {
	Path    string  `json:"path"`
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	MinSize int     `json:"min_size"`
	MaxSize int     `json:"max_size"`
}

func (s *Server) handleFontfitRegion(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a fontfitRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	box := fontfit.BBox{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	return s.svc.FitRegion(ctx, a.Path, a.Text, box, a.MinSize, a.MaxSize)
}

type fontfitProcessArgs struct {
	Path           string `json:"path"`
	DetectionsPath string `json:"detections_path"`
	ShowQuality    *bool  `json:"show_quality"`
}

func (s *Server) handleFontfitProcessImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a fontfitProcessArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	opts := pipeline.ProcessOptions{DetectionsPath: a.DetectionsPath}
	if a.ShowQuality != nil && !*a.ShowQuality {
		opts.HideQuality = true
	}
	return s.svc.Process(ctx, a.Path, opts)
}

type fontfitGetResultArgs struct {
	TaskID string `json:"task_id"`
}

func (s *Server) handleFontfitGetResult(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a fontfitGetResultArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.TaskID == "" {
		return nil, invalidParams("task_id is required")
	}
	return s.svc.Result(ctx, a.TaskID)
}
