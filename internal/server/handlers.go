package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/ops"
	"github.com/ironsheep/image-editor-mcp/internal/pointwise"
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_apply").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		fields := map[string]interface{}{"tool": params.Name}
		if op := raster.OpName(err); op != "" {
			fields["op"] = op
		}
		s.log.Error(component, err, fields)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Info(component, "tool call", map[string]interface{}{
		"tool":        params.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	})

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
		args = json.RawMessage(`{}`)
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color and Intensity
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_validate_binary":
		return s.handleImageValidateBinary(args)

	// Editing
	case "image_operations":
		return s.handleImageOperations(args)
	case "image_apply":
		return s.handleImageApply(args)
	case "image_equalize":
		return s.handleImageEqualize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals args and checks that path is present.
func decodeArgs(args json.RawMessage, v interface{ path() string }) error {
	if err := json.Unmarshal(args, v); err != nil {
		return err
	}
	if v.path() == "" {
		return errors.New("missing required argument: path")
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a *imageLoadArgs) path() string { return a.Path }

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color and Intensity Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (a *imageSampleColorArgs) path() string { return a.Path }

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(g, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string                 `json:"path"`
	Points []imaging.LabeledPoint `json:"points"`
}

func (a *imageSampleColorsMultiArgs) path() string { return a.Path }

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColorsMulti(g, a.Points)
}

type imageHistogramArgs struct {
	Path   string `json:"path"`
	Counts bool   `json:"counts"`
}

func (a *imageHistogramArgs) path() string { return a.Path }

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SummarizeHistogram(pointwise.Histogram(g), a.Counts), nil
}

// BinaryCheckResult reports whether an image satisfies the morphology
// precondition.
type BinaryCheckResult struct {
	Binary bool   `json:"binary"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleImageValidateBinary(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := raster.ValidateBinary(g); err != nil {
		return &BinaryCheckResult{Binary: false, Reason: err.Error()}, nil
	}
	return &BinaryCheckResult{Binary: true}, nil
}

// === Editing Handlers ===

type imageOperationsArgs struct {
	Category string `json:"category"`
}

func (s *Server) handleImageOperations(args json.RawMessage) (interface{}, error) {
	var a imageOperationsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	list := make([]ops.Operation, 0)
	for _, op := range ops.All() {
		if a.Category == "" || string(op.Category) == a.Category {
			list = append(list, op)
		}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("unknown category: %s", a.Category)
	}
	return map[string]interface{}{"operations": list}, nil
}

type imageApplyArgs struct {
	Operation  string `json:"operation"`
	Path       string `json:"path"`
	PathB      string `json:"path_b"`
	OutputPath string `json:"output_path"`
	imaging.RawParams
}

func (a *imageApplyArgs) path() string { return a.Path }

// ApplyResult is the outcome of image_apply.
type ApplyResult struct {
	Operation string `json:"operation"`
	*imaging.ImageResult
}

func (s *Server) handleImageApply(args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	op, err := ops.Lookup(a.Operation)
	if err != nil {
		return nil, err
	}
	p, err := imaging.ParseParams(op, a.RawParams)
	if err != nil {
		return nil, err
	}
	if op.Name == "threshold" && !a.Level.Set() {
		p.Level = s.cfg.Threshold
	}

	paths := []string{a.Path}
	if op.Inputs == 2 {
		if a.PathB == "" {
			return nil, fmt.Errorf("operation %s needs a second image: path_b", op.Name)
		}
		paths = append(paths, a.PathB)
	}
	inputs := make([]*raster.Grid, 0, len(paths))
	for _, path := range paths {
		g, err := s.cache.Load(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, g)
	}

	out, err := op.Apply(inputs, p)
	if err != nil {
		return nil, err
	}
	res, err := s.finish(out, a.Path, op.Name, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Operation: op.Name, ImageResult: res}, nil
}

type imageEqualizeArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (a *imageEqualizeArgs) path() string { return a.Path }

// EqualizeResult carries the equalized image and the histograms of the
// grayscale image before and after.
type EqualizeResult struct {
	*imaging.ImageResult
	Before imaging.HistogramSummary `json:"before"`
	After  imaging.HistogramSummary `json:"after"`
}

func (s *Server) handleImageEqualize(args json.RawMessage) (interface{}, error) {
	var a imageEqualizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	eq := pointwise.Equalize(g)
	res, err := s.finish(eq.Grid, a.Path, "equalize", a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &EqualizeResult{
		ImageResult: res,
		Before:      imaging.SummarizeHistogram(eq.Before, false),
		After:       imaging.SummarizeHistogram(eq.After, false),
	}, nil
}

// finish encodes g and, when an output path is given or an output directory
// is configured, saves it and caches it under the saved path.
func (s *Server) finish(g *raster.Grid, source, opName, outputPath string) (*imaging.ImageResult, error) {
	res, err := imaging.EncodeResult(g)
	if err != nil {
		return nil, err
	}
	if outputPath == "" && s.cfg.OutputDir != "" {
		outputPath = imaging.OutputPath(s.cfg.OutputDir, source, opName, ".png")
	}
	if outputPath == "" {
		return res, nil
	}
	if err := imaging.Save(g, outputPath); err != nil {
		return nil, err
	}
	s.cache.Put(outputPath, g)
	res.SavedTo = outputPath
	return res, nil
}
