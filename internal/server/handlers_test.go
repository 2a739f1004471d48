package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-editor-mcp/internal/config"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// createTestImageFile creates a solid-color PNG and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	return writeTestImage(t, width, height, func(x, y int) color.Color { return c })
}

// writeTestImage creates a PNG whose pixels come from fn and returns its path.
func writeTestImage(t *testing.T, width, height int, fn func(x, y int) color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fn(x, y))
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool runs a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful response into v.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
}

func expectToolError(t *testing.T, resp *MCPResponse, wantData string) {
	t.Helper()
	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, wantData) {
		t.Errorf("Error data: got %q, want it to contain %q", data, wantData)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.NRGBA{255, 0, 0, 255})

	var info imaging.ImageInfo
	decodeResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150, color.NRGBA{0, 255, 0, 255})

	var dims imaging.DimensionsResult
	decodeResult(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath}), &dims)

	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()
	resp := callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent/image.png"})
	expectToolError(t, resp, "failed to open image")
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()
	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	expectToolError(t, resp, "unknown tool")
}

func TestHandleToolsCall_MissingPath(t *testing.T) {
	s := New()
	for _, tool := range []string{"image_load", "image_sample_color", "image_apply", "image_equalize"} {
		t.Run(tool, func(t *testing.T) {
			resp := callTool(t, s, tool, map[string]interface{}{})
			expectToolError(t, resp, "missing required argument: path")
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, color.NRGBA{255, 128, 64, 255})

	var c imaging.ColorResult
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 5, "y": 5}), &c)

	if c.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", c.Hex)
	}
	if c.Intensity != 149 {
		t.Errorf("Intensity: got %d, want 149", c.Intensity)
	}

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 50, "y": 5})
	expectToolError(t, resp, "outside image bounds")
}

func TestHandleToolsCall_SampleColorsMulti(t *testing.T) {
	s := New()
	imgPath := writeTestImage(t, 10, 10, func(x, y int) color.Color {
		if x < 5 {
			return color.NRGBA{0, 0, 0, 255}
		}
		return color.NRGBA{255, 255, 255, 255}
	})

	var multi imaging.MultiColorResult
	decodeResult(t, callTool(t, s, "image_sample_colors_multi", map[string]interface{}{
		"path":   imgPath,
		"points": []map[string]interface{}{{"x": 1, "y": 1, "label": "left"}, {"x": 8, "y": 1}},
	}), &multi)

	if len(multi.Samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(multi.Samples))
	}
	if multi.Samples[0].Label != "left" || multi.Samples[0].Color.Hex != "#000000" {
		t.Errorf("sample 0: got %+v", multi.Samples[0])
	}
	if multi.Samples[1].Color.Hex != "#FFFFFF" {
		t.Errorf("sample 1: got %+v", multi.Samples[1])
	}
}

func TestHandleToolsCall_Histogram(t *testing.T) {
	s := New()
	imgPath := writeTestImage(t, 4, 4, func(x, y int) color.Color {
		if y < 2 {
			return color.NRGBA{30, 30, 30, 255}
		}
		return color.NRGBA{200, 200, 200, 255}
	})

	var h imaging.HistogramSummary
	decodeResult(t, callTool(t, s, "image_histogram", map[string]interface{}{"path": imgPath, "counts": true}), &h)

	if h.Pixels != 16 || h.Min != 30 || h.Max != 200 {
		t.Errorf("summary: got %+v", h)
	}
	if len(h.Counts) != 256 || h.Counts[30] != 8 || h.Counts[200] != 8 {
		t.Errorf("counts: got %d bins", len(h.Counts))
	}
}

func TestHandleToolsCall_ValidateBinary(t *testing.T) {
	s := New()
	binary := createTestImageFile(t, 4, 4, color.NRGBA{255, 255, 255, 255})
	gray := createTestImageFile(t, 4, 4, color.NRGBA{100, 100, 100, 255})

	var ok BinaryCheckResult
	decodeResult(t, callTool(t, s, "image_validate_binary", map[string]interface{}{"path": binary}), &ok)
	if !ok.Binary {
		t.Error("white image should be binary")
	}

	var notOK BinaryCheckResult
	decodeResult(t, callTool(t, s, "image_validate_binary", map[string]interface{}{"path": gray}), &notOK)
	if notOK.Binary || !strings.Contains(notOK.Reason, "(0,0)") {
		t.Errorf("gray image: got %+v", notOK)
	}
}

func TestHandleToolsCall_Operations(t *testing.T) {
	s := New()

	var all struct {
		Operations []struct {
			Name     string   `json:"name"`
			Category string   `json:"category"`
			Inputs   int      `json:"inputs"`
			Params   []string `json:"params"`
		} `json:"operations"`
	}
	decodeResult(t, callTool(t, s, "image_operations", map[string]interface{}{}), &all)
	if len(all.Operations) < 30 {
		t.Errorf("operations: got %d", len(all.Operations))
	}

	var edges struct {
		Operations []struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		} `json:"operations"`
	}
	decodeResult(t, callTool(t, s, "image_operations", map[string]interface{}{"category": "edge"}), &edges)
	if len(edges.Operations) != 3 {
		t.Errorf("edge operations: got %d, want 3", len(edges.Operations))
	}
	for _, op := range edges.Operations {
		if op.Category != "edge" {
			t.Errorf("%s: category %s", op.Name, op.Category)
		}
	}

	resp := callTool(t, s, "image_operations", map[string]interface{}{"category": "audio"})
	expectToolError(t, resp, "unknown category")
}

func TestHandleToolsCall_Apply(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 6, 6, color.NRGBA{100, 150, 200, 255})

	var res ApplyResult
	decodeResult(t, callTool(t, s, "image_apply", map[string]interface{}{
		"operation": "add_value",
		"path":      imgPath,
		"value":     "10,4",
	}), &res)

	if res.Operation != "add_value" || res.Width != 6 || res.Height != 6 || res.MimeType != "image/png" {
		t.Errorf("result: got %+v", res)
	}
	if res.SavedTo != "" {
		t.Errorf("SavedTo: got %s, want empty", res.SavedTo)
	}
}

func TestHandleToolsCall_Apply_TwoImages(t *testing.T) {
	s := New()
	a := createTestImageFile(t, 6, 6, color.NRGBA{200, 100, 0, 255})
	b := createTestImageFile(t, 6, 6, color.NRGBA{100, 200, 0, 255})
	out := filepath.Join(t.TempDir(), "diff.png")

	var res ApplyResult
	decodeResult(t, callTool(t, s, "image_apply", map[string]interface{}{
		"operation":   "difference",
		"path":        a,
		"path_b":      b,
		"output_path": out,
	}), &res)
	if res.SavedTo != out {
		t.Errorf("SavedTo: got %s, want %s", res.SavedTo, out)
	}

	var c imaging.ColorResult
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": out, "x": 3, "y": 3}), &c)
	if c.RGBA != (imaging.RGBAColor{R: 100, G: 100, B: 0, A: 255}) {
		t.Errorf("difference pixel: got %+v", c.RGBA)
	}
}

func TestHandleToolsCall_Apply_Chained(t *testing.T) {
	s := New()
	src := writeTestImage(t, 7, 7, func(x, y int) color.Color {
		if x == 3 && y == 3 {
			return color.NRGBA{220, 220, 220, 255}
		}
		return color.NRGBA{40, 40, 40, 255}
	})
	dir := t.TempDir()
	thresholded := filepath.Join(dir, "bin.png")
	dilated := filepath.Join(dir, "dilated.png")

	callTool(t, s, "image_apply", map[string]interface{}{
		"operation": "threshold", "path": src, "output_path": thresholded,
	})
	var res ApplyResult
	decodeResult(t, callTool(t, s, "image_apply", map[string]interface{}{
		"operation": "dilate", "path": thresholded, "output_path": dilated, "require_binary": true,
	}), &res)

	var multi imaging.MultiColorResult
	decodeResult(t, callTool(t, s, "image_sample_colors_multi", map[string]interface{}{
		"path":   dilated,
		"points": []map[string]interface{}{{"x": 3, "y": 2}, {"x": 2, "y": 2}},
	}), &multi)
	if multi.Samples[0].Color.Hex != "#FFFFFF" {
		t.Errorf("cross neighbor: got %s, want #FFFFFF", multi.Samples[0].Color.Hex)
	}
	if multi.Samples[1].Color.Hex != "#000000" {
		t.Errorf("diagonal neighbor: got %s, want #000000", multi.Samples[1].Color.Hex)
	}
}

func TestHandleToolsCall_Apply_ThresholdDefaultFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Threshold = 50
	s := New(WithConfig(cfg))
	imgPath := createTestImageFile(t, 3, 3, color.NRGBA{60, 60, 60, 255})
	out := filepath.Join(t.TempDir(), "t.png")

	callTool(t, s, "image_apply", map[string]interface{}{"operation": "threshold", "path": imgPath, "output_path": out})

	var c imaging.ColorResult
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": out, "x": 1, "y": 1}), &c)
	if c.Hex != "#FFFFFF" {
		t.Errorf("intensity 60 with level 50: got %s, want #FFFFFF", c.Hex)
	}
}

func TestHandleToolsCall_Apply_OutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	s := New(WithConfig(cfg))
	imgPath := createTestImageFile(t, 3, 3, color.NRGBA{10, 20, 30, 255})

	var res ApplyResult
	decodeResult(t, callTool(t, s, "image_apply", map[string]interface{}{"operation": "negative", "path": imgPath}), &res)

	want := imaging.OutputPath(cfg.OutputDir, imgPath, "negative", ".png")
	if res.SavedTo != want {
		t.Errorf("SavedTo: got %s, want %s", res.SavedTo, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestHandleToolsCall_Apply_Errors(t *testing.T) {
	s := New()
	img := createTestImageFile(t, 4, 4, color.NRGBA{100, 100, 100, 255})
	small := createTestImageFile(t, 2, 2, color.NRGBA{100, 100, 100, 255})

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantData string
	}{
		{"unknown operation", map[string]interface{}{"operation": "sharpen", "path": img}, "unknown operation"},
		{"divide by zero", map[string]interface{}{"operation": "divide", "path": img, "value": 0}, "division by zero"},
		{"missing value", map[string]interface{}{"operation": "multiply", "path": img}, "value is required"},
		{"bad order", map[string]interface{}{"operation": "order", "path": img, "order": 9}, "invalid parameter"},
		{"bad sigma", map[string]interface{}{"operation": "gaussian", "path": img, "sigma": "-1"}, "sigma"},
		{"even kernel", map[string]interface{}{"operation": "convolve", "path": img, "kernel": [][]float64{{1, 1}, {1, 1}}}, "odd"},
		{"missing path_b", map[string]interface{}{"operation": "add", "path": img}, "path_b"},
		{"size mismatch", map[string]interface{}{"operation": "add", "path": img, "path_b": small}, "dimensions differ"},
		{"not binary", map[string]interface{}{"operation": "erode", "path": img, "require_binary": true}, "not binary"},
		{"not a number", map[string]interface{}{"operation": "multiply", "path": img, "value": "lots"}, "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectToolError(t, callTool(t, s, "image_apply", tt.args), tt.wantData)
		})
	}
}

func TestHandleToolsCall_Equalize(t *testing.T) {
	s := New()
	imgPath := writeTestImage(t, 4, 4, func(x, y int) color.Color {
		if x < 2 {
			return color.NRGBA{100, 100, 100, 255}
		}
		return color.NRGBA{110, 110, 110, 255}
	})

	var res EqualizeResult
	decodeResult(t, callTool(t, s, "image_equalize", map[string]interface{}{"path": imgPath}), &res)

	if res.Before.Min != 100 || res.Before.Max != 110 {
		t.Errorf("before: got %+v", res.Before)
	}
	if res.After.Max != 255 {
		t.Errorf("after max: got %d, want 255", res.After.Max)
	}
	if res.Before.Pixels != 16 || res.After.Pixels != 16 {
		t.Errorf("pixel counts: before %d, after %d", res.Before.Pixels, res.After.Pixels)
	}
	if res.ImageResult == nil || res.ImageBase64 == "" {
		t.Error("equalized image missing")
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 20, color.NRGBA{128, 128, 128, 255})

	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_dimensions", map[string]interface{}{"path": imgPath}},
		{"image_sample_color", map[string]interface{}{"path": imgPath, "x": 10, "y": 10}},
		{"image_sample_colors_multi", map[string]interface{}{"path": imgPath, "points": []map[string]interface{}{{"x": 5, "y": 5}}}},
		{"image_histogram", map[string]interface{}{"path": imgPath}},
		{"image_validate_binary", map[string]interface{}{"path": imgPath}},
		{"image_operations", map[string]interface{}{}},
		{"image_apply", map[string]interface{}{"path": imgPath, "operation": "median"}},
		{"image_equalize", map[string]interface{}{"path": imgPath}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
