package server

import (
	"strings"

	"github.com/ironsheep/image-editor-mcp/internal/ops"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, whether it has transparency and whether it is binary (every channel 0 or 255).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color and Intensity
		{
			Name:        "image_sample_color",
			Description: "Get the exact color of a pixel as hex, RGB, RGBA and HSL, plus its grayscale intensity.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample pixel colors at several points in one call. Useful for comparing a pixel before and after an operation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_histogram",
			Description: "Intensity histogram of an image, intensity being round((R+G+B)/3). Returns min, max, mean and peak, and optionally all 256 counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"counts": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the count for every level 0-255. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_validate_binary",
			Description: "Check whether every color channel is 0 or 255. Morphology operations (dilate, erode, open, close, contour) expect binary images; run threshold first if this fails.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Editing
		{
			Name:        "image_operations",
			Description: "List the operations image_apply accepts, with their category, number of input images and parameters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Only list operations in this category",
						"enum":        categoryNames(),
					},
				},
			},
		},
		{
			Name: "image_apply",
			Description: "Apply a pixel operation and return the result as base64-encoded PNG. " +
				"Two-image operations (" + strings.Join(twoInputOperations(), ", ") + ") need path_b with the same dimensions. " +
				"Filters leave a border as wide as their radius unchanged. Numbers may be given as strings with a comma decimal separator.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"operation": map[string]interface{}{
						"type":        "string",
						"description": "Operation name, see image_operations",
						"enum":        ops.Names(),
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input image (image A)",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image (image B) for two-image operations",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to save the result to; format follows the extension (png, jpg, gif, tif, bmp, qoi)",
					},
					"value": map[string]interface{}{
						"type":        []string{"number", "string"},
						"description": "Scalar for add_value, subtract_value, multiply and divide (divide rejects 0)",
					},
					"ratio": map[string]interface{}{
						"type":        []string{"number", "string"},
						"description": "Blend weight of image A, clamped to [0,1]. Default 0.5",
						"default":     0.5,
					},
					"level": map[string]interface{}{
						"type":        []string{"integer", "string"},
						"description": "Threshold level 0-255; intensity >= level becomes white. Default from server config (128)",
					},
					"order": map[string]interface{}{
						"type":        []string{"integer", "string"},
						"description": "Rank 0-8 for the order filter (0 = min, 4 = median, 8 = max). Default 4",
						"default":     4,
					},
					"sigma": map[string]interface{}{
						"type":        []string{"number", "string"},
						"description": "Gaussian standard deviation, must be positive. Default 1",
						"default":     1.0,
					},
					"kernel": map[string]interface{}{
						"type":        "array",
						"description": "Convolution weights as rows; odd and square, e.g. [[0,-1,0],[-1,5,-1],[0,-1,0]]. Not normalized",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "number"},
						},
					},
					"require_binary": map[string]interface{}{
						"type":        "boolean",
						"description": "For morphology operations: fail unless the input is binary. Default false",
						"default":     false,
					},
				},
				"required": []string{"operation", "path"},
			},
		},
		{
			Name:        "image_equalize",
			Description: "Histogram-equalize the grayscale version of an image. Returns the result plus histogram summaries before and after.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to save the result to",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

func categoryNames() []string {
	seen := map[ops.Category]bool{}
	var names []string
	for _, op := range ops.All() {
		if !seen[op.Category] {
			seen[op.Category] = true
			names = append(names, string(op.Category))
		}
	}
	return names
}

func twoInputOperations() []string {
	var names []string
	for _, op := range ops.All() {
		if op.Inputs == 2 {
			names = append(names, op.Name)
		}
	}
	return names
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
