package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for later fontfit_region calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
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
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_normalize",
			Description: "Flatten transparency onto white and rescale a screenshot to a fixed width (default 750px) so font sizes are comparable across devices. Returns the original and normalized sizes, the scale factor and the output path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"target_width": map[string]interface{}{
						"type":        "integer",
						"description": "Output width in pixels. Defaults to the configured target width",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the normalized PNG. Defaults to <output dir>/<name>_normalized.png",
					},
				},
				"required": []string{"path"},
			},
		},

		// Font Fitting
		{
			Name:        "fontfit_region",
			Description: "Estimate the font size and baseline offset of one line of text in an image. Renders the text with the reference font across sizes and offsets and keeps the rendering that best overlaps the pixels in the box. Returns font_size (null when nothing matched), baseline_offset and fit_quality (IoU 0-1).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The text shown in the box, exactly as rendered",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Left edge of the text box",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Top edge of the text box",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Width of the text box",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Height of the text box",
					},
					"min_size": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest font size to try (inclusive). Default 8",
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Largest font size bound (exclusive). Default 100",
					},
				},
				"required": []string{"path", "text", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "fontfit_process_image",
			Description: "Run the full pipeline on a screenshot: normalize, detect text lines with OCR (or read detections from a JSON file), fit every line, write overlay and annotated images, and return per-line results with a font size summary. The result is stored under the returned task_id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"detections_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional JSON file of OCR output (PaddleOCR result object or an array of {text, confidence, polygon|box}) in normalized-image coordinates. Skips the built-in OCR",
					},
					"show_quality": map[string]interface{}{
						"type":        "boolean",
						"description": "Include fit quality in annotation labels. Default true",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "fontfit_get_result",
			Description: "Fetch a stored fontfit_process_image result by task id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id": map[string]interface{}{
						"type":        "string",
						"description": "The task_id returned by fontfit_process_image",
					},
				},
				"required": []string{"task_id"},
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
