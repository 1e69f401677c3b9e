package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Images
		{
			Name:        "mockup_load_image",
			Description: "Load a design or template image and return its label, dimensions, format and whether it has transparency. The decoded image stays cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mockup_clear_cache",
			Description: "Start over: drop every cached design and template.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Print area and placement
		{
			Name:        "mockup_detect_print_area",
			Description: "Find the bounding rectangle of the shirt on a template shot against a near-white background. Also reports the backdrop colour and warns when it is too dark for reliable detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the template image"),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance cutoff (1-255). Pixels darker than this count as shirt. Default from config (240)",
						"minimum":     0,
						"maximum":     255,
					},
					"blur_kernel": map[string]interface{}{
						"type":        "integer",
						"description": "Odd Gaussian window size (1-31). Default from config (5)",
						"minimum":     0,
						"maximum":     31,
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a base64 PNG with the print area outlined",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mockup_classify_template",
			Description: "Classify a template label as 'model' (contains 'model', any case) or 'plain' and return the placement parameters that apply.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"label": map[string]interface{}{
						"type":        "string",
						"description": "Template file name or label, e.g. Model_Navy.png",
					},
				},
				"required": []string{"label"},
			},
		},
		{
			Name:        "mockup_compute_placement",
			Description: "Compute where a design would be pasted on a template (scaled size and top-left position) without rendering.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"design_path":    stringProperty("Absolute path to the design image"),
					"template_path":  stringProperty("Absolute path to the template image"),
					"template_label": stringProperty("Label used for classification. Default: template file name without extension"),
				},
				"required": []string{"design_path", "template_path"},
			},
		},
		{
			Name:        "mockup_composite",
			Description: "Render one mockup: paste the design onto the template's print area. Returns a base64 PNG, or writes it to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"design_path":    stringProperty("Absolute path to the design image"),
					"template_path":  stringProperty("Absolute path to the template image"),
					"template_label": stringProperty("Label used for classification. Default: template file name without extension"),
					"output_path":    stringProperty("Optional PNG path to write instead of returning image data"),
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline the detected print area and the paste box",
						"default":     false,
					},
				},
				"required": []string{"design_path", "template_path"},
			},
		},

		// Batch
		{
			Name:        "mockup_generate_batch",
			Description: "Composite every design onto every template and write PNGs under output_dir. Failures are reported per pair and never stop the batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"design_paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to design images",
					},
					"template_paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to template images",
					},
					"design_labels": map[string]interface{}{
						"type":                 "object",
						"additionalProperties": map[string]interface{}{"type": "string"},
						"description":          "Map of design path to the name used in output files",
					},
					"output_dir": stringProperty("Directory that receives the mockups"),
					"layout": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"folder", "flat"},
						"description": "folder: {design}/{design}_{template}_tee.png; flat: {design}_{template}.png",
					},
				},
				"required": []string{"design_paths", "template_paths", "output_dir"},
			},
		},

		// Tunables
		{
			Name:        "mockup_get_params",
			Description: "Return the current placement profiles, detection options and resample filter.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "mockup_set_params",
			Description: "Adjust placement profiles for this session. Omitted values are unchanged; invalid values are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"plain_padding": map[string]interface{}{
						"type":        "number",
						"description": "Padding ratio for plain templates (0-1]",
					},
					"model_padding": map[string]interface{}{
						"type":        "number",
						"description": "Padding ratio for model templates (0-1]",
					},
					"plain_offset": map[string]interface{}{
						"type":        "number",
						"description": "Vertical offset percent for plain templates [-50, 100]",
					},
					"model_offset": map[string]interface{}{
						"type":        "number",
						"description": "Vertical offset percent for model templates [-50, 100]",
					},
				},
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
