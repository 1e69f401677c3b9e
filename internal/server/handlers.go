package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/ironsheep/shirt-mockup-mcp/internal/batch"
	"github.com/ironsheep/shirt-mockup-mcp/internal/detection"
	"github.com/ironsheep/shirt-mockup-mcp/internal/imaging"
	"github.com/ironsheep/shirt-mockup-mcp/internal/placement"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mockup_composite").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured values for omitted optional parameters
//  3. Loads images from cache as needed
//  4. Calls the detection/placement/batch function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Images
	case "mockup_load_image":
		return s.handleLoadImage(args)
	case "mockup_clear_cache":
		return s.handleClearCache(args)

	// Print area and placement
	case "mockup_detect_print_area":
		return s.handleDetectPrintArea(args)
	case "mockup_classify_template":
		return s.handleClassifyTemplate(args)
	case "mockup_compute_placement":
		return s.handleComputePlacement(args)
	case "mockup_composite":
		return s.handleComposite(args)

	// Batch
	case "mockup_generate_batch":
		return s.handleGenerateBatch(ctx, args)

	// Tunables
	case "mockup_get_params":
		return s.handleGetParams(args)
	case "mockup_set_params":
		return s.handleSetParams(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func requirePath(field, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// === Image Handlers ===

type loadImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleClearCache(args json.RawMessage) (interface{}, error) {
	evicted := s.cache.Len()
	s.cache.Clear()
	return map[string]interface{}{"evicted": evicted}, nil
}

// === Print Area and Placement Handlers ===

type detectPrintAreaArgs struct {
	Path       string `json:"path"`
	Threshold  int    `json:"threshold"`
	BlurKernel int    `json:"blur_kernel"`
	Preview    bool   `json:"preview"`
}

type detectPrintAreaResult struct {
	Detected   bool                     `json:"detected"`
	Rect       *detection.BoundingRect  `json:"rect,omitempty"`
	Background imaging.BackgroundReport `json:"background"`
	Warning    string                   `json:"warning,omitempty"`
	Preview    *imaging.EncodedImage    `json:"preview,omitempty"`
}

func (s *Server) handleDetectPrintArea(args json.RawMessage) (interface{}, error) {
	var a detectPrintAreaArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	if a.Threshold < 0 || a.Threshold > 255 {
		return nil, fmt.Errorf("threshold %d out of range [0, 255]", a.Threshold)
	}

	opts := s.snapshot().Detection
	if a.Threshold != 0 {
		opts.Threshold = uint8(a.Threshold)
	}
	if a.BlurKernel != 0 {
		opts.BlurKernel = a.BlurKernel
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res := detectPrintAreaResult{Background: imaging.CheckBackground(img)}
	if rect, ok := detection.DetectPrintArea(img, opts); ok {
		res.Detected = true
		res.Rect = &rect
	}
	if !res.Background.Light {
		res.Warning = fmt.Sprintf("template background %s is not near-white; print-area detection is unreliable", res.Background.Hex)
	}

	if a.Preview {
		var boxes []imaging.Box
		if res.Rect != nil {
			boxes = append(boxes, imaging.Box{
				Rect:     res.Rect.Rect(),
				ColorHex: imaging.PrintAreaColor,
				Caption:  imaging.RectCaption(res.Rect.Rect()),
			})
		}
		preview, err := imaging.EncodeResult(imaging.Annotate(img, boxes, previewThickness(img)))
		if err != nil {
			return nil, err
		}
		res.Preview = preview
	}
	return res, nil
}

type classifyTemplateArgs struct {
	Label string `json:"label"`
}

func (s *Server) handleClassifyTemplate(args json.RawMessage) (interface{}, error) {
	var a classifyTemplateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	category, params := s.snapshot().Placement.ForLabel(a.Label)
	return map[string]interface{}{
		"category": category,
		"params":   params,
	}, nil
}

type placementArgs struct {
	DesignPath    string `json:"design_path"`
	TemplatePath  string `json:"template_path"`
	TemplateLabel string `json:"template_label"`
}

type placementResult struct {
	Category  placement.Category      `json:"category"`
	Params    placement.Params        `json:"params"`
	Detected  bool                    `json:"detected"`
	Rect      *detection.BoundingRect `json:"rect,omitempty"`
	Placement placement.Result        `json:"placement"`
}

// placementJob holds the decoded inputs and computed placement of one pair.
type placementJob struct {
	design   image.Image
	template image.Image
	result   placementResult
}

func (s *Server) preparePlacement(a placementArgs) (*placementJob, error) {
	if err := requirePath("design_path", a.DesignPath); err != nil {
		return nil, err
	}
	if err := requirePath("template_path", a.TemplatePath); err != nil {
		return nil, err
	}
	if a.TemplateLabel == "" {
		a.TemplateLabel = imaging.Label(a.TemplatePath)
	}

	design, err := s.cache.Load(a.DesignPath)
	if err != nil {
		return nil, err
	}
	template, err := s.cache.Load(a.TemplatePath)
	if err != nil {
		return nil, err
	}

	cfg := s.snapshot()
	job := &placementJob{design: design, template: template}
	job.result.Category, job.result.Params = cfg.Placement.ForLabel(a.TemplateLabel)
	if rect, ok := detection.DetectPrintArea(template, cfg.Detection); ok {
		job.result.Detected = true
		job.result.Rect = &rect
	}

	job.result.Placement, err = placement.Compute(design.Bounds().Size(), template.Bounds().Size(), job.result.Rect, job.result.Params)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Server) handleComputePlacement(args json.RawMessage) (interface{}, error) {
	var a placementArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	job, err := s.preparePlacement(a)
	if err != nil {
		return nil, err
	}
	return job.result, nil
}

type compositeArgs struct {
	placementArgs
	OutputPath string `json:"output_path"`
	Annotate   bool   `json:"annotate"`
}

type compositeResult struct {
	placementResult
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleComposite(args json.RawMessage) (interface{}, error) {
	var a compositeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	job, err := s.preparePlacement(a.placementArgs)
	if err != nil {
		return nil, err
	}

	filter, err := placement.FilterByName(s.snapshot().Render.Filter)
	if err != nil {
		return nil, err
	}
	out, _, err := placement.Composite(job.design, job.template, job.result.Rect, job.result.Params, placement.WithFilter(filter))
	if err != nil {
		return nil, err
	}

	var rendered image.Image = out
	if a.Annotate {
		var boxes []imaging.Box
		if job.result.Rect != nil {
			boxes = append(boxes, imaging.Box{Rect: job.result.Rect.Rect(), ColorHex: imaging.PrintAreaColor})
		}
		paste := job.result.Placement.Rect()
		boxes = append(boxes, imaging.Box{Rect: paste, ColorHex: imaging.PasteBoxColor, Caption: imaging.RectCaption(paste)})
		rendered = imaging.Annotate(out, boxes, previewThickness(out))
	}

	res := compositeResult{placementResult: job.result}
	if a.OutputPath != "" {
		if err := imaging.SavePNG(rendered, a.OutputPath); err != nil {
			return nil, err
		}
		res.OutputPath = a.OutputPath
		return res, nil
	}

	res.Image, err = imaging.EncodeResult(rendered)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// previewThickness scales outline width with the image so boxes stay visible.
func previewThickness(img image.Image) int {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() > side {
		side = b.Dy()
	}
	if t := side / 400; t > 1 {
		return t
	}
	return 1
}

// === Batch Handler ===

type generateBatchArgs struct {
	DesignPaths   []string          `json:"design_paths"`
	TemplatePaths []string          `json:"template_paths"`
	DesignLabels  map[string]string `json:"design_labels"`
	OutputDir     string            `json:"output_dir"`
	Layout        string            `json:"layout"`
}

type generateBatchResult struct {
	*batch.Report
	LoadErrors []loadErrorResult `json:"load_errors,omitempty"`
}

type loadErrorResult struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func (s *Server) handleGenerateBatch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a generateBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.DesignPaths) == 0 || len(a.TemplatePaths) == 0 {
		return nil, fmt.Errorf("at least one design and one template are required")
	}
	if err := requirePath("output_dir", a.OutputDir); err != nil {
		return nil, err
	}

	cfg := s.snapshot()
	if a.Layout != "" {
		cfg.Batch.Layout = a.Layout
	}
	runner, err := cfg.Runner(a.OutputDir)
	if err != nil {
		return nil, err
	}

	designs, designErrs := batch.LoadSources(s.cache, a.DesignPaths, a.DesignLabels)
	templates, templateErrs := batch.LoadSources(s.cache, a.TemplatePaths, nil)

	report, err := runner.Run(ctx, designs, templates)
	if err != nil {
		return nil, err
	}

	res := generateBatchResult{Report: report}
	for _, le := range append(designErrs, templateErrs...) {
		log.Printf("skipping %s: %v", le.Path, le.Err)
		res.LoadErrors = append(res.LoadErrors, loadErrorResult{Path: le.Path, Error: le.Err.Error()})
	}
	return res, nil
}

// === Tunable Handlers ===

func (s *Server) handleGetParams(args json.RawMessage) (interface{}, error) {
	cfg := s.snapshot()
	return map[string]interface{}{
		"placement": cfg.Placement,
		"detection": cfg.Detection,
		"filter":    cfg.Render.Filter,
	}, nil
}

type setParamsArgs struct {
	PlainPadding *float64 `json:"plain_padding"`
	ModelPadding *float64 `json:"model_padding"`
	PlainOffset  *float64 `json:"plain_offset"`
	ModelOffset  *float64 `json:"model_offset"`
}

func (s *Server) handleSetParams(args json.RawMessage) (interface{}, error) {
	var a setParamsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := s.cfg.Placement
	if a.PlainPadding != nil {
		profiles.Plain.PaddingRatio = *a.PlainPadding
	}
	if a.ModelPadding != nil {
		profiles.Model.PaddingRatio = *a.ModelPadding
	}
	if a.PlainOffset != nil {
		profiles.Plain.VerticalOffsetPct = *a.PlainOffset
	}
	if a.ModelOffset != nil {
		profiles.Model.VerticalOffsetPct = *a.ModelOffset
	}
	if err := profiles.Validate(); err != nil {
		return nil, err
	}

	s.cfg.Placement = profiles
	return map[string]interface{}{"placement": profiles}, nil
}
