// Package server implements the MCP (Model Context Protocol) server for shirt mockups.
//
// This package provides a JSON-RPC 2.0 server that exposes print-area
// detection, placement and compositing through the MCP protocol, so an
// assistant can preview and batch-generate mockups from designs and shirt
// templates on disk.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Images:
//   - mockup_load_image: Load image and get metadata
//   - mockup_clear_cache: Drop cached images
//
// Print Area and Placement:
//   - mockup_detect_print_area: Find the shirt's bounding rectangle
//   - mockup_classify_template: Plain or model, and the parameters used
//   - mockup_compute_placement: Scaled size and paste point
//   - mockup_composite: Render one mockup
//
// Batch:
//   - mockup_generate_batch: Every design onto every template
//
// Tunables:
//   - mockup_get_params: Current profiles
//   - mockup_set_params: Adjust profiles for the session
//
// # Session State
//
// Decoded images are cached by path for the lifetime of the process, or until
// mockup_clear_cache. Parameter changes made with mockup_set_params are held
// in memory only and never written to the config file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(cfg, server.WithVersion(version))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
