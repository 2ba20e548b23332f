package tools

import "context"

// Tool defines the structural interface for any capability that the agent
// can execute. It includes metadata for declaration to a model provider
// (JSON Schema fragments) and the execution logic itself.
type Tool interface {
	// Name returns the unique registry name of the tool.
	Name() string
	// Description explains the capability for prompt injection.
	Description() string
	// Parameters returns the JSON Schema properties keyed by argument name.
	Parameters() map[string]any
	// RequiredParameters lists the argument names that must be present.
	RequiredParameters() []string
	// Execute performs the actual tool logic using the provided argument map.
	Execute(ctx context.Context, args map[string]any) (*ToolResult, error)
}

// ToolResult encapsulates the outcome of a tool execution.
// It can contain multiple content blocks (text logs, images) and
// arbitrary metadata for the caller to process.
type ToolResult struct {
	Content []ContentBlock `json:"content"`           // Ordered blocks of result data
	Details map[string]any `json:"details,omitempty"` // Arbitrary technical metadata
}

// ContentBlock is an atomic data unit within a ToolResult.
type ContentBlock struct {
	Type     string `json:"type"`                // Data format: "text" or "image"
	Text     string `json:"text,omitempty"`      // String content (for text type)
	Data     string `json:"data,omitempty"`      // Base64 encoded image data (for image type)
	MimeType string `json:"mime_type,omitempty"` // MIME type for image data (e.g., "image/jpeg")
}

// NewTextResult wraps plain text in a single-block result.
func NewTextResult(text string) *ToolResult {
	return &ToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// Text concatenates all text blocks of the result.
func (r *ToolResult) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out
}
