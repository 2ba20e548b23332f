package placeholder

import (
	"context"
	"fmt"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// PlaceholderClient is the default provider. It never touches the network:
// Generate returns a deterministic templated reply embedding the configured
// agent name. It marks the seam where a real model integration plugs in.
type PlaceholderClient struct {
	agentName string
}

// NewPlaceholderClient creates a placeholder client for the given agent name.
func NewPlaceholderClient(agentName string) *PlaceholderClient {
	return &PlaceholderClient{agentName: agentName}
}

func (p *PlaceholderClient) Name() string {
	return "placeholder"
}

// Generate returns the canned reply. The model name is echoed from the
// request so response metadata has the same shape as with a real provider.
func (p *PlaceholderClient) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &llm.Response{
		Text: fmt.Sprintf(
			"This is a placeholder response from %s. Wire a real model provider to replace it.",
			p.agentName,
		),
		Model: req.Model.Name,
		Usage: &llm.Usage{StopReason: llm.StopReasonStop},
	}, nil
}

// IsTransientError implements the llm.Provider interface.
// The placeholder never fails, so nothing is transient.
func (p *PlaceholderClient) IsTransientError(err error) bool {
	return false
}
