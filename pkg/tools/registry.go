package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ToolRegistry acts as a central inventory for all tools available to the agent.
type ToolRegistry struct {
	mu    sync.RWMutex    // Protects concurrent access to the tools map
	tools map[string]Tool // Internal map of tool name to implementation
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. A name collision is almost always a
// wiring mistake, so it fails with *AlreadyRegisteredError instead of
// silently overwriting the previous tool.
func (tr *ToolRegistry) Register(tool Tool) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.tools[tool.Name()]; exists {
		return &AlreadyRegisteredError{Name: tool.Name()}
	}
	tr.tools[tool.Name()] = tool
	return nil
}

// Replace adds a tool, overwriting any existing entry with the same name.
func (tr *ToolRegistry) Replace(tool Tool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.tools[tool.Name()] = tool
}

// Unregister removes a tool from the registry
func (tr *ToolRegistry) Unregister(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	delete(tr.tools, name)
}

// Get retrieves a tool by name
func (tr *ToolRegistry) Get(name string) (Tool, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	tool, ok := tr.tools[name]
	return tool, ok
}

// GetAll returns all registered tools sorted by name
func (tr *ToolRegistry) GetAll() []Tool {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	tools := make([]Tool, 0, len(tr.tools))
	for _, tool := range tr.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name() < tools[j].Name()
	})
	return tools
}

// Len returns the number of registered tools
func (tr *ToolRegistry) Len() int {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return len(tr.tools)
}

// Execute looks the tool up, validates args against its declared schema and
// runs it. Invalid arguments never reach the tool's Execute method.
func (tr *ToolRegistry) Execute(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	tool, ok := tr.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if err := ValidateArgs(tool, args); err != nil {
		return nil, err
	}

	return tool.Execute(ctx, args)
}
