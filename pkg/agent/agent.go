package agent

import (
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
	"github.com/rwxproject/agent-toolkit/pkg/monitor"
	"github.com/rwxproject/agent-toolkit/pkg/tools"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AgentResponse is the transient result of one Process call.
type AgentResponse struct {
	// Message is the assistant reply text.
	Message string `json:"message"`
	// ToolCalls carries any tool invocations the model proposed. The agent
	// records them; executing them is the caller's decision.
	ToolCalls []llm.ToolCall `json:"tool_calls,omitempty"`
	// Metadata carries per-turn bookkeeping: "turn" is the 1-based turn
	// number, "model" echoes the configured model name.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Agent owns one conversation: an ordered history, a tool registry and the
// model provider answering on its behalf. All methods are safe for
// concurrent use; Process calls against the same agent serialize.
type Agent struct {
	cfg      *config.AppConfig
	provider llm.Provider
	logger   zerolog.Logger
	history  *llm.History
	registry *tools.ToolRegistry
	monitors []monitor.Monitor
	mu       sync.Mutex
}

// New assembles an agent from its injected capabilities.
func New(cfg *config.AppConfig, provider llm.Provider, logger zerolog.Logger) *Agent {
	return &Agent{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With().Str("agent", cfg.Agent.Name).Logger(),
		history:  llm.NewHistory(),
		registry: tools.NewToolRegistry(),
	}
}

// AttachMonitor subscribes an observer to this agent's conversation events.
// Monitors are notified synchronously in attachment order.
func (a *Agent) AttachMonitor(m monitor.Monitor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.monitors = append(a.monitors, m)
}

// RegisterTool makes a tool available under its own name. Registering a
// name twice fails with *tools.AlreadyRegisteredError; use ReplaceTool for
// deliberate overwrites.
func (a *Agent) RegisterTool(tool tools.Tool) error {
	if err := a.registry.Register(tool); err != nil {
		return err
	}
	a.logger.Info().Str("tool", tool.Name()).Msg("🛠️ Tool registered")
	return nil
}

// ReplaceTool registers the tool, overwriting any previous holder of the name.
func (a *Agent) ReplaceTool(tool tools.Tool) {
	a.registry.Replace(tool)
	a.logger.Info().Str("tool", tool.Name()).Msg("🛠️ Tool replaced")
}

// Tools exposes the agent's registry for direct execution paths.
func (a *Agent) Tools() *tools.ToolRegistry {
	return a.registry
}

// Process appends the input as a user message, asks the provider for the
// assistant reply and appends that too. On provider failure the user
// message stays recorded, no assistant message is appended and the error
// propagates wrapped.
//
// Blank input is accepted and recorded; input policy belongs to callers.
func (a *Agent) Process(ctx context.Context, input string) (*AgentResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.notifyUser(input)
	a.history.Add(llm.NewUserMessage(input))

	req := &llm.Request{
		Messages: a.history.GetMessages(),
		Model:    a.cfg.Model,
		Tools:    a.toolInfos(),
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		a.notifyError(err)
		a.logger.Error().Err(err).Msg("❌ Model generation failed")
		return nil, fmt.Errorf("model generation failed: %w", err)
	}

	a.history.Add(llm.NewAssistantMessage(resp.Text))
	a.notifyAssistant(resp.Text)
	for _, tc := range resp.ToolCalls {
		a.notifyToolCall(tc.Name, tc.Arguments)
	}

	return &AgentResponse{
		Message:   resp.Text,
		ToolCalls: resp.ToolCalls,
		Metadata: map[string]any{
			"turn":  a.history.Len() / 2,
			"model": a.cfg.Model.Name,
		},
	}, nil
}

// ExecuteTool runs a registered tool directly, outside the model loop.
// Arguments are schema-validated before the tool runs; monitors observe
// the call, its result or its failure. Direct executions serialize with
// Process on the same agent.
func (a *Agent) ExecuteTool(ctx context.Context, name string, args map[string]any) (*tools.ToolResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	payload, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool arguments: %w", err)
	}
	a.notifyToolCall(name, string(payload))

	res, err := a.registry.Execute(ctx, name, args)
	if err != nil {
		a.notifyError(err)
		a.logger.Error().Err(err).Str("tool", name).Msg("❌ Tool execution failed")
		return nil, err
	}

	a.notifyToolResult(name, res.Text())
	return res, nil
}

// Reset clears the conversation history. Safe to call repeatedly.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.Reset()
	a.logger.Info().Msg("🔄 Conversation history reset")
}

// History returns a snapshot copy of the conversation so far. Mutating the
// returned slice never affects the agent.
func (a *Agent) History() []llm.Message {
	return a.history.GetMessages()
}

// RestoreHistory replaces the conversation with a previously saved message
// log, typically read back from a session store.
func (a *Agent) RestoreHistory(msgs []llm.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.Replace(msgs)
}

// toolInfos converts the registry contents into provider-neutral tool
// declarations for the request.
func (a *Agent) toolInfos() []llm.ToolInfo {
	all := a.registry.GetAll()
	if len(all) == 0 {
		return nil
	}
	infos := make([]llm.ToolInfo, len(all))
	for i, t := range all {
		infos[i] = llm.ToolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
			Required:    t.RequiredParameters(),
		}
	}
	return infos
}

//----------------------------------------------------------------
// Monitor notifications
//----------------------------------------------------------------

func (a *Agent) notifyUser(content string) {
	for _, m := range a.monitors {
		m.OnUserMessage(content)
	}
}

func (a *Agent) notifyAssistant(content string) {
	for _, m := range a.monitors {
		m.OnAssistantMessage(content)
	}
}

func (a *Agent) notifyToolCall(name, arguments string) {
	for _, m := range a.monitors {
		m.OnToolCall(name, arguments)
	}
}

func (a *Agent) notifyToolResult(name, result string) {
	for _, m := range a.monitors {
		m.OnToolResult(name, result)
	}
}

func (a *Agent) notifyError(err error) {
	for _, m := range a.monitors {
		m.OnError(err)
	}
}
