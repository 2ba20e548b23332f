package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
	"github.com/rwxproject/agent-toolkit/pkg/llm/placeholder"
	"github.com/rwxproject/agent-toolkit/pkg/tools"
)

// fakeProvider records every request and answers with a canned reply.
type fakeProvider struct {
	mu        sync.Mutex
	requests  []*llm.Request
	reply     func(req *llm.Request) string
	toolCalls []llm.ToolCall
	err       error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, req *llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	text := "ok"
	if f.reply != nil {
		text = f.reply(req)
	}
	return &llm.Response{Text: text, Model: req.Model.Name, ToolCalls: f.toolCalls}, nil
}

func (f *fakeProvider) IsTransientError(error) bool { return false }

// recordingMonitor captures notifications in arrival order.
type recordingMonitor struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingMonitor) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingMonitor) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recordingMonitor) OnUserMessage(c string)      { r.add("user:" + c) }
func (r *recordingMonitor) OnAssistantMessage(c string) { r.add("assistant:" + c) }
func (r *recordingMonitor) OnToolCall(n, a string)      { r.add("call:" + n) }
func (r *recordingMonitor) OnToolResult(n, res string)  { r.add("result:" + n + ":" + res) }
func (r *recordingMonitor) OnError(err error)           { r.add("error:" + err.Error()) }

func testConfig(name string) *config.AppConfig {
	cfg := config.Default()
	cfg.Agent.Name = name
	return cfg
}

func TestProcessAppendsUserThenAssistant(t *testing.T) {
	provider := &fakeProvider{reply: func(*llm.Request) string { return "the answer" }}
	a := New(testConfig("Test Agent"), provider, zerolog.Nop())

	resp, err := a.Process(context.Background(), "a question")
	require.NoError(t, err)
	assert.Equal(t, "the answer", resp.Message)
	assert.Equal(t, 1, resp.Metadata["turn"])
	assert.Equal(t, "gemini-1.5-pro", resp.Metadata["model"])

	history := a.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, "a question", history[0].Content)
	assert.Equal(t, llm.RoleAssistant, history[1].Role)
	assert.Equal(t, "the answer", history[1].Content)

	_, err = a.Process(context.Background(), "another question")
	require.NoError(t, err)
	assert.Len(t, a.History(), 4)
}

func TestProcessTurnCounter(t *testing.T) {
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())

	for turn := 1; turn <= 3; turn++ {
		resp, err := a.Process(context.Background(), fmt.Sprintf("question %d", turn))
		require.NoError(t, err)
		assert.Equal(t, turn, resp.Metadata["turn"])
	}
}

func TestProcessAcceptsBlankInput(t *testing.T) {
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())

	resp, err := a.Process(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, resp)

	history := a.History()
	require.Len(t, history, 2)
	assert.Equal(t, "", history[0].Content)
}

func TestProcessProviderFailure(t *testing.T) {
	mon := &recordingMonitor{}
	provider := &fakeProvider{err: errors.New("upstream down")}
	a := New(testConfig("Test Agent"), provider, zerolog.Nop())
	a.AttachMonitor(mon)

	_, err := a.Process(context.Background(), "hello?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model generation failed")

	// The user message stays recorded; no assistant message appears.
	history := a.History()
	require.Len(t, history, 1)
	assert.Equal(t, llm.RoleUser, history[0].Role)

	events := mon.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "user:hello?", events[0])
	assert.Contains(t, events[1], "error:")
}

func TestProcessWithPlaceholderProvider(t *testing.T) {
	cfg := testConfig("Test Agent")
	a := New(cfg, placeholder.NewPlaceholderClient(cfg.Agent.Name), zerolog.Nop())

	resp, err := a.Process(context.Background(), "Hello, agent!")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Test Agent")

	history := a.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, "Hello, agent!", history[0].Content)
}

func TestResetClearsHistory(t *testing.T) {
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())

	_, err := a.Process(context.Background(), "one")
	require.NoError(t, err)
	require.NotEmpty(t, a.History())

	a.Reset()
	assert.Empty(t, a.History())

	// Idempotent, and the agent stays usable.
	a.Reset()
	_, err = a.Process(context.Background(), "two")
	require.NoError(t, err)
	assert.Len(t, a.History(), 2)
}

func TestHistoryReturnsIndependentCopy(t *testing.T) {
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())
	_, err := a.Process(context.Background(), "original")
	require.NoError(t, err)

	history := a.History()
	history[0].Content = "tampered"

	assert.Equal(t, "original", a.History()[0].Content)
}

func TestRegisterToolCollision(t *testing.T) {
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())

	require.NoError(t, a.RegisterTool(tools.NewCalculatorTool()))

	err := a.RegisterTool(tools.NewCalculatorTool())
	var regErr *tools.AlreadyRegisteredError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "calculator", regErr.Name)

	// ReplaceTool is the explicit overwrite path.
	a.ReplaceTool(tools.NewCalculatorTool())
}

func TestProcessForwardsToolDeclarations(t *testing.T) {
	provider := &fakeProvider{}
	a := New(testConfig("Test Agent"), provider, zerolog.Nop())
	require.NoError(t, a.RegisterTool(tools.NewWebSearchTool()))
	require.NoError(t, a.RegisterTool(tools.NewCalculatorTool()))

	_, err := a.Process(context.Background(), "what tools do you have?")
	require.NoError(t, err)

	require.Len(t, provider.requests, 1)
	declared := provider.requests[0].Tools
	require.Len(t, declared, 2)
	assert.Equal(t, "calculator", declared[0].Name)
	assert.Equal(t, "web_search", declared[1].Name)
	assert.NotEmpty(t, declared[0].Parameters)
	assert.Contains(t, declared[0].Required, "operation")
}

func TestProcessReportsProposedToolCalls(t *testing.T) {
	mon := &recordingMonitor{}
	provider := &fakeProvider{
		toolCalls: []llm.ToolCall{{Name: "calculator", Arguments: `{"operation":"add","a":1,"b":2}`}},
	}
	a := New(testConfig("Test Agent"), provider, zerolog.Nop())
	a.AttachMonitor(mon)

	resp, err := a.Process(context.Background(), "add 1 and 2")
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "calculator", resp.ToolCalls[0].Name)

	assert.Contains(t, mon.snapshot(), "call:calculator")
}

func TestExecuteToolNotifiesMonitors(t *testing.T) {
	mon := &recordingMonitor{}
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())
	a.AttachMonitor(mon)
	require.NoError(t, a.RegisterTool(tools.NewCalculatorTool()))

	res, err := a.ExecuteTool(context.Background(), "calculator", map[string]any{
		"operation": "add", "a": 5.0, "b": 3.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "8", res.Text())

	events := mon.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "call:calculator", events[0])
	assert.Equal(t, "result:calculator:8", events[1])
}

func TestExecuteToolUnknown(t *testing.T) {
	mon := &recordingMonitor{}
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())
	a.AttachMonitor(mon)

	_, err := a.ExecuteTool(context.Background(), "missing", nil)
	require.ErrorIs(t, err, tools.ErrToolNotFound)
	assert.Contains(t, mon.snapshot(), "error:"+err.Error())
}

func TestMonitorsObserveTurnsInOrder(t *testing.T) {
	mon := &recordingMonitor{}
	a := New(testConfig("Test Agent"), &fakeProvider{reply: func(*llm.Request) string { return "pong" }}, zerolog.Nop())
	a.AttachMonitor(mon)

	_, err := a.Process(context.Background(), "ping")
	require.NoError(t, err)

	assert.Equal(t, []string{"user:ping", "assistant:pong"}, mon.snapshot())
}

func TestConcurrentProcessSerializes(t *testing.T) {
	a := New(testConfig("Test Agent"), &fakeProvider{}, zerolog.Nop())

	const goroutines = 8
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := a.Process(context.Background(), fmt.Sprintf("msg %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history := a.History()
	require.Len(t, history, goroutines*2)
	for i, msg := range history {
		if i%2 == 0 {
			assert.Equal(t, llm.RoleUser, msg.Role, "index %d", i)
		} else {
			assert.Equal(t, llm.RoleAssistant, msg.Role, "index %d", i)
		}
	}
}
