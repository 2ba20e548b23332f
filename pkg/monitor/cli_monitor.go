package monitor

import (
	"fmt"
	"io"
	"os"
	"time"
)

// CLIMonitor implements the Monitor interface, providing a direct
// terminal-based visualization of every conversation turn and tool call.
type CLIMonitor struct {
	writer io.Writer // The output destination, typically os.Stdout.
}

// NewCLIMonitor creates a CLI monitor writing to stdout.
func NewCLIMonitor() *CLIMonitor {
	return &CLIMonitor{
		writer: os.Stdout,
	}
}

// NewCLIMonitorWithWriter creates a CLI monitor writing to w.
func NewCLIMonitorWithWriter(w io.Writer) *CLIMonitor {
	return &CLIMonitor{
		writer: w,
	}
}

// Start prints the activation banner.
func (m *CLIMonitor) Start() error {
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	fmt.Fprintln(m.writer, "💬 CLI Monitor Active - conversation turns will appear here")
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	return nil
}

// Stop stops the CLI monitor.
func (m *CLIMonitor) Stop() error {
	return nil
}

// OnUserMessage displays a user message.
func (m *CLIMonitor) OnUserMessage(content string) {
	m.print(fmt.Sprintf("[USER] %s", content))
}

// OnAssistantMessage displays an assistant reply.
func (m *CLIMonitor) OnAssistantMessage(content string) {
	m.print(fmt.Sprintf("[AI] %s", content))
}

// OnToolCall displays a tool invocation with its raw arguments.
func (m *CLIMonitor) OnToolCall(name string, arguments string) {
	m.print(fmt.Sprintf("🛠️ [TOOL] %s %s", name, arguments))
}

// OnToolResult displays the outcome of a tool execution.
func (m *CLIMonitor) OnToolResult(name string, result string) {
	m.print(fmt.Sprintf("🛠️ [TOOL] %s -> %s", name, result))
}

// OnError displays a processing failure.
func (m *CLIMonitor) OnError(err error) {
	m.print(fmt.Sprintf("❌ [ERROR] %v", err))
}

func (m *CLIMonitor) print(displayMsg string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	// Use gray color for timestamp
	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m %s\n", timestamp, displayMsg)
}
