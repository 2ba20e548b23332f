package llm

// Role constants define the two conversation roles stored in history.
// Insertion order is semantically significant: a user message is always
// followed by the assistant message answering it.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// StopReason constants define normalized reasons for generation termination.
// All providers must normalize their native stop reasons to these values.
const (
	StopReasonStop   = "stop"   // Normal completion
	StopReasonLength = "length" // Output truncated due to token limit
)
