package llm

//----------------------------------------------------------------
// Message - 通用訊息結構
//----------------------------------------------------------------

// Message 表示一條對話訊息，加入歷史後即不可變
type Message struct {
	Role    string `json:"role"`    // "user" 或 "assistant"
	Content string `json:"content"` // 訊息內文
}

// ToolCall 表示模型產生的工具調用請求
// 僅作為回應中的不透明紀錄傳遞，執行決策迴圈不在本套件範圍內
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON 字串
}

//----------------------------------------------------------------
// Helper Functions - Message
//----------------------------------------------------------------

// NewUserMessage 建立使用者訊息
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage 建立助理訊息
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}
