package monitor

// Monitor 介面定義了對話觀察者的行為
// 通知為同步呼叫，依事件發生順序送達
type Monitor interface {
	// OnUserMessage 接收一則使用者訊息
	OnUserMessage(content string)

	// OnAssistantMessage 接收一則助理回覆
	OnAssistantMessage(content string)

	// OnToolCall 接收一次工具調用（arguments 為 JSON 字串）
	OnToolCall(name string, arguments string)

	// OnToolResult 接收一次工具執行結果
	OnToolResult(name string, result string)

	// OnError 接收一次處理失敗
	OnError(err error)
}
