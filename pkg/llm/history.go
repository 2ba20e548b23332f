package llm

import (
	"sync"
)

// History 管理對話歷史，所有操作皆為執行緒安全
type History struct {
	messages []Message
	mu       sync.RWMutex
}

// NewHistory 建立一個新的歷史管理員
func NewHistory() *History {
	return &History{
		messages: make([]Message, 0),
	}
}

// Add 加入一則新訊息
func (h *History) Add(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, msg)
}

// GetMessages 取得目前的對話歷史副本
func (h *History) GetMessages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// 返回副本，呼叫端修改不影響內部狀態
	cp := make([]Message, len(h.messages))
	copy(cp, h.messages)
	return cp
}

// Len 回傳目前的訊息數量
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.messages)
}

// Reset 清空歷史，可重複呼叫
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = h.messages[:0]
}

// Replace 以指定的訊息序列覆蓋歷史，用於從保存的 Session 還原
func (h *History) Replace(msgs []Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = make([]Message, len(msgs))
	copy(h.messages, msgs)
}
