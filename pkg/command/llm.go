package command

import "context"

// LLMProvider 定义 Command 层依赖的 AI 能力接口。
// 这使得 Command 可以调用 AI 服务，而无需直接依赖 pkg/ai 包。
type LLMProvider interface {
	// Complete 发起与 AI 的一轮对话，同步返回完整回复。
	// sessionID: 会话标识
	// prompt: 用户输入
	Complete(ctx context.Context, sessionID, prompt string) (string, error)
}

// LLMFunc 便于直接以函数充当 LLMProvider。
type LLMFunc func(ctx context.Context, sessionID, prompt string) (string, error)

// Complete 实现 LLMProvider 接口。
func (f LLMFunc) Complete(ctx context.Context, sessionID, prompt string) (string, error) {
	if f == nil {
		return "", nil
	}
	return f(ctx, sessionID, prompt)
}
