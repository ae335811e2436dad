package command

import (
	"context"

	"github.com/IMBotPlatform/IMBotGateway/pkg/botcore"
)

// keyExecutionContext 是 context.Context 中存储 ExecutionContext 的键。
type keyExecutionContext struct{}

// ContextValues 存储命令执行过程中的上下文扩展字段。
type ContextValues map[string]string

// ConversationStore 定义上下文存取接口，便于替换实现。
type ConversationStore interface {
	Load(key string) (ContextValues, error)
	Save(key string, values ContextValues) error
}

// ExecutionContext 为命令 handler 提供必要的环境信息。
type ExecutionContext struct {
	Message *botcore.BotMessage
	Values  ContextValues
	Store   ConversationStore
	llm     LLMProvider
}

// LLM 返回 AI 服务提供者。
func (ctx *ExecutionContext) LLM() LLMProvider {
	return ctx.llm
}

// ConversationKey 返回当前上下文在存储中的唯一 key。
func (ctx *ExecutionContext) ConversationKey() string {
	if ctx == nil {
		return ""
	}
	return ctx.Message.ConversationKey()
}

// WithExecutionContext 将 ExecutionContext 注入到标准 context.Context 中。
func WithExecutionContext(ctx context.Context, execCtx *ExecutionContext) context.Context {
	return context.WithValue(ctx, keyExecutionContext{}, execCtx)
}

// FromContext 从标准 context.Context 中提取 ExecutionContext。
func FromContext(ctx context.Context) *ExecutionContext {
	val := ctx.Value(keyExecutionContext{})
	if val == nil {
		return nil
	}
	return val.(*ExecutionContext)
}
