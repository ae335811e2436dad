package botcore

import "context"

// Handler 抽象命令/业务执行器。
// 适配器解析出的标准消息交由 Handler 处理，产出统一回复。
type Handler interface {
	Handle(ctx context.Context, msg *BotMessage) (Reply, error)
}

// HandlerFunc 便于直接以函数充当 Handler。
type HandlerFunc func(ctx context.Context, msg *BotMessage) (Reply, error)

// Handle 实现 Handler 接口。
func (f HandlerFunc) Handle(ctx context.Context, msg *BotMessage) (Reply, error) {
	if f == nil {
		return Reply{}, nil
	}
	return f(ctx, msg)
}
