package botcore

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

// Bot 将单个平台适配器与业务 Handler 串联为 http.Handler。
// 每个入站请求沿固定状态机推进：
// 校验签名 -> 握手短路 -> 解析消息 -> 业务处理 -> 格式化回包。
// Fields:
//   - Platform: 平台适配器，不能为空
//   - Handler: 业务执行器，可为空（所有消息静默丢弃）
type Bot struct {
	Platform Platform
	Handler  Handler

	logger *log.Logger
}

// BotOption 用于定制 Bot 行为。
type BotOption func(*Bot)

// WithLogger 注入自定义日志记录器。
func WithLogger(l *log.Logger) BotOption {
	return func(b *Bot) {
		b.logger = l
	}
}

// NewBot 根据给定的平台适配器与业务执行器创建 Bot。
func NewBot(platform Platform, handler Handler, opts ...BotOption) (*Bot, error) {
	if platform == nil {
		return nil, errors.New("platform is required")
	}
	bot := &Bot{
		Platform: platform,
		Handler:  handler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(bot)
		}
	}
	return bot, nil
}

// ServeHTTP 实现 http.Handler 接口。
// 平台回调一律为 POST，其余方法拒绝。
func (b *Bot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b == nil || b.Platform == nil {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// 第一步：完整读取请求体。签名必须在原始字节上计算，
	// 任何重新序列化都可能破坏逐字节一致性。
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// 第二步：签名校验失败直接拒绝，不进入解析与分发。
	if !b.Platform.VerifyRequest(r.Header, body) {
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	// 第三步：握手探测短路应答，不触发业务逻辑。
	// 必须先于 ParseMessage 判定，两者的“无消息”结果依赖此顺序区分。
	challenge, err := b.Platform.HandleChallenge(body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if challenge != nil {
		b.writeEnvelope(w, *challenge)
		return
	}

	// 第四步：解析为标准消息；无需处理的事件静默返回空 200。
	msg, err := b.Platform.ParseMessage(body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if msg == nil || b.Handler == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	// 第五步：分发业务并格式化回包。
	// 平台期望在时限内收到格式合法的回复，业务报错时降级为提示文本，
	// 避免回 5xx 触发平台侧重试。
	reply, err := b.Handler.Handle(r.Context(), msg)
	if err != nil {
		b.logf("handle %s message %s: %v", msg.Platform, msg.MessageID, err)
		reply = ReplyText("命令执行出错，请稍后再试")
	}

	b.writeEnvelope(w, b.Platform.FormatResponse(reply, msg))
}

// writeEnvelope 将回包序列化后写回调用方。
func (b *Bot) writeEnvelope(w http.ResponseWriter, resp WebhookResponse) {
	if !resp.OK {
		http.Error(w, resp.Reason, http.StatusInternalServerError)
		return
	}
	data, err := json.Marshal(resp.Payload)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

func (b *Bot) logf(format string, args ...interface{}) {
	if b == nil || b.logger == nil {
		return
	}
	b.logger.Printf(format, args...)
}
