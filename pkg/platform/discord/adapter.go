package discord

import (
	"fmt"
	"log"
	"net/http"

	"github.com/IMBotPlatform/IMBotGateway/pkg/botcore"
)

// PlatformName 是本适配器在注册表中的标识。
const PlatformName = "discord"

// Platform 实现 botcore.Platform，处理 Discord Interactions 回调。
// 构造完成后不持有任何可变状态，可被并发调用。
type Platform struct {
	verifier  *Verifier
	logger    *log.Logger
	ephemeral bool // 回复是否仅发送者可见，默认公开
}

// PlatformOption 用于定制 Platform 行为。
type PlatformOption func(*Platform)

// WithLogger 注入自定义日志记录器。
func WithLogger(l *log.Logger) PlatformOption {
	return func(p *Platform) {
		p.logger = l
	}
}

// WithEphemeralReplies 将命令回复切换为仅发送者可见。
func WithEphemeralReplies() PlatformOption {
	return func(p *Platform) {
		p.ephemeral = true
	}
}

// NewPlatform 创建 Discord 平台适配器。
// publicKey 为 hex 编码的应用公钥，空串表示关闭签名校验。
// strict 为 true 时公钥非法直接报错，否则退化为放行并记录告警。
func NewPlatform(publicKey string, strict bool, opts ...PlatformOption) (*Platform, error) {
	p := &Platform{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	verifier, err := NewVerifier(publicKey, strict)
	if err != nil {
		return nil, fmt.Errorf("init verify key: %w", err)
	}
	p.verifier = verifier

	// 配置缺陷只在构造期告警一次，不在每个请求上重复。
	switch {
	case verifier.Misconfigured():
		p.logf("[discord] 公钥无法解析，签名校验退化为放行: %s", truncateForLog(publicKey, sigLogSnippet))
	case !verifier.Enabled():
		p.logf("[discord] 未配置公钥，跳过签名校验")
	}

	return p, nil
}

// Name 实现 botcore.Platform。
func (p *Platform) Name() string {
	return PlatformName
}

// VerifyRequest 实现 botcore.Platform，校验 Ed25519 请求签名。
func (p *Platform) VerifyRequest(header http.Header, body []byte) bool {
	ok := p.verifier.Verify(header, body)
	if !ok {
		p.logf("[discord] 签名校验失败: sig=%s", truncateForLog(header.Get(HeaderSignature), sigLogSnippet))
	}
	return ok
}

// ParseMessage 实现 botcore.Platform，将 Slash Command 解析为标准消息。
// 握手探测与未识别类型返回 (nil, nil)；仅当载荷不是合法 JSON 时返回 error。
func (p *Platform) ParseMessage(body []byte) (*botcore.BotMessage, error) {
	in, err := ParseInteraction(body)
	if err != nil {
		return nil, err
	}

	// 握手探测由 HandleChallenge 独立处理，这里不转为消息。
	if in.Type == InteractionPing {
		return nil, nil
	}
	// 只处理结构化命令调用，其余类型显式忽略。
	if in.Type != InteractionApplicationCommand {
		return nil, nil
	}

	content := "/"
	if in.Data != nil {
		content += in.Data.Name
		if len(in.Data.Options) > 0 {
			for _, opt := range in.Data.Options {
				content += " " + optionValueString(opt.Value)
			}
		}
	}

	// 优先取服务器成员内嵌的用户，私聊场景回退到顶层用户。
	userID, userName := resolveActor(in)

	chatType := botcore.ChatTypePrivate
	if in.GuildID != "" {
		chatType = botcore.ChatTypeGroup
	}
	chatID := in.ChannelID
	if chatID == "" {
		chatID = in.GuildID
	}

	return &botcore.BotMessage{
		Platform:   PlatformName,
		MessageID:  in.ID,
		UserID:     userID,
		UserName:   userName,
		ChatID:     chatID,
		ChatType:   chatType,
		Content:    content,
		RawContent: content,
		Mentioned:  false,
		Mentions:   nil,
		Raw:        in,
	}, nil
}

// FormatResponse 实现 botcore.Platform，组装命令回复回包。
// 没有失败路径：载荷总能渲染为文本后成功返回。
func (p *Platform) FormatResponse(reply botcore.Reply, msg *botcore.BotMessage) botcore.WebhookResponse {
	flags := FlagsPublic
	if p.ephemeral {
		flags = FlagsEphemeral
	}
	return botcore.Success(BuildMessageResponse(reply.RenderText(), flags))
}

// HandleChallenge 实现 botcore.Platform，应答握手探测。
func (p *Platform) HandleChallenge(body []byte) (*botcore.WebhookResponse, error) {
	in, err := ParseInteraction(body)
	if err != nil {
		return nil, err
	}
	if in.Type != InteractionPing {
		return nil, nil
	}

	p.logf("[discord] 收到 Ping 探测，返回 Pong")
	resp := botcore.Success(BuildPongResponse())
	return &resp, nil
}

// resolveActor 解析触发用户，缺失时使用空 ID 与 "unknown" 名称。
func resolveActor(in *Interaction) (string, string) {
	user := in.User
	if in.Member != nil && in.Member.User != nil {
		user = in.Member.User
	}
	if user == nil {
		return "", "unknown"
	}
	name := user.Username
	if name == "" {
		name = "unknown"
	}
	return user.ID, name
}

// optionValueString 返回参数值的字符串形式，缺失值渲染为空串。
func optionValueString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (p *Platform) logf(format string, args ...interface{}) {
	if p == nil || p.logger == nil {
		return
	}
	p.logger.Printf(format, args...)
}
