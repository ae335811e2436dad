package botcore

// ChatType 描述会话的归属范围。
type ChatType string

const (
	// ChatTypePrivate 私聊会话（无群/服务器范围）。
	ChatTypePrivate ChatType = "private"
	// ChatTypeGroup 群聊会话（携带群/服务器范围）。
	ChatTypeGroup ChatType = "group"
)

// BotMessage 描述任意聊天/机器人平台上标准化后的入站事件。
// 由平台适配器在每个入站事件上构造一次，构造完成后不再修改。
type BotMessage struct {
	Platform   string      // 平台标识，如 "discord"
	MessageID  string      // 平台内的唯一消息或事件 ID
	UserID     string      // 触发用户标识
	UserName   string      // 触发用户名称，缺失时为 "unknown"
	ChatID     string      // 会话 ID，频道优先于群/服务器
	ChatType   ChatType    // 会话类型
	Content    string      // 标准化后的命令文本，结构化命令一律以 "/" 开头
	RawContent string      // 平台原始文本内容
	Mentioned  bool        // 当前机器人是否被提及
	Mentions   []string    // 被提及用户 ID，保持平台给出的顺序
	Raw        interface{} // 平台原始结构引用，仅供审计/调试，下游不得重新解析
}

// CloneMentions 返回一份 Mentions 拷贝，防止 Handler 意外修改底层数据。
func (m *BotMessage) CloneMentions() []string {
	if m == nil || len(m.Mentions) == 0 {
		return nil
	}
	out := make([]string, len(m.Mentions))
	copy(out, m.Mentions)
	return out
}

// ConversationKey 返回消息所属会话在存储中的唯一 key。
func (m *BotMessage) ConversationKey() string {
	if m == nil {
		return ""
	}
	return m.Platform + ":" + m.ChatID + ":" + m.UserID
}
