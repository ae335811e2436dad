package discord

import (
	"encoding/json"
)

// Interaction 类型判别值。其余取值一律忽略。
const (
	// InteractionPing 握手探测（配置回调地址时由平台发起）。
	InteractionPing = 1
	// InteractionApplicationCommand 结构化命令调用（Slash Command）。
	InteractionApplicationCommand = 2
)

// 回包类型判别值。
const (
	// ResponsePong 握手确认。
	ResponsePong = 1
	// ResponseChannelMessage 携带内容的命令回复。
	ResponseChannelMessage = 4
)

// 回复可见性标记。
const (
	// FlagsPublic 默认公开回复。
	FlagsPublic = 0
	// FlagsEphemeral 仅发送者可见的回复。
	FlagsEphemeral = 64
)

// Interaction 表示 Discord Interactions 回调的通用载荷。
type Interaction struct {
	Type      int          `json:"type"`                 // 判别值：1=Ping, 2=ApplicationCommand
	ID        string       `json:"id,omitempty"`         // 事件唯一标识
	Data      *CommandData `json:"data,omitempty"`       // 命令信息，仅命令调用携带
	Member    *Member      `json:"member,omitempty"`     // 服务器内成员信息
	User      *User        `json:"user,omitempty"`       // 私聊场景下的用户信息
	ChannelID string       `json:"channel_id,omitempty"` // 频道 ID
	GuildID   string       `json:"guild_id,omitempty"`   // 服务器 ID
}

// CommandData 为命令调用的具体内容。
type CommandData struct {
	Name    string          `json:"name"`              // 命令名
	Options []CommandOption `json:"options,omitempty"` // 参数列表，保持平台给出的顺序
}

// CommandOption 为命令的单个参数。
type CommandOption struct {
	Name  string      `json:"name,omitempty"`
	Value interface{} `json:"value"` // 参数值，类型由命令定义决定
}

// Member 描述服务器内的成员。
type Member struct {
	User *User `json:"user,omitempty"`
}

// User 描述触发用户。
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// InteractionResponse 表示向平台回复的载荷。
type InteractionResponse struct {
	Type int                      `json:"type"`
	Data *InteractionResponseData `json:"data,omitempty"`
}

// InteractionResponseData 为命令回复中的具体内容。
type InteractionResponseData struct {
	Content string `json:"content"`
	Flags   int    `json:"flags"`
}

// ParseInteraction 将回调 JSON 数据解析为 Interaction。
func ParseInteraction(data []byte) (*Interaction, error) {
	var in Interaction
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// BuildMessageResponse 组装携带文本内容的命令回复。
func BuildMessageResponse(content string, flags int) InteractionResponse {
	return InteractionResponse{
		Type: ResponseChannelMessage,
		Data: &InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	}
}

// BuildPongResponse 组装握手确认回复。
func BuildPongResponse() InteractionResponse {
	return InteractionResponse{Type: ResponsePong}
}
