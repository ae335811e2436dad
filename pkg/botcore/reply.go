package botcore

import "fmt"

// ReplyKind 标记 Reply 携带的载荷类别。
type ReplyKind int

const (
	// ReplyKindText 纯文本回复。
	ReplyKindText ReplyKind = iota
	// ReplyKindOpaque 任意对象回复，渲染时退化为字符串形式。
	ReplyKindOpaque
)

// Reply 是业务层产出的统一响应。
// 使用显式的 Kind 判别，避免在格式化阶段对载荷做运行时属性探测。
type Reply struct {
	Kind   ReplyKind
	Text   string
	Opaque interface{}
}

// ReplyText 构造纯文本回复。
func ReplyText(text string) Reply {
	return Reply{Kind: ReplyKindText, Text: text}
}

// ReplyOpaque 构造对象回复，适配直接返回结构体的调用方。
func ReplyOpaque(v interface{}) Reply {
	return Reply{Kind: ReplyKindOpaque, Opaque: v}
}

// RenderText 返回回复的文本形式。
// Opaque 载荷退化为 fmt 的默认字符串表示，保证格式化阶段总能成功。
func (r Reply) RenderText() string {
	switch r.Kind {
	case ReplyKindText:
		return r.Text
	case ReplyKindOpaque:
		return fmt.Sprintf("%v", r.Opaque)
	default:
		return ""
	}
}
