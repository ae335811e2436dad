package command

import (
	"strings"
)

// ReplyWriter 实现 io.Writer 接口，将命令输出累积为单条回复文本。
// 这允许 Cobra 命令像操作 stdout 一样直接打印，而结果会被一次性回给用户。
// 平台对单条消息长度有硬上限（Discord 为 2000 字符），超限部分被截断并附标记。
type ReplyWriter struct {
	sb    strings.Builder
	limit int
	over  bool
}

// 截断后附加的标记文本。
const truncatedMarker = "\n...(truncated)"

// NewReplyWriter 创建带长度上限的 ReplyWriter。
// limit <= 0 表示不限制长度。
func NewReplyWriter(limit int) *ReplyWriter {
	return &ReplyWriter{limit: limit}
}

// Write 累积字节切片。始终报告全量写入成功，超限部分静默丢弃。
// 输出总长（含标记）不会超过 limit。
func (w *ReplyWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 || w.over {
		return len(p), nil
	}

	if w.limit > 0 {
		// 为截断标记预留空间；上限连标记都容不下时退化为纯截断。
		budget := w.limit - len(truncatedMarker)
		marker := truncatedMarker
		if budget < 0 {
			budget = w.limit
			marker = ""
		}
		remain := budget - w.sb.Len()
		if remain < len(p) {
			if remain > 0 {
				w.sb.Write(p[:remain])
			}
			w.sb.WriteString(marker)
			w.over = true
			return len(p), nil
		}
	}

	w.sb.Write(p)
	return len(p), nil
}

// String 返回累积的回复文本。
func (w *ReplyWriter) String() string {
	return w.sb.String()
}

// Truncated 返回输出是否发生过截断。
func (w *ReplyWriter) Truncated() bool {
	return w.over
}
