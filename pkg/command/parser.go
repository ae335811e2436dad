package command

import (
	"strings"
)

// ParseResult 承载文本命令解析后的结构化结果。
type ParseResult struct {
	IsCommand bool     // 是否检测到命令前缀
	Tokens    []string // 解析后的命令及参数 token（包含命令本身）
	Raw       string   // 原始输入文本
}

// Parser 解析标准消息文本，判定是否命令并拆分 token。
// 适配器为结构化命令合成的内容固定形如 "/name arg ..."；
// 默认路由转发的自由文本不带前缀，判定为非命令。
type Parser struct {
	Prefix string // 命令前缀，默认 "/"
}

// NewParser 创建带默认前缀的解析器。
func NewParser() Parser {
	return Parser{Prefix: "/"}
}

// Parse 将文本拆解为命令 token。
// 仅当首个字段以前缀开头且前缀后非空时视为命令；参数按空白切分。
func (p Parser) Parse(text string) ParseResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ParseResult{Raw: text}
	}

	prefix := p.Prefix
	if prefix == "" {
		prefix = "/"
	}

	fields := strings.Fields(trimmed)
	first := fields[0]
	if !strings.HasPrefix(first, prefix) || len(first) <= len(prefix) {
		return ParseResult{Raw: text}
	}

	tokens := make([]string, 0, len(fields))
	tokens = append(tokens, strings.TrimPrefix(first, prefix))
	if len(fields) > 1 {
		tokens = append(tokens, fields[1:]...)
	}

	return ParseResult{
		IsCommand: true,
		Tokens:    tokens,
		Raw:       text,
	}
}
