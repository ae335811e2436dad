package botcore

import (
	"context"
	"strings"
)

// Matcher 定义路由匹配逻辑。
// 返回 true 表示该路由应该处理此消息。
type Matcher func(msg *BotMessage) bool

// Route 定义单条路由规则。
type Route struct {
	Name    string
	Matcher Matcher
	Handler Handler
}

// Chain 实现了一个基于责任链/路由表的 Handler。
// 它按顺序检查路由，一旦匹配成功，就移交给对应的 Handler，并停止后续匹配。
// 如果所有路由都不匹配，且设置了 DefaultHandler，则调用 DefaultHandler。
type Chain struct {
	routes         []Route
	defaultHandler Handler
}

// NewChain 创建一个新的责任链路由器。
func NewChain(defaultHandler Handler) *Chain {
	return &Chain{
		routes:         make([]Route, 0),
		defaultHandler: defaultHandler,
	}
}

// AddRoute 添加一条路由规则。
func (c *Chain) AddRoute(name string, matcher Matcher, handler Handler) {
	c.routes = append(c.routes, Route{
		Name:    name,
		Matcher: matcher,
		Handler: handler,
	})
}

// Handle 实现 Handler 接口。
func (c *Chain) Handle(ctx context.Context, msg *BotMessage) (Reply, error) {
	// 1. 遍历路由表
	for _, route := range c.routes {
		if route.Matcher(msg) {
			// 匹配成功，移交控制权
			return route.Handler.Handle(ctx, msg)
		}
	}

	// 2. 没有任何匹配，使用默认处理器
	if c.defaultHandler != nil {
		return c.defaultHandler.Handle(ctx, msg)
	}

	// 3. 既无匹配也无默认处理器，返回空回复 (静默)
	return Reply{}, nil
}

// MatchPrefix 返回一个匹配文本前缀的 Matcher。
func MatchPrefix(prefix string) Matcher {
	return func(msg *BotMessage) bool {
		return msg != nil && strings.HasPrefix(msg.Content, prefix)
	}
}

// MatchPlatform 返回一个匹配来源平台的 Matcher。
func MatchPlatform(name string) Matcher {
	return func(msg *BotMessage) bool {
		return msg != nil && msg.Platform == name
	}
}

// MatchAny 返回一个总是匹配的 Matcher。
func MatchAny() Matcher {
	return func(msg *BotMessage) bool {
		return true
	}
}
