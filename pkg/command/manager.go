package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IMBotPlatform/IMBotGateway/pkg/botcore"
)

// 单条回复的最大长度，对齐 Discord 消息内容上限。
const replyContentLimit = 2000

// Manager 实现 botcore.Handler，负责串联解析、构建 Cobra 命令树并执行。
type Manager struct {
	factory CommandFactory
	parser  Parser
	store   ConversationStore
	logger  *log.Logger
	llm     LLMProvider
}

// ManagerOption 自定义 Manager 行为。
type ManagerOption func(*Manager)

// WithLogger 注入自定义日志记录器。
func WithLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithLLM 注入 AI 服务提供者，供命令通过 ExecutionContext 调用。
func WithLLM(provider LLMProvider) ManagerOption {
	return func(m *Manager) {
		m.llm = provider
	}
}

// NewManager 绑定命令工厂与存储，返回实现 botcore.Handler 的管理器。
func NewManager(factory CommandFactory, store ConversationStore, opts ...ManagerOption) *Manager {
	mgr := &Manager{
		factory: factory,
		parser:  NewParser(), // 保留 Parser 用于判断是否为命令（前缀检查）
		store:   store,
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// Handle 满足 botcore.Handler，为每个消息构建独立的命令树并同步执行。
func (m *Manager) Handle(ctx context.Context, msg *botcore.BotMessage) (botcore.Reply, error) {
	if m == nil || m.factory == nil {
		return botcore.ReplyText("Error: Command Manager not initialized"), nil
	}

	// 1. 创建 Cobra 命令树并定位命令
	rootCmd := m.factory()
	args, err := resolveArgs(rootCmd, m.parser.Parse(msg.Content))
	if err != nil {
		switch {
		case errors.Is(err, ErrCommandRequired):
			return botcore.ReplyText("请输入命令 (e.g. /help)"), nil
		case errors.Is(err, ErrCommandNotFound):
			return botcore.ReplyText("未识别的命令: " + strings.TrimSpace(msg.Content) + "\n请尝试 /help"), nil
		}
		return botcore.ReplyText("❌ 执行出错: " + err.Error()), nil
	}

	// 2. 配置 IO 重定向，输出累积为单条回复
	writer := NewReplyWriter(replyContentLimit)
	rootCmd.SetOut(writer)
	rootCmd.SetErr(writer)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// 3. 准备上下文
	execCtx := &ExecutionContext{
		Message: msg,
		Store:   m.store,
		llm:     m.llm,
	}

	convKey := execCtx.ConversationKey()
	if m.store != nil {
		if values, err := m.store.Load(convKey); err != nil {
			m.logf("上下文加载失败: %v", err)
		} else {
			execCtx.Values = values
		}
	}

	cmdCtx := WithExecutionContext(ctx, execCtx)

	// 4. 设置参数并执行
	rootCmd.SetArgs(args)
	m.logf("Executing command: %v for user %s", args, msg.UserID)

	if err := rootCmd.ExecuteContext(cmdCtx); err != nil {
		m.logf("Command execution error: %v", err)
		return botcore.ReplyText("❌ 执行出错: " + err.Error()), nil
	}

	out := writer.String()
	if strings.TrimSpace(out) == "" {
		// 命令无输出时仍需回一条合法消息，平台拒绝空 content。
		out = "✅ 已执行"
	}
	return botcore.ReplyText(out), nil
}

// resolveArgs 校验解析结果并返回待执行的命令参数。
// 空输入返回 ErrCommandRequired；非命令文本或命令树中不存在的命令返回 ErrCommandNotFound。
func resolveArgs(rootCmd *cobra.Command, parsed ParseResult) ([]string, error) {
	if !parsed.IsCommand {
		if strings.TrimSpace(parsed.Raw) == "" {
			return nil, ErrCommandRequired
		}
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, strings.TrimSpace(parsed.Raw))
	}

	args := parsed.Tokens
	// 如果第一个 token 匹配 root command 的 name，移除它以避免 "unknown command X for X" 错误
	if len(args) > 0 && strings.EqualFold(args[0], rootCmd.Name()) {
		args = args[1:]
	}
	if len(args) == 0 {
		return nil, ErrCommandRequired
	}
	if _, _, err := rootCmd.Find(args); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, args[0])
	}
	return args, nil
}

func (m *Manager) logf(format string, args ...interface{}) {
	if m == nil || m.logger == nil {
		return
	}
	m.logger.Printf(format, args...)
}
