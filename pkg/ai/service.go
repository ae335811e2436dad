package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Service 是 AI 逻辑的主要入口点。
// 它负责管理模型实例、会话历史以及与 LLM 的交互。
type Service struct {
	config *Config
	store  SessionStore

	mu         sync.Mutex // 保护 modelCache 并发初始化
	modelCache map[string]llms.Model
}

// NewService 创建一个新的 AI 服务实例。
func NewService(config *Config, store SessionStore) *Service {
	return &Service{
		config:     config,
		store:      store,
		modelCache: make(map[string]llms.Model),
	}
}

// resolveAPIKey 解析 API 密钥。
// 如果密钥以 "env:" 开头，则从环境变量中获取实际值。
func resolveAPIKey(key string) string {
	if strings.HasPrefix(key, "env:") {
		return os.Getenv(strings.TrimPrefix(key, "env:"))
	}
	return key
}

// getModel 获取模型实例。
// 如果缓存中存在则直接返回，否则初始化一个新的模型实例并缓存。
func (s *Service) getModel(ctx context.Context, modelName string) (llms.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if model, ok := s.modelCache[modelName]; ok {
		return model, nil
	}

	var cfg *ModelConfig
	for i := range s.config.Models {
		if s.config.Models[i].Name == modelName {
			cfg = &s.config.Models[i]
			break
		}
	}
	if cfg == nil {
		return nil, fmt.Errorf("model '%s' not found in configuration", modelName)
	}

	var llm llms.Model
	var err error

	apiKey := resolveAPIKey(cfg.APIKey)

	switch cfg.Provider {
	case "openai":
		llm, err = openai.New(
			openai.WithToken(apiKey),
			openai.WithModel(cfg.ModelName),
			openai.WithBaseURL(cfg.BaseURL),
		)
	case "google":
		llm, err = googleai.New(ctx,
			googleai.WithAPIKey(apiKey),
			googleai.WithDefaultModel(cfg.ModelName),
		)
	case "anthropic":
		opts := []anthropic.Option{
			anthropic.WithToken(apiKey),
			anthropic.WithModel(cfg.ModelName),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		llm, err = anthropic.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create model provider: %w", err)
	}

	s.modelCache[modelName] = llm
	return llm, nil
}

// CompleteOptions 定义调用 Complete 时的配置。
type CompleteOptions struct {
	Model string
}

// CompleteOption 是配置 CompleteOptions 的函数。
type CompleteOption func(*CompleteOptions)

// WithModel 指定使用的模型。
func WithModel(model string) CompleteOption {
	return func(o *CompleteOptions) {
		o.Model = model
	}
}

// Complete 处理用户的消息，携带会话历史与 LLM 交互，同步返回完整回复。
//
// 流程：读取历史 -> 追加用户输入 -> GenerateContent -> 写回历史。
// 回调式平台（如 Discord Interactions）要求在时限内给出单条完整回复，
// 因此这里不做流式输出。
func (s *Service) Complete(ctx context.Context, sessionID, prompt string, opts ...CompleteOption) (string, error) {
	options := &CompleteOptions{
		Model: s.config.DefaultModel,
	}
	for _, o := range opts {
		o(options)
	}
	if options.Model == "" {
		return "", fmt.Errorf("no model specified and no default model configured")
	}

	llm, err := s.getModel(ctx, options.Model)
	if err != nil {
		return "", err
	}

	// 读取历史并拼接本轮输入。
	var messages []llms.MessageContent
	if s.store != nil {
		history, err := s.store.GetHistory(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("failed to get history: %w", err)
		}
		for _, msg := range history {
			messages = append(messages, llms.TextParts(msg.GetType(), msg.GetContent()))
		}
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("llm generate error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from llm")
	}
	answer := resp.Choices[0].Content

	// 历史写入失败不影响本轮回复，只影响后续上下文。
	if s.store != nil {
		_ = s.store.AddUserMessage(ctx, sessionID, prompt)
		_ = s.store.AddAIMessage(ctx, sessionID, answer)
	}

	return answer, nil
}

// Reset 清空指定会话的历史记录。
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if s.store == nil {
		return nil
	}
	return s.store.ClearHistory(ctx, sessionID)
}
