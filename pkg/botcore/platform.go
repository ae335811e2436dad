package botcore

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Platform 定义单个平台适配器必须实现的能力集。
// 四个操作均为无副作用的同步变换，实例内部只持有构造期配置，
// 可被并发调用而无需额外加锁。
type Platform interface {
	// Name 返回平台标识，如 "discord"。
	Name() string

	// VerifyRequest 校验入站请求签名。
	// header 为原始请求头；body 必须是计算签名时使用的原始字节，
	// 不能传重新序列化后的内容。校验失败只返回 false，不抛错。
	VerifyRequest(header http.Header, body []byte) bool

	// ParseMessage 将平台载荷解析为标准消息。
	// 返回 (nil, nil) 表示该事件无需处理（握手探测或未识别类型）；
	// 仅当载荷不是合法 JSON 时返回 error。
	ParseMessage(body []byte) (*BotMessage, error)

	// FormatResponse 将统一回复转换为平台要求的回包。
	// 没有失败路径，载荷无法识别时也会以降级文本成功返回。
	FormatResponse(reply Reply, msg *BotMessage) WebhookResponse

	// HandleChallenge 处理平台的存活性握手探测。
	// 命中时返回确认回包，否则返回 (nil, nil) 交由正常解析流程处理。
	// 调用方必须在将 ParseMessage 的 nil 视为“静默忽略”之前先询问本方法。
	HandleChallenge(body []byte) (*WebhookResponse, error)
}

// Registry 按名称管理已注册的平台适配器。
// 注册阶段完成后即只读，可被并发查询。
type Registry struct {
	mu        sync.RWMutex
	platforms map[string]Platform
}

// NewRegistry 创建空的平台注册表。
func NewRegistry() *Registry {
	return &Registry{platforms: make(map[string]Platform)}
}

// Register 注册平台适配器，名称冲突时返回错误。
func (r *Registry) Register(p Platform) error {
	if p == nil {
		return fmt.Errorf("platform is nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("platform name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.platforms[name]; exists {
		return fmt.Errorf("platform %q already registered", name)
	}
	r.platforms[name] = p
	return nil
}

// Get 按名称返回已注册的平台适配器。
func (r *Registry) Get(name string) (Platform, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.platforms[name]
	return p, ok
}

// Names 返回所有已注册平台的名称，按字典序排列。
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
