package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"net/http"
)

// errBadKeySize 表示公钥 hex 合法但长度不符合 Ed25519 要求。
var errBadKeySize = errors.New("public key must be 32 bytes")

const (
	// HeaderSignature 携带 Ed25519 签名（hex 编码）的请求头。
	HeaderSignature = "X-Signature-Ed25519"
	// HeaderTimestamp 携带签名时间戳的请求头。
	HeaderTimestamp = "X-Signature-Timestamp"

	// 日志中签名/时间戳仅保留的前缀长度，避免完整值落入长期日志。
	sigLogSnippet = 8
)

// verifierState 显式区分验证器的三种配置形态。
type verifierState int

const (
	// verifierDisabled 未配置公钥，校验无条件通过。
	verifierDisabled verifierState = iota
	// verifierActive 公钥有效，执行 Ed25519 校验。
	verifierActive
	// verifierMisconfigured 配置了公钥但无法解析，行为退化为放行。
	verifierMisconfigured
)

// Verifier 校验 Discord Interactions 请求签名。
// 构造完成后内部状态不再变化，可并发使用。
type Verifier struct {
	state verifierState
	key   ed25519.PublicKey
}

// NewVerifier 根据 hex 编码的公钥构造 Verifier。
// publicKey 为空表示显式关闭校验（Disabled 形态）。
// 公钥非法时默认退化为放行并由调用方记录告警（Misconfigured 形态）；
// strict 为 true 时非法公钥直接返回错误，供要求强校验的部署使用。
func NewVerifier(publicKey string, strict bool) (*Verifier, error) {
	if publicKey == "" {
		return &Verifier{state: verifierDisabled}, nil
	}

	raw, err := hex.DecodeString(publicKey)
	if err == nil && len(raw) != ed25519.PublicKeySize {
		err = errBadKeySize
	}
	if err != nil {
		if strict {
			return nil, err
		}
		return &Verifier{state: verifierMisconfigured}, nil
	}

	return &Verifier{state: verifierActive, key: ed25519.PublicKey(raw)}, nil
}

// Enabled 返回校验是否真正生效。
// Disabled 与 Misconfigured 形态下均为 false，依赖强校验的调用方应在启动时检查。
func (v *Verifier) Enabled() bool {
	return v != nil && v.state == verifierActive
}

// Misconfigured 返回公钥是否配置了但无法解析。
func (v *Verifier) Misconfigured() bool {
	return v != nil && v.state == verifierMisconfigured
}

// Verify 校验签名。
// 签名消息为 时间戳原始字节 || 请求体原始字节；body 必须是未经重新序列化的原始内容。
// 任何缺头、hex 解码失败或签名不匹配都只返回 false，不会向外抛错。
func (v *Verifier) Verify(header http.Header, body []byte) bool {
	if v == nil || v.state != verifierActive {
		// 未启用校验时无条件放行。
		return true
	}

	signature := header.Get(HeaderSignature)
	timestamp := header.Get(HeaderTimestamp)
	if signature == "" || timestamp == "" {
		return false
	}

	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)

	return ed25519.Verify(v.key, message, sig)
}

// truncateForLog 限制日志中输出的敏感值长度。
func truncateForLog(src string, limit int) string {
	if limit <= 0 || len(src) <= limit {
		return src
	}
	return src[:limit] + "..."
}
