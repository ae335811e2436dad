package botcore

// WebhookResponse 是适配器最终产出的回包：成功/失败标记加上平台要求形状的载荷。
// 只有两种终态，不存在部分/流式变体。
type WebhookResponse struct {
	OK      bool        // 是否成功
	Payload interface{} // 平台要求形状的响应体，成功时有效
	Reason  string      // 失败原因，失败时有效
}

// Success 构造成功回包。
func Success(payload interface{}) WebhookResponse {
	return WebhookResponse{OK: true, Payload: payload}
}

// Failure 构造失败回包。
func Failure(reason string) WebhookResponse {
	return WebhookResponse{OK: false, Reason: reason}
}
