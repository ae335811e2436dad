package botcore

import (
	"context"
	"net/http"
	"testing"
)

type fakePlatform struct {
	name string
}

func (p fakePlatform) Name() string                                   { return p.name }
func (p fakePlatform) VerifyRequest(http.Header, []byte) bool         { return true }
func (p fakePlatform) ParseMessage([]byte) (*BotMessage, error)       { return nil, nil }
func (p fakePlatform) FormatResponse(Reply, *BotMessage) WebhookResponse {
	return Success(nil)
}
func (p fakePlatform) HandleChallenge([]byte) (*WebhookResponse, error) { return nil, nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fakePlatform{name: "discord"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(fakePlatform{name: "telegram"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, ok := r.Get("discord"); !ok {
		t.Fatalf("expected discord registered")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("expected missing platform absent")
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "discord" || names[1] != "telegram" {
		t.Fatalf("unexpected names: %v", names)
	}

	if err := r.Register(fakePlatform{name: "discord"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := r.Register(fakePlatform{name: ""}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
}

func TestReplyRenderText(t *testing.T) {
	if got := ReplyText("hello").RenderText(); got != "hello" {
		t.Fatalf("unexpected text render: %q", got)
	}
	if got := ReplyOpaque(42).RenderText(); got != "42" {
		t.Fatalf("unexpected opaque render: %q", got)
	}
	if got := ReplyOpaque(struct{ A string }{A: "x"}).RenderText(); got != "{x}" {
		t.Fatalf("unexpected struct render: %q", got)
	}
}

func TestEnvelopeConstructors(t *testing.T) {
	ok := Success("payload")
	if !ok.OK || ok.Payload != "payload" || ok.Reason != "" {
		t.Fatalf("unexpected success envelope: %#v", ok)
	}
	bad := Failure("nope")
	if bad.OK || bad.Reason != "nope" {
		t.Fatalf("unexpected failure envelope: %#v", bad)
	}
}

func TestChainRouting(t *testing.T) {
	var hit string
	record := func(name string, reply Reply) Handler {
		return HandlerFunc(func(ctx context.Context, msg *BotMessage) (Reply, error) {
			hit = name
			return reply, nil
		})
	}

	chain := NewChain(record("default", ReplyText("fallback")))
	chain.AddRoute("command", MatchPrefix("/"), record("command", ReplyText("cmd")))
	chain.AddRoute("discord", MatchPlatform("discord"), record("platform", ReplyText("plat")))

	reply, err := chain.Handle(context.Background(), &BotMessage{Content: "/ping"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if hit != "command" || reply.Text != "cmd" {
		t.Fatalf("expected command route, hit=%s", hit)
	}

	reply, err = chain.Handle(context.Background(), &BotMessage{Platform: "discord", Content: "hello"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if hit != "platform" || reply.Text != "plat" {
		t.Fatalf("expected platform route, hit=%s", hit)
	}

	reply, err = chain.Handle(context.Background(), &BotMessage{Platform: "telegram", Content: "hello"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if hit != "default" || reply.Text != "fallback" {
		t.Fatalf("expected default route, hit=%s", hit)
	}
}

func TestMessageHelpers(t *testing.T) {
	msg := &BotMessage{Platform: "discord", ChatID: "c1", UserID: "u1", Mentions: []string{"a", "b"}}

	if key := msg.ConversationKey(); key != "discord:c1:u1" {
		t.Fatalf("unexpected conversation key: %s", key)
	}

	clone := msg.CloneMentions()
	clone[0] = "mutated"
	if msg.Mentions[0] != "a" {
		t.Fatalf("clone must not share backing array")
	}

	var nilMsg *BotMessage
	if nilMsg.ConversationKey() != "" {
		t.Fatalf("nil message key must be empty")
	}
	if nilMsg.CloneMentions() != nil {
		t.Fatalf("nil message mentions must be nil")
	}
}
