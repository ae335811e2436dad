package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IMBotPlatform/IMBotGateway/pkg/botcore"
)

func testFactory() *cobra.Command {
	root := &cobra.Command{
		Use:           "testbot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(&cobra.Command{
		Use: "ping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("pong")
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:  "echo",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(strings.Join(args, " "))
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use: "ask",
		RunE: func(cmd *cobra.Command, args []string) error {
			execCtx := FromContext(cmd.Context())
			if execCtx == nil || execCtx.LLM() == nil {
				cmd.Println("llm missing")
				return nil
			}
			answer, err := execCtx.LLM().Complete(cmd.Context(), execCtx.ConversationKey(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmd.Println(answer)
			return nil
		},
	})
	return root
}

func testMessage(content string) *botcore.BotMessage {
	return &botcore.BotMessage{
		Platform: "discord",
		UserID:   "u1",
		ChatID:   "c1",
		Content:  content,
	}
}

func TestManagerHandleCommand(t *testing.T) {
	mgr := NewManager(testFactory, NewMemoryStore())
	reply, err := mgr.Handle(context.Background(), testMessage("/ping"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if reply.Kind != botcore.ReplyKindText {
		t.Fatalf("expected text reply")
	}
	if strings.TrimSpace(reply.Text) != "pong" {
		t.Fatalf("expected 'pong', got %q", reply.Text)
	}
}

func TestManagerHandleCommandWithArgs(t *testing.T) {
	mgr := NewManager(testFactory, NewMemoryStore())
	reply, err := mgr.Handle(context.Background(), testMessage("/echo hello world"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if strings.TrimSpace(reply.Text) != "hello world" {
		t.Fatalf("expected 'hello world', got %q", reply.Text)
	}
}

func TestManagerHandleNonCommand(t *testing.T) {
	mgr := NewManager(testFactory, NewMemoryStore())
	reply, err := mgr.Handle(context.Background(), testMessage("just chatting"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Text, "未识别的命令") {
		t.Fatalf("expected unknown-command hint, got %q", reply.Text)
	}

	reply, err = mgr.Handle(context.Background(), testMessage("   "))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Text, "/help") {
		t.Fatalf("expected help hint for empty input, got %q", reply.Text)
	}
}

func TestManagerHandleUnknownSubcommand(t *testing.T) {
	mgr := NewManager(testFactory, NewMemoryStore())
	reply, err := mgr.Handle(context.Background(), testMessage("/nope"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Text, "未识别的命令") {
		t.Fatalf("expected unknown-command hint, got %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "/help") {
		t.Fatalf("expected help hint, got %q", reply.Text)
	}
}

func TestResolveArgsSentinels(t *testing.T) {
	root := testFactory()
	p := NewParser()

	if _, err := resolveArgs(root, p.Parse("")); !errors.Is(err, ErrCommandRequired) {
		t.Fatalf("expected ErrCommandRequired for empty input, got %v", err)
	}
	if _, err := resolveArgs(root, p.Parse("/testbot")); !errors.Is(err, ErrCommandRequired) {
		t.Fatalf("expected ErrCommandRequired for bare root, got %v", err)
	}
	if _, err := resolveArgs(root, p.Parse("free text")); !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound for free text, got %v", err)
	}
	if _, err := resolveArgs(root, p.Parse("/nope")); !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound for unknown subcommand, got %v", err)
	}

	args, err := resolveArgs(root, p.Parse("/echo hi there"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(args) != 3 || args[0] != "echo" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestManagerInjectsLLM(t *testing.T) {
	var gotSession, gotPrompt string
	llm := LLMFunc(func(ctx context.Context, sessionID, prompt string) (string, error) {
		gotSession, gotPrompt = sessionID, prompt
		return "forty-two", nil
	})
	mgr := NewManager(testFactory, NewMemoryStore(), WithLLM(llm))

	reply, err := mgr.Handle(context.Background(), testMessage("/ask meaning of life"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if strings.TrimSpace(reply.Text) != "forty-two" {
		t.Fatalf("expected llm answer, got %q", reply.Text)
	}
	if gotSession != "discord:c1:u1" {
		t.Fatalf("unexpected session id: %s", gotSession)
	}
	if gotPrompt != "meaning of life" {
		t.Fatalf("unexpected prompt: %s", gotPrompt)
	}
}

func TestParserTokens(t *testing.T) {
	p := NewParser()

	result := p.Parse("/price AAPL fast")
	if !result.IsCommand {
		t.Fatalf("expected command")
	}
	if len(result.Tokens) != 3 || result.Tokens[0] != "price" {
		t.Fatalf("unexpected tokens: %v", result.Tokens)
	}
	if result.Raw != "/price AAPL fast" {
		t.Fatalf("unexpected raw: %q", result.Raw)
	}

	// 多余空白不产生空 token。
	result = p.Parse("  /echo   a   b  ")
	if len(result.Tokens) != 3 || result.Tokens[1] != "a" || result.Tokens[2] != "b" {
		t.Fatalf("unexpected tokens: %v", result.Tokens)
	}

	if p.Parse("hello").IsCommand {
		t.Fatalf("plain text must not be a command")
	}
	if p.Parse("/").IsCommand {
		t.Fatalf("bare prefix must not be a command")
	}
	if p.Parse("").IsCommand {
		t.Fatalf("empty input must not be a command")
	}
}

func TestReplyWriterTruncation(t *testing.T) {
	w := NewReplyWriter(40)
	if _, err := w.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if w.Truncated() {
		t.Fatalf("unexpected truncation")
	}
	if _, err := w.Write([]byte(strings.Repeat("x", 30))); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !w.Truncated() {
		t.Fatalf("expected truncation")
	}
	out := w.String()
	if len(out) > 40 {
		t.Fatalf("output exceeds limit: %d", len(out))
	}
	if !strings.HasSuffix(out, "...(truncated)") {
		t.Fatalf("expected truncation marker, got %q", out)
	}

	// Writes after truncation are swallowed.
	before := w.String()
	if _, err := w.Write([]byte("more")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if w.String() != before {
		t.Fatalf("expected writes after truncation to be dropped")
	}
}

func TestReplyWriterTinyLimit(t *testing.T) {
	// 上限小于截断标记长度时退化为纯截断，输出仍不得超限。
	w := NewReplyWriter(10)
	if _, err := w.Write([]byte(strings.Repeat("y", 30))); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !w.Truncated() {
		t.Fatalf("expected truncation")
	}
	if got := w.String(); got != strings.Repeat("y", 10) {
		t.Fatalf("expected output clamped to limit, got %q (len %d)", got, len(got))
	}
}

func TestMemoryStoreMergeAndDelete(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save("k", ContextValues{"a": "1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("k", ContextValues{"b": "2", "a": "3"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	values, err := store.Load("k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if values["a"] != "3" || values["b"] != "2" {
		t.Fatalf("unexpected values: %v", values)
	}

	// The returned map is a copy.
	values["a"] = "mutated"
	reloaded, _ := store.Load("k")
	if reloaded["a"] != "3" {
		t.Fatalf("store must not share returned maps")
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if values, _ := store.Load("k"); values != nil {
		t.Fatalf("expected deleted key to be gone, got %v", values)
	}
}
