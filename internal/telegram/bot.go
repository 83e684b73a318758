package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vibetune-bot/internal/auth"
	"vibetune-bot/internal/history"
	"vibetune-bot/internal/llm"
	"vibetune-bot/internal/report"
	"vibetune-bot/internal/session"
	"vibetune-bot/internal/storage"
)

// submitter is the report-client seam; nil means /report is not configured.
type submitter interface {
	Submit(ctx context.Context, r report.Report) error
}

type Bot struct {
	api          *tgbotapi.BotAPI
	s            sender
	authSvc      *auth.Service
	llmClient    llm.Client
	sessions     *session.Manager
	history      history.Store
	reporter     submitter
	recorder     storage.Recorder
	adminUserID  int64
	botUsername  string
	inferenceURL string
}

func New(
	botToken string,
	authSvc *auth.Service,
	llmClient llm.Client,
	sessions *session.Manager,
	hist history.Store,
	reporter *report.Client,
	recorder storage.Recorder,
	adminUserID int64,
	inferenceURL string,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:          api,
		s:            botAPISender{api: api},
		authSvc:      authSvc,
		llmClient:    llmClient,
		sessions:     sessions,
		history:      hist,
		recorder:     recorder,
		adminUserID:  adminUserID,
		botUsername:  api.Self.UserName,
		inferenceURL: inferenceURL,
	}
	if reporter != nil {
		b.reporter = reporter
	}
	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "🚫 You are not allowed to use this bot.")
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handlePrompt(ctx, msg)
}

// handlePrompt treats a plain message as a chat turn: append it, generate with
// the user's session parameters and the transcript as context, append the
// reply and relay it.
func (b *Bot) handlePrompt(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	text := msg.Text
	if text == "" {
		b.sendMessage(msg.Chat.ID, "📝 Please send a text message")
		return
	}

	if _, err := b.s.Send(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("failed to send typing action: %v", err)
	}

	sess := b.sessions.GetOrCreate(userID)
	log.Printf("Incoming message from %d (@%s) [model=%s]: %q", userID, msg.From.UserName, displayModel(sess.ModelID), text)

	b.history.Append(userID, history.Entry{Role: history.RoleUser, Content: text, Timestamp: time.Now().UTC()})

	resp, err := b.llmClient.Generate(ctx, toLLMMessages(b.history.Snapshot(userID)), llm.Params{
		ModelID:     sess.ModelID,
		Temperature: sess.Temperature,
		MaxTokens:   sess.MaxTokens,
		TopP:        sess.TopP,
	})
	if err != nil {
		// The failed turn stays in history so the user can retry with context intact.
		log.Printf("failed to generate text: %v", err)
		b.sendMessage(msg.Chat.ID, "❌ Sorry, I encountered an error:\n\n"+err.Error()+"\n\nPlease try again later or check the inference endpoint.")
		return
	}
	if resp.Content == "" {
		b.sendMessage(msg.Chat.ID, "⚠️ The model generated an empty response. Please try rephrasing your message.")
		return
	}

	b.history.Append(userID, history.Entry{Role: history.RoleAssistant, Content: resp.Content, Timestamp: time.Now().UTC()})

	if b.recorder != nil {
		if err := b.recorder.AppendInteraction(storage.Event{
			Timestamp:         time.Now().UTC(),
			UserID:            userID,
			ModelID:           sess.ModelID,
			UserMessage:       text,
			AssistantResponse: resp.Content,
		}); err != nil {
			log.Printf("failed to record interaction: %v", err)
		}
	}

	log.Printf("LLM response [model=%s, tokens=%d]: %q", resp.Model, resp.Tokens, resp.Content)
	b.sendMessage(msg.Chat.ID, resp.Content)
}

func toLLMMessages(entries []history.Entry) []llm.Message {
	out := make([]llm.Message, 0, len(entries))
	for _, e := range entries {
		out = append(out, llm.Message{Role: e.Role, Content: e.Content})
	}
	return out
}

func displayModel(modelID string) string {
	if modelID == "" {
		return "base model"
	}
	return modelID
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
