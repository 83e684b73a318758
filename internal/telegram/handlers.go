package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vibetune-bot/internal/analytics"
	"vibetune-bot/internal/report"
	"vibetune-bot/internal/session"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "model":
		b.handleModel(msg)
	case "base":
		b.handleBase(msg)
	case "status":
		b.handleStatus(msg)
	case "settings":
		b.handleSettings(msg)
	case "report":
		b.handleReport(ctx, msg)
	case "clear":
		b.handleClear(msg)
	default:
		b.sendMessage(msg.Chat.ID, "❓ Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	sess := b.sessions.GetOrCreate(msg.From.ID)
	welcome := fmt.Sprintf(`🤖 Welcome to VibeTune Bot!

I'm powered by finetuned models. Just send me a message and I'll respond using your trained model!

Current model: %s

Commands:
/help - Show all commands
/model <modelId> - Switch to a specific trained model
  Example: /model training-12345
/base - Use the base model (no finetuning)
/status - Show current settings
/settings - Configure generation parameters
/report <text> - Submit this conversation as a report
/clear - Clear conversation history

💡 Tip: You can use any trained model ID from your training jobs.`, displayModel(sess.ModelID))
	b.sendMessage(msg.Chat.ID, welcome)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	help := `📚 Available Commands:

/model <modelId> - Switch to a trained model
  Example: /model training-12345
  Example: /model qwen-finetuned-67890

/base - Switch back to the base model

/status - Show current model and settings

/settings - Configure temperature, max tokens, etc.

/report <text> - Submit the conversation with a problem description

/clear - Clear conversation history

/help - Show this help message

💬 Just send a regular message to chat with your model!`
	b.sendMessage(msg.Chat.ID, help)
}

func (b *Bot) handleModel(msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		b.sendMessage(msg.Chat.ID, "❌ Please provide a model ID\n\nExample: /model training-12345\nExample: /model qwen-finetuned-67890")
		return
	}
	if err := b.sessions.SetModel(msg.From.ID, args); err != nil {
		if errors.Is(err, session.ErrInvalidModelID) {
			b.sendMessage(msg.Chat.ID, "❌ Invalid model ID format. Model IDs can only contain letters, numbers, dashes, and underscores.")
			return
		}
		log.Printf("failed to set model for %d: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, "❌ Failed to switch model, please try again.")
		return
	}

	b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Switched to model: %s\n\nNow send me a message to test it!", args))
}

func (b *Bot) handleBase(msg *tgbotapi.Message) {
	b.sessions.ClearModel(msg.From.ID)
	b.sendMessage(msg.Chat.ID, "✅ Switched to base model\n\nNow send me a message to test it!")
}

func (b *Bot) handleStatus(msg *tgbotapi.Message) {
	sess := b.sessions.Describe(msg.From.ID)
	status := fmt.Sprintf(`📊 Current Settings:

🤖 Model: %s
🌡 Temperature: %v
📝 Max Tokens: %d
🎯 Top P: %v

🔗 Inference endpoint: %s

💡 Use /model <modelId> to switch models
💡 Use /settings to change parameters`,
		displayModel(sess.ModelID), sess.Temperature, sess.MaxTokens, sess.TopP, b.inferenceURL)
	b.sendMessage(msg.Chat.ID, status)
}

func (b *Bot) handleSettings(msg *tgbotapi.Message) {
	sess := b.sessions.Describe(msg.From.ID)
	settings := fmt.Sprintf(`⚙️ Settings Configuration:

To change settings, use environment variables when starting the bot:

• DEFAULT_TEMPERATURE - Creativity (0.0-2.0, default: 0.7)
• DEFAULT_MAX_TOKENS - Response length (1-4096, default: 250)
• DEFAULT_TOP_P - Sampling parameter (0.0-1.0, default: 0.9)
• DEFAULT_MODEL_ID - Default model to use

Current values:
• Temperature: %v
• Max Tokens: %d
• Top P: %v
• Model: %s`,
		sess.Temperature, sess.MaxTokens, sess.TopP, displayModel(sess.ModelID))
	b.sendMessage(msg.Chat.ID, settings)
}

// handleReport submits the conversation snapshot to the web app. History is
// cleared only after the web app accepted the report; on failure it is kept
// so the user can retry.
func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) {
	if b.reporter == nil {
		b.sendMessage(msg.Chat.ID, "⚠️ Report collection is not configured for this bot.")
		return
	}

	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		b.sendMessage(msg.Chat.ID, "❌ Please describe the issue\n\nExample: /report the model ignores my instructions")
		return
	}

	userID := msg.From.ID
	r := report.Report{
		TelegramUserID: userID,
		Username:       msg.From.UserName,
		BotUsername:    b.botUsername,
		ReportText:     text,
		History:        report.FromSnapshot(b.history.Snapshot(userID)),
	}

	if err := b.reporter.Submit(ctx, r); err != nil {
		log.Printf("failed to submit report for %d: %v", userID, err)
		b.sendMessage(msg.Chat.ID, "❌ Failed to submit the report:\n\n"+err.Error()+"\n\nYour conversation history is kept, please try again.")
		return
	}

	b.history.Clear(userID)
	log.Printf("Report submitted for %d (@%s), %d turns", userID, msg.From.UserName, len(r.History))
	b.sendMessage(msg.Chat.ID, "✅ Report submitted. Conversation history has been cleared.")
}

func (b *Bot) handleClear(msg *tgbotapi.Message) {
	b.history.Clear(msg.From.ID)
	b.sendMessage(msg.Chat.ID, "🧹 Conversation history cleared.")
}

// SendDailySummary delivers yesterday-to-date usage stats to the admin chat.
// Wired into the cron scheduler from main.
func (b *Bot) SendDailySummary(ctx context.Context) error {
	if b.recorder == nil || b.adminUserID == 0 {
		return nil
	}
	events, err := b.recorder.LoadInteractions()
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}
	stats := analytics.AnalyzeDailyLogs(events, time.Now().UTC())
	b.sendMessage(b.adminUserID, stats.Summary())
	return nil
}
