// Package telegram adapts the bot API to the pipeline: inbound updates are
// converted to incoming files, outbound calls implement the Messenger port.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
)

const (
	welcomeText = "👋 Bienvenue sur l'Analyseur IA Telegram !\n\n" +
		"Envoyez-moi une image ou un document PDF, et je les analyserai pour vous.\n" +
		"Je peux extraire le texte, le formater proprement et même résoudre vos exercices !"
	helpText = "Commandes supportées :\n" +
		"/start — démarre le bot et affiche le message de bienvenue\n" +
		"/help — affiche ce message d'aide\n\n" +
		"Envoyez une image (jpg, png, webp) ou un PDF pour lancer une analyse."
)

// Handler runs the analysis pipeline for one incoming file.
type Handler interface {
	Handle(ctx context.Context, file domain.IncomingFile) error
}

type Bot struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// New authenticates against the bot API. The limiter keeps outbound calls
// under Telegram's ~30 messages/second bot quota.
func New(token string, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authenticate bot: %w", err)
	}
	return &Bot{
		api:        api,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(25), 5),
		log:        log.With("component", "telegram"),
	}, nil
}

// Run long-polls for updates until ctx is cancelled. Each file message gets
// its own pipeline goroutine; pipelines share no mutable state.
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	b.log.Info("listening for updates", "bot", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, handler, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, handler Handler, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	file, ok := incomingFile(msg)
	if !ok {
		return
	}

	go func() {
		if err := handler.Handle(ctx, file); err != nil {
			b.log.Error("analysis pipeline failed",
				"chat_id", file.ChatID, "kind", string(file.Kind), "error", err)
		}
	}()
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	var reply string
	switch msg.Command() {
	case "start":
		reply = welcomeText
	case "help":
		reply = helpText
	default:
		return
	}
	if _, err := b.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
		b.log.Warn("failed to answer command", "command", msg.Command(), "error", err)
	}
}

// incomingFile maps a message to a pipeline request. Photos use the
// highest-resolution variant and default to a jpg extension; documents carry
// their declared filename extension.
func incomingFile(msg *tgbotapi.Message) (domain.IncomingFile, bool) {
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		return domain.IncomingFile{
			FileID:    photo.FileID,
			Extension: "jpg",
			Size:      int64(photo.FileSize),
			Kind:      domain.KindPhoto,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
		}, true
	}
	if msg.Document != nil {
		return domain.IncomingFile{
			FileID:    msg.Document.FileID,
			Extension: extensionOf(msg.Document.FileName),
			Size:      int64(msg.Document.FileSize),
			Kind:      domain.KindDocument,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
		}, true
	}
	return domain.IncomingFile{}, false
}

func extensionOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i+1:]
		}
	}
	return ""
}

func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

func (b *Bot) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (b *Bot) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (b *Bot) SendDocument(ctx context.Context, chatID int64, path, caption string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// Download streams the platform file content into dst.
func (b *Bot) Download(ctx context.Context, fileID string, dst io.Writer) error {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file: status %s", resp.Status)
	}
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("read file content: %w", err)
	}
	return nil
}
