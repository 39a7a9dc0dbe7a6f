// Package notify sends invoice events to a Telegram chat when the user has
// notifications turned on.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/diewo77/go-devis/internal/i18n"
	"github.com/diewo77/go-devis/internal/models"
)

// Sender is the part of the bot API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Preferences exposes the current settings.
type Preferences interface {
	Get() models.Settings
}

// Telegram posts messages to one chat. A nil *Telegram sends nothing.
type Telegram struct {
	api    Sender
	chatID int64
	prefs  Preferences
	log    *slog.Logger
}

func New(api Sender, chatID int64, prefs Preferences, log *slog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, prefs: prefs, log: log}
}

// Dial authenticates token against the Telegram API.
func Dial(token string, chatID int64, prefs Preferences, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Info("telegram notifier ready", "bot", api.Self.UserName)
	return New(api, chatID, prefs, log), nil
}

// InvoiceGenerated announces a new invoice for client.
func (t *Telegram) InvoiceGenerated(ctx context.Context, inv models.Invoice, client string) {
	if t == nil {
		return
	}
	lang := t.prefs.Get().Language
	total := decimal.NewFromFloat(inv.Total).StringFixed(2)
	t.send(ctx, fmt.Sprintf(i18n.T(lang, "notify_invoice_generated"), inv.ID, client, total))
}

// InvoiceStatusChanged announces the new status of an invoice.
func (t *Telegram) InvoiceStatusChanged(ctx context.Context, inv models.Invoice) {
	if t == nil {
		return
	}
	lang := t.prefs.Get().Language
	t.send(ctx, fmt.Sprintf(i18n.T(lang, "notify_invoice_status"), inv.ID, i18n.T(lang, string(inv.Status))))
}

func (t *Telegram) send(ctx context.Context, text string) {
	if !t.prefs.Get().ReceiveNotifications {
		return
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.log.ErrorContext(ctx, "telegram send failed", "err", err)
	}
}
