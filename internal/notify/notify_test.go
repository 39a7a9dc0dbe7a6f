package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-devis/internal/logger"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestInvoiceGenerated(t *testing.T) {
	bot := &fakeBot{}
	settings := store.NewSettingsStore()
	n := New(bot, 42, settings, logger.Discard())

	n.InvoiceGenerated(context.Background(), models.Invoice{ID: "FACT-1", Total: 1686}, "Rénov'Habitat")
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Equal(t, "Facture FACT-1 émise pour Rénov'Habitat : 1686.00 €", bot.sent[0].Text)

	settings.SetLanguage("en")
	n.InvoiceStatusChanged(context.Background(), models.Invoice{ID: "FACT-1", Status: models.InvoiceStatusPaid})
	require.Len(t, bot.sent, 2)
	assert.Equal(t, "Invoice FACT-1: Paid", bot.sent[1].Text)
}

func TestNotificationsCanBeTurnedOff(t *testing.T) {
	bot := &fakeBot{}
	settings := store.NewSettingsStore()
	settings.SetReceiveNotifications(false)

	New(bot, 42, settings, logger.Discard()).InvoiceGenerated(context.Background(), models.Invoice{ID: "FACT-1"}, "Acme")
	assert.Empty(t, bot.sent)
}

func TestSendFailureIsSwallowed(t *testing.T) {
	bot := &fakeBot{err: errors.New("bad gateway")}
	n := New(bot, 42, store.NewSettingsStore(), logger.Discard())
	assert.NotPanics(t, func() {
		n.InvoiceGenerated(context.Background(), models.Invoice{ID: "FACT-1"}, "Acme")
	})
}

func TestNilNotifier(t *testing.T) {
	var n *Telegram
	assert.NotPanics(t, func() {
		n.InvoiceGenerated(context.Background(), models.Invoice{}, "")
		n.InvoiceStatusChanged(context.Background(), models.Invoice{})
	})
}
