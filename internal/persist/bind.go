package persist

import (
	"context"
	"fmt"

	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/store/seed"
)

// Source is a store that can be rehydrated and observed. Every collection
// store and the settings store satisfy it.
type Source[S any] interface {
	Restore(S)
	Subscribe(func(S))
}

// Bind rehydrates src from the record, or from fallback when the record is
// missing or unreadable, then persists every later change through w.
// Only an adapter failure is returned; a corrupt document is logged and
// treated as a first run.
func Bind[S any](ctx context.Context, w *Writer, rec Record, src Source[S], fallback S) error {
	data, ok, err := w.adapter.Load(ctx, rec.Key)
	if err != nil {
		return fmt.Errorf("load %s: %w", rec.Key, err)
	}

	source := "seed"
	if ok {
		v, found, err := Decode[S](rec, data)
		switch {
		case err != nil:
			w.log.Warn("persist: unreadable record, using seed", "key", rec.Key, "error", err)
		case !found:
			w.log.Warn("persist: record without payload, using seed", "key", rec.Key)
		default:
			fallback = v
			source = "stored"
		}
	}
	src.Restore(fallback)
	w.metrics.Rehydrate(rec.Key, source)
	w.log.Info("persist: store rehydrated", "key", rec.Key, "source", source)

	src.Subscribe(func(snapshot S) {
		w.metrics.Change(rec.Key)
		data, err := Encode(rec, snapshot)
		if err != nil {
			w.log.Error("persist: snapshot not encoded", "key", rec.Key, "error", err)
			return
		}
		w.Enqueue(rec.Key, data)
	})
	return nil
}

// BindAll binds every store to its record.
func BindAll(ctx context.Context, w *Writer, s *store.Stores, d seed.Data) error {
	if err := Bind[[]models.Client](ctx, w, Clients, s.Clients, d.Clients); err != nil {
		return err
	}
	if err := Bind[[]models.Material](ctx, w, Materials, s.Materials, d.Materials); err != nil {
		return err
	}
	if err := Bind[[]models.Quotation](ctx, w, Quotations, s.Quotations, d.Quotations); err != nil {
		return err
	}
	if err := Bind[[]models.Invoice](ctx, w, Invoices, s.Invoices, d.Invoices); err != nil {
		return err
	}
	return Bind[models.Settings](ctx, w, Settings, s.Settings, d.Settings)
}
