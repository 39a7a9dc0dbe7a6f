package persist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-devis/internal/logger"
	"github.com/diewo77/go-devis/internal/metrics"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/storage"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/store/seed"
)

func newWriter(t *testing.T, a storage.Adapter, m *metrics.Metrics) *Writer {
	t.Helper()
	w := NewWriter(a, logger.Discard(), m)
	t.Cleanup(func() { _ = w.Close(context.Background()) })
	return w
}

func flush(t *testing.T, w *Writer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Flush(ctx))
}

func bindFresh(t *testing.T, a storage.Adapter, d seed.Data) (*store.Stores, *Writer) {
	t.Helper()
	w := newWriter(t, a, nil)
	s := store.New()
	require.NoError(t, BindAll(context.Background(), w, s, d))
	return s, w
}

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(Clients, []models.Client{{ID: "c1", Name: "Alpha"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"clients":[{"id":"c1","name":"Alpha","contact":"","email":"","phone":""}]}`, string(data))

	got, ok, err := Decode[[]models.Client](Clients, data)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []models.Client{{ID: "c1", Name: "Alpha"}}, got)

	_, ok, err = Decode[[]models.Client](Clients, []byte(`{"materials":[]}`))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Decode[[]models.Client](Clients, []byte(`not json`))
	assert.Error(t, err)
}

func TestRoundTripAcrossRestart(t *testing.T) {
	a := storage.NewMemoryAdapter()
	s, w := bindFresh(t, a, seed.Empty())

	c := s.Clients.Add(models.Client{Name: "Alpha", Email: "a@example.com"})
	m := s.Materials.Add(models.Material{Name: "Sable", Unit: "tonne", PricePerUnit: 42})
	q := s.Quotations.Add(c.ID, "2025-03-01", []models.QuotationItem{{MaterialID: m.ID, Quantity: 2, PricePerUnit: 42}})
	require.NoError(t, s.Quotations.UpdateStatus(q.ID, models.QuotationStatusValidated))
	inv := s.Invoices.Add(store.InvoiceDraft{QuotationID: q.ID, ClientID: c.ID, Date: "2025-03-02", Total: 84})
	require.NoError(t, s.Settings.SetTheme(models.ThemeDark))
	flush(t, w)

	restarted, _ := bindFresh(t, a, seed.Data{Clients: []models.Client{{ID: "seed"}}})
	assert.Equal(t, s.Clients.List(), restarted.Clients.List())
	assert.Equal(t, s.Materials.List(), restarted.Materials.List())
	assert.Equal(t, s.Quotations.List(), restarted.Quotations.List())
	assert.Equal(t, s.Invoices.List(), restarted.Invoices.List())
	assert.Equal(t, s.Settings.Get(), restarted.Settings.Get())

	got, ok := restarted.Invoices.GetByID(inv.ID)
	require.True(t, ok)
	assert.Equal(t, models.InvoiceStatusIssued, got.Status)
}

func TestMissingRecordUsesSeed(t *testing.T) {
	d, err := seed.Load()
	require.NoError(t, err)

	s, _ := bindFresh(t, storage.NewMemoryAdapter(), d)
	assert.Equal(t, d.Clients, s.Clients.List())
	assert.Equal(t, d.Materials, s.Materials.List())
	assert.Equal(t, d.Quotations, s.Quotations.List())
	assert.Empty(t, s.Invoices.List())
	assert.Equal(t, models.DefaultSettings(), s.Settings.Get())
}

func TestCorruptRecordUsesSeed(t *testing.T) {
	a := storage.NewMemoryAdapter()
	a.Put(Clients.Key, []byte(`{"clients": "oops"`))
	a.Put(Materials.Key, []byte(`{"state": {}}`))

	d := seed.Data{
		Clients:   []models.Client{{ID: "CLI-1", Name: "Seeded"}},
		Materials: []models.Material{{ID: "MAT-1", Name: "Seeded"}},
	}
	s, _ := bindFresh(t, a, d)
	assert.Equal(t, d.Clients, s.Clients.List())
	assert.Equal(t, d.Materials, s.Materials.List())
}

func TestRestoredQuotationTotalsFollowItems(t *testing.T) {
	a := storage.NewMemoryAdapter()
	a.Put(Quotations.Key, []byte(`{"quotations": [{"id": "DEV-9", "client_id": "CLI-1", "date": "2025-01-05",
		"items": [{"material_id": "MAT-1", "quantity": 4, "price_per_unit": 12.5}], "total": 1, "status": "validé"}]}`))

	s, _ := bindFresh(t, a, seed.Empty())
	q, ok := s.Quotations.GetByID("DEV-9")
	require.True(t, ok)
	assert.Equal(t, 50.0, q.Total)
	assert.Equal(t, models.QuotationStatusValidated, q.Status)
}

func TestStoredEmptyCollectionWinsOverSeed(t *testing.T) {
	a := storage.NewMemoryAdapter()
	a.Put(Clients.Key, []byte(`{"clients": []}`))

	s, _ := bindFresh(t, a, seed.Data{Clients: []models.Client{{ID: "CLI-1"}}})
	assert.Empty(t, s.Clients.List())
}

func TestRehydrationDoesNotWrite(t *testing.T) {
	a := &countingAdapter{Adapter: storage.NewMemoryAdapter()}
	d, err := seed.Load()
	require.NoError(t, err)

	_, w := bindFresh(t, a, d)
	flush(t, w)
	assert.Zero(t, a.count())
}

func TestLoadFailureIsReturned(t *testing.T) {
	w := newWriter(t, failingAdapter{}, nil)
	err := BindAll(context.Background(), w, store.New(), seed.Empty())
	assert.Error(t, err)
}

func TestWriteFailureIsCountedNotReturned(t *testing.T) {
	m := metrics.New()
	a := &flakyAdapter{MemoryAdapter: storage.NewMemoryAdapter()}
	w := newWriter(t, a, m)
	s := store.New()
	require.NoError(t, BindAll(context.Background(), w, s, seed.Empty()))

	c := s.Clients.Add(models.Client{Name: "Alpha"})
	flush(t, w)

	_, ok := s.Clients.GetByID(c.ID)
	assert.True(t, ok, "the in-memory mutation survives a failed write")

	expected := `
# HELP devis_persist_writes_total Snapshot writes to the storage adapter, by record and result.
# TYPE devis_persist_writes_total counter
devis_persist_writes_total{record="client-storage",result="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "devis_persist_writes_total"))
}

func TestWriterCoalescesPendingWrites(t *testing.T) {
	a := newGateAdapter()
	w := newWriter(t, a, nil)

	w.Enqueue("k", []byte("1"))
	<-a.started // "1" is being written
	w.Enqueue("k", []byte("2"))
	w.Enqueue("k", []byte("3"))
	close(a.release)
	flush(t, w)

	assert.Equal(t, []string{"1", "3"}, a.written())
}

func TestWriterPreservesLatestSnapshotPerKey(t *testing.T) {
	a := storage.NewMemoryAdapter()
	w := newWriter(t, a, nil)
	s := store.New()
	require.NoError(t, BindAll(context.Background(), w, s, seed.Empty()))

	for i := 0; i < 50; i++ {
		s.Materials.Add(models.Material{Name: "m", PricePerUnit: float64(i)})
	}
	flush(t, w)

	data, ok, err := a.Load(context.Background(), Materials.Key)
	require.NoError(t, err)
	require.True(t, ok)
	got, _, err := Decode[[]models.Material](Materials, data)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestCloseWritesPendingAndStops(t *testing.T) {
	a := storage.NewMemoryAdapter()
	w := NewWriter(a, logger.Discard(), nil)
	w.Enqueue("k", []byte("v"))
	require.NoError(t, w.Close(context.Background()))

	_, ok, err := a.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, w.Flush(context.Background()), ErrClosed)
	w.Enqueue("k2", []byte("v"))
	_, ok, _ = a.Load(context.Background(), "k2")
	assert.False(t, ok, "writes after close are dropped")
	assert.NoError(t, w.Close(context.Background()))
}

type countingAdapter struct {
	storage.Adapter
	mu    sync.Mutex
	saves int
}

func (c *countingAdapter) Save(ctx context.Context, key string, data []byte) error {
	c.mu.Lock()
	c.saves++
	c.mu.Unlock()
	return c.Adapter.Save(ctx, key, data)
}

func (c *countingAdapter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

type failingAdapter struct{}

func (failingAdapter) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingAdapter) Save(context.Context, string, []byte) error {
	return errors.New("connection refused")
}
func (failingAdapter) Close() error { return nil }

type flakyAdapter struct {
	*storage.MemoryAdapter
}

func (flakyAdapter) Save(context.Context, string, []byte) error { return errors.New("disk full") }

// gateAdapter blocks the first Save until release is closed.
type gateAdapter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	mu      sync.Mutex
	values  []string
}

func newGateAdapter() *gateAdapter {
	return &gateAdapter{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateAdapter) Load(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (g *gateAdapter) Save(_ context.Context, _ string, data []byte) error {
	g.once.Do(func() { close(g.started) })
	<-g.release
	g.mu.Lock()
	g.values = append(g.values, string(data))
	g.mu.Unlock()
	return nil
}

func (g *gateAdapter) Close() error { return nil }

func (g *gateAdapter) written() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.values...)
}
