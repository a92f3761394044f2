package reportsvc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/nadiag01/apre/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "debug", Format: "text", Output: "none"})
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

func newTestDispatcher(t *testing.T, store DocumentStore) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(DispatcherConfig{
		Store:        store,
		Collections:  testCols,
		Timeout:      time.Second,
		Selectors:    testSelectors,
		SortDistinct: true,
	})
	require.NoError(t, err)
	return d
}

func seedSales(store *memStore) {
	store.insert("sales",
		bson.M{"region": "north", "salesperson": "Carol", "category": "electronics", "channel": "online", "amount": 40},
		bson.M{"region": "north", "salesperson": "Alice", "category": "accessories", "channel": "retail", "amount": 20},
		bson.M{"region": "north", "salesperson": "Bob", "category": "accessories", "channel": "online", "amount": 15},
		bson.M{"region": "north", "salesperson": "Alice", "category": "electronics", "channel": "online", "amount": 7.5},
		bson.M{"region": "south", "salesperson": "Dave", "category": "electronics", "channel": "retail", "amount": 5},
		bson.M{"region": "east", "salesperson": "Erin", "category": "furniture", "channel": "online", "amount": 3},
	)
}

func TestDispatcher_SalesByRegionScenario(t *testing.T) {
	store := newMemStore()
	store.insert("sales",
		bson.M{"region": "north", "salesperson": "Alice", "amount": 20},
		bson.M{"region": "north", "salesperson": "Bob", "amount": 15},
	)
	d := newTestDispatcher(t, store)

	rows, err := d.Handle(context.Background(), ReportRequest{Kind: SalesByRegion, Params: map[string]string{"region": "north"}})
	require.NoError(t, err)
	assert.Equal(t, []ReportRow{
		{"salesperson": "Alice", "totalSales": 20.0},
		{"salesperson": "Bob", "totalSales": 15.0},
	}, rows)
}

func TestDispatcher_SalesByCategoryScenario(t *testing.T) {
	store := newMemStore()
	store.insert("sales",
		bson.M{"category": "accessories", "amount": 10},
		bson.M{"category": "accessories", "amount": 25},
		bson.M{"category": "electronics", "amount": 5},
	)
	d := newTestDispatcher(t, store)

	rows, err := d.Handle(context.Background(), ReportRequest{Kind: SalesByCategory, Params: map[string]string{"category": "accessories"}})
	require.NoError(t, err)
	assert.Equal(t, []ReportRow{{"category": "accessories", "totalSales": 35.0}}, rows)
}

func TestDispatcher_SalesByRegionProperties(t *testing.T) {
	store := newMemStore()
	seedSales(store)
	d := newTestDispatcher(t, store)

	for _, region := range []string{"north", "south", "east"} {
		rows, err := d.Handle(context.Background(), ReportRequest{Kind: SalesByRegion, Params: map[string]string{"region": region}})
		require.NoError(t, err)

		wantPeople := map[string]bool{}
		wantSum := 0.0
		for _, doc := range store.snapshot("sales") {
			if doc["region"] == region {
				wantPeople[doc["salesperson"].(string)] = true
				wantSum += number(doc["amount"])
			}
		}

		gotPeople := map[string]bool{}
		gotSum := 0.0
		for i, r := range rows {
			name := r["salesperson"].(string)
			gotPeople[name] = true
			gotSum += r["totalSales"].(float64)
			if i > 0 {
				assert.Less(t, rows[i-1]["salesperson"].(string), name, "rows sorted by salesperson")
			}
		}
		assert.Equal(t, wantPeople, gotPeople, region)
		assert.InDelta(t, wantSum, gotSum, 1e-9, region)
	}
}

func TestDispatcher_SalesByCategoryTotals(t *testing.T) {
	store := newMemStore()
	seedSales(store)
	d := newTestDispatcher(t, store)

	want := map[string]float64{"accessories": 35, "electronics": 52.5, "furniture": 3}
	for category, total := range want {
		rows, err := d.Handle(context.Background(), ReportRequest{Kind: SalesByCategory, Params: map[string]string{"category": category}})
		require.NoError(t, err)
		assert.Equal(t, []ReportRow{{"category": category, "totalSales": total}}, rows)
	}
}

func TestDispatcher_Idempotent(t *testing.T) {
	store := newMemStore()
	seedSales(store)
	d := newTestDispatcher(t, store)
	req := ReportRequest{Kind: SalesData, Params: map[string]string{"selector": "online"}}

	first, err := d.Handle(context.Background(), req)
	require.NoError(t, err)
	second, err := d.Handle(context.Background(), req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Len(t, first, 4)
	assert.Equal(t, first[0]["salesperson"], first[0]["Sales Person"])
}

func TestDispatcher_EmptyRegion(t *testing.T) {
	store := newMemStore()
	seedSales(store)
	d := newTestDispatcher(t, store)

	rows, err := d.Handle(context.Background(), ReportRequest{Kind: SalesByRegion, Params: map[string]string{"region": "west"}})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDispatcher_CallDurationBoundaries(t *testing.T) {
	store := newMemStore()
	day := func(d, h int) time.Time { return time.Date(2024, 8, d, h, 0, 0, 0, time.UTC) }
	store.insert("agentPerformance",
		bson.M{"agentId": 1, "date": day(6, 23), "callDuration": 30},
		bson.M{"agentId": 2, "date": day(7, 0), "callDuration": 60},
		bson.M{"agentId": 3, "date": day(7, 23), "callDuration": 90},
		bson.M{"agentId": 4, "date": day(8, 0), "callDuration": 120},
	)
	d := newTestDispatcher(t, store)

	rows, err := d.Handle(context.Background(), ReportRequest{Kind: CallDurationByDateRange, Params: map[string]string{"startDate": "2024-08-07", "endDate": "2024-08-07"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ReportRow{"agentId": 2, "date": "2024-08-07T00:00:00Z", "callDuration": 60.0}, rows[0])
	assert.Equal(t, 3, rows[1]["agentId"])

	calls := store.callCount()
	_, err = d.Handle(context.Background(), ReportRequest{Kind: CallDurationByDateRange, Params: map[string]string{"startDate": "2024-08-08", "endDate": "2024-08-07"}})
	assert.ErrorIs(t, err, common.ErrInvalidDateRange)
	assert.Equal(t, calls, store.callCount(), "invalid range must not touch the store")
}

func TestDispatcher_DistinctSorted(t *testing.T) {
	store := newMemStore()
	seedSales(store)
	d := newTestDispatcher(t, store)

	rows, err := d.Handle(context.Background(), ReportRequest{Kind: DistinctRegions})
	require.NoError(t, err)
	assert.Equal(t, []string{"east", "north", "south"}, DistinctValues(DistinctRegions, rows))
}

func TestDispatcher_ValidationErrorsSkipStore(t *testing.T) {
	store := newMemStore()
	d := newTestDispatcher(t, store)

	_, err := d.Handle(context.Background(), ReportRequest{Kind: SalesData, Params: map[string]string{"selector": "mail-order"}})
	assert.ErrorIs(t, err, common.ErrUnknownSelector)

	_, err = d.Handle(context.Background(), ReportRequest{Kind: SalesByRegion})
	assert.ErrorIs(t, err, common.ErrMissingParameter)

	_, err = d.Handle(context.Background(), ReportRequest{Kind: KindUnknown})
	assert.ErrorIs(t, err, common.ErrUnsupportedReportKind)

	assert.Zero(t, store.callCount())
}

func TestDispatcher_ExecutionErrors(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection reset")
	reg := prometheus.NewRegistry()
	m := metrics.NewReportMetrics(reg)
	d, err := NewDispatcher(DispatcherConfig{Store: store, Collections: testCols, Metrics: m})
	require.NoError(t, err)

	_, err = d.Handle(context.Background(), ReportRequest{Kind: DistinctCategories})
	require.Error(t, err)
	assert.Equal(t, common.KindStoreFault, common.ErrorKind(err))
	assert.False(t, common.IsValidationError(err))
	assert.Equal(t, common.MsgTryAgainLater, err.Error())

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "apre_report_requests_total"))
}

func TestDispatcher_ShapeFaultIsStoreFault(t *testing.T) {
	store := newMemStore()
	store.insert("sales", bson.M{"channel": "online", "salesperson": "Bob", "amount": "twenty"})
	d := newTestDispatcher(t, store)

	_, err := d.Handle(context.Background(), ReportRequest{Kind: SalesData, Params: map[string]string{"selector": "online"}})
	assert.ErrorIs(t, err, common.ErrStoreFault)
	assert.Equal(t, http.StatusInternalServerError, common.HTTPStatus(err))
}

func TestDispatcher_Concurrent(t *testing.T) {
	store := newMemStore()
	seedSales(store)
	d := newTestDispatcher(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := d.Handle(context.Background(), ReportRequest{Kind: SalesByRegion, Params: map[string]string{"region": "north"}})
			assert.NoError(t, err)
			assert.Len(t, rows, 3)
		}()
	}
	wg.Wait()
}

func TestNewDispatcher_RequiresStoreAndCollections(t *testing.T) {
	_, err := NewDispatcher(DispatcherConfig{Collections: testCols})
	assert.Error(t, err)
	_, err = NewDispatcher(DispatcherConfig{Store: newMemStore()})
	assert.Error(t, err)
}
