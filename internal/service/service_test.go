package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jengzang/slotting-backend-go/internal/analytics"
	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServices struct {
	layouts   *LayoutService
	uploads   *UploadService
	analytics *AnalyticsService
	labor     *LaborService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	conn, err := database.Open(database.Config{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn, zap.NewNop()).RunMigrations())

	layoutRepo := repository.NewLayoutRepository(conn)
	elementRepo := repository.NewElementRepository(conn)
	markerRepo := repository.NewRouteMarkerRepository(conn)
	pickRepo := repository.NewPickRepository(conn)
	laborRepo := repository.NewLaborRepository(conn)
	logger := zap.NewNop()
	opts := analytics.DefaultOptions()

	return &testServices{
		layouts:   NewLayoutService(layoutRepo, elementRepo, markerRepo, logger),
		uploads:   NewUploadService(layoutRepo, elementRepo, pickRepo, metrics.NewNop(), logger),
		analytics: NewAnalyticsService(layoutRepo, elementRepo, markerRepo, pickRepo, laborRepo, opts, nil, logger),
		labor:     NewLaborService(layoutRepo, laborRepo, opts, logger),
	}
}

// seedWarehouse builds a single row of 24px bins east of a cart parking
// marker at the origin. Round trips: N1 4ft, N2 10ft, N3 16ft, F1 50ft,
// F2 100ft.
func seedWarehouse(t *testing.T, s *testServices) int64 {
	t.Helper()
	ctx := context.Background()

	layout, err := s.layouts.CreateLayout(ctx, models.LayoutInput{Name: "DC"})
	require.NoError(t, err)

	bin := func(label string, x float64) models.ElementInput {
		return models.ElementInput{Label: label, Type: models.ElementTypeBin, X: x, Width: 24, Height: 24}
	}
	_, err = s.layouts.SaveCanvas(ctx, layout.ID, []models.ElementInput{
		bin("N1", 0), bin("N2", 36), bin("N3", 72), bin("F1", 276), bin("F2", 576),
		{Label: "Aisle", Type: models.ElementTypeTextLabel, X: 0, Y: 100},
	})
	require.NoError(t, err)

	_, err = s.layouts.ReplaceMarkers(ctx, layout.ID, []models.RouteMarkerInput{
		{Label: "Cart", MarkerType: models.MarkerTypeCartParking},
	})
	require.NoError(t, err)
	return layout.ID
}

const itemCSV = `item_id,item_description,location,date,pick_count,quantity
HOT,Fast mover,F2,2024-05-10,500,10
B,Warm mover,F1,2024-05-10,200,10
C,Slow,N3,2024-05-10,100,10
D,Slower,N2,2024-05-10,50,10
E,Slowest,N1,2024-05-10,10,10
`

func TestLayoutService(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	t.Run("defaults canvas size", func(t *testing.T) {
		l, err := s.layouts.CreateLayout(ctx, models.LayoutInput{Name: "  Plan  "})
		require.NoError(t, err)
		require.Equal(t, "Plan", l.Name)
		require.Equal(t, models.DefaultCanvasWidth, l.CanvasWidth)
		require.Equal(t, models.DefaultCanvasHeight, l.CanvasHeight)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := s.layouts.CreateLayout(ctx, models.LayoutInput{Name: " "})
		require.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("canvas grows to fit elements", func(t *testing.T) {
		l, err := s.layouts.CreateLayout(ctx, models.LayoutInput{Name: "Small", CanvasWidth: 400, CanvasHeight: 300})
		require.NoError(t, err)
		_, err = s.layouts.CreateElement(ctx, l.ID, models.ElementInput{Label: "Far", Type: models.ElementTypeRack, X: 900, Y: 100, Width: 100, Height: 50})
		require.NoError(t, err)

		got, err := s.layouts.GetLayout(ctx, l.ID)
		require.NoError(t, err)
		require.Equal(t, 1050.0, got.CanvasWidth)
		require.Equal(t, 300.0, got.CanvasHeight)
	})

	t.Run("validates element and marker types", func(t *testing.T) {
		l, err := s.layouts.CreateLayout(ctx, models.LayoutInput{Name: "V"})
		require.NoError(t, err)

		_, err = s.layouts.CreateElement(ctx, l.ID, models.ElementInput{Label: "X", Type: "crate"})
		require.ErrorIs(t, err, models.ErrInvalidInput)
		_, err = s.layouts.SaveCanvas(ctx, l.ID, []models.ElementInput{{Label: " ", Type: models.ElementTypeBin}})
		require.ErrorIs(t, err, models.ErrInvalidInput)
		_, err = s.layouts.CreateMarker(ctx, l.ID, models.RouteMarkerInput{MarkerType: "exit"})
		require.ErrorIs(t, err, models.ErrInvalidInput)
		_, err = s.layouts.ListElements(ctx, l.ID, "crate")
		require.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("missing layout", func(t *testing.T) {
		_, err := s.layouts.ListElements(ctx, 999, "")
		require.ErrorIs(t, err, models.ErrNotFound)
		_, err = s.layouts.CreateMarker(ctx, 999, models.RouteMarkerInput{MarkerType: models.MarkerTypeStart})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestUploadService(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	layoutID := seedWarehouse(t, s)

	t.Run("accepts a valid element file", func(t *testing.T) {
		u, err := s.uploads.Upload(ctx, layoutID, models.UploadKindElement, "picks.csv",
			strings.NewReader("element_name,date,pick_count\nn1,2024-05-01,3\nF2,05/02/2024,4\n"))
		require.NoError(t, err)
		require.Equal(t, 2, u.RowCount)
		require.Equal(t, "2024-05-01", u.StartDate)
		require.Equal(t, "2024-05-02", u.EndDate)
		require.Len(t, u.ID, 36)
	})

	t.Run("rejects the whole file on one bad row", func(t *testing.T) {
		_, err := s.uploads.Upload(ctx, layoutID, models.UploadKindElement, "bad.csv",
			strings.NewReader("element_name,date,pick_count\nN1,2024-05-01,3\nZZ,2024-05-01,4\n"))
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Rows, 1)
		require.Equal(t, 3, verr.Rows[0].Row)

		uploads, err := s.uploads.ListUploads(ctx, layoutID)
		require.NoError(t, err)
		require.Len(t, uploads, 1)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := s.uploads.Upload(ctx, layoutID, "pallets", "x.csv", strings.NewReader(""))
		require.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("sample files upload cleanly", func(t *testing.T) {
		for _, kind := range []string{models.UploadKindElement, models.UploadKindItem} {
			data, err := s.uploads.SampleCSV(ctx, layoutID, kind, 5)
			require.NoError(t, err)
			u, err := s.uploads.Upload(ctx, layoutID, kind, "sample.csv", strings.NewReader(string(data)))
			require.NoError(t, err, kind)
			require.Equal(t, 25, u.RowCount, kind)
		}
	})

	t.Run("delete upload", func(t *testing.T) {
		uploads, err := s.uploads.ListUploads(ctx, layoutID)
		require.NoError(t, err)
		require.NotEmpty(t, uploads)

		require.NoError(t, s.uploads.DeleteUpload(ctx, uploads[0].ID))
		require.ErrorIs(t, s.uploads.DeleteUpload(ctx, uploads[0].ID), models.ErrNotFound)
		require.ErrorIs(t, s.uploads.DeleteUpload(ctx, "nope"), models.ErrInvalidInput)
	})
}

func TestResolvePeriod(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	layoutID := seedWarehouse(t, s)
	s.analytics.now = func() time.Time { return time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC) }

	t.Run("no picks falls back to today", func(t *testing.T) {
		p, err := s.analytics.ResolvePeriod(ctx, layoutID, models.PeriodFilter{})
		require.NoError(t, err)
		require.Equal(t, models.Period{Start: "2024-05-17", End: "2024-06-15", Days: 30}, p)
	})

	_, err := s.uploads.Upload(ctx, layoutID, models.UploadKindItem, "items.csv", strings.NewReader(itemCSV))
	require.NoError(t, err)

	t.Run("ends at the latest pick date", func(t *testing.T) {
		p, err := s.analytics.ResolvePeriod(ctx, layoutID, models.PeriodFilter{Days: 7})
		require.NoError(t, err)
		require.Equal(t, models.Period{Start: "2024-05-04", End: "2024-05-10", Days: 7}, p)
		require.Equal(t, models.Period{Start: "2024-04-27", End: "2024-05-03", Days: 7}, p.Previous())
	})

	t.Run("explicit range", func(t *testing.T) {
		p, err := s.analytics.ResolvePeriod(ctx, layoutID, models.PeriodFilter{Start: "2024-01-01", End: "2024-01-31"})
		require.NoError(t, err)
		require.Equal(t, 31, p.Days)
	})

	t.Run("invalid ranges", func(t *testing.T) {
		for _, f := range []models.PeriodFilter{
			{Start: "2024-02-01", End: "2024-01-01"},
			{End: "01/31/2024"},
			{Start: "yesterday"},
			{Days: -3},
			{Start: "2000-01-01", End: "2024-01-01"},
		} {
			_, err := s.analytics.ResolvePeriod(ctx, layoutID, f)
			require.ErrorIs(t, err, models.ErrInvalidInput, "%+v", f)
		}
	})
}

func TestAnalyticsService(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	layoutID := seedWarehouse(t, s)

	_, err := s.uploads.Upload(ctx, layoutID, models.UploadKindItem, "items.csv", strings.NewReader(itemCSV))
	require.NoError(t, err)

	t.Run("item velocity", func(t *testing.T) {
		resp, err := s.analytics.ItemVelocity(ctx, layoutID, models.PeriodFilter{})
		require.NoError(t, err)
		require.Equal(t, 30, resp.Period.Days)
		require.Equal(t, models.VelocitySummary{Hot: 1, Warm: 1, Cold: 3, Total: 5}, resp.Summary)
		require.Equal(t, "HOT", resp.Items[0].ItemID)
		require.Equal(t, models.TierHot, resp.Items[0].Tier)
		require.Equal(t, models.TrendNew, resp.Items[0].Trend)
		require.InDelta(t, 100.0, resp.Items[0].RoundTripFeet, 1e-9)
	})

	t.Run("element velocity", func(t *testing.T) {
		resp, err := s.analytics.Velocity(ctx, layoutID, models.PeriodFilter{})
		require.NoError(t, err)
		require.Len(t, resp.Elements, 5)
		require.Equal(t, "F2", resp.Elements[0].Label)
	})

	t.Run("item reslotting swaps the hot far item with the nearest slow one", func(t *testing.T) {
		resp, err := s.analytics.Reslotting(ctx, layoutID, models.ReslottingFilter{})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		require.Equal(t, 0.15, resp.CapacityThreshold)

		o := resp.Opportunities[0]
		require.Equal(t, "HOT", o.ItemID)
		require.Equal(t, "F2", o.FromLocation)
		require.Equal(t, "N1", o.ToLocation)
		require.Equal(t, "E", o.SwapItemID)
		require.InDelta(t, 96.0, o.DistanceDelta, 1e-9)
		require.InDelta(t, 500.0/30*96, o.FeetSavedPerDay, 1e-6)
	})

	t.Run("bad threshold", func(t *testing.T) {
		_, err := s.analytics.Reslotting(ctx, layoutID, models.ReslottingFilter{Threshold: 1.5})
		require.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("roi uses stored labor rate", func(t *testing.T) {
		_, err := s.labor.SaveStandards(ctx, layoutID, models.LaborStandards{HourlyRate: 30})
		require.NoError(t, err)

		resp, err := s.analytics.ROI(ctx, layoutID, models.ROIFilter{})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Opportunities)
		require.Equal(t, 30.0, resp.Projection.HourlyRate)
		require.True(t, resp.Projection.CostEstimated)
		require.NotNil(t, resp.Projection.PaybackDays)

		explicit, err := s.analytics.ROI(ctx, layoutID, models.ROIFilter{HourlyRate: 20, ImplementationCost: 100})
		require.NoError(t, err)
		require.Equal(t, 20.0, explicit.Projection.HourlyRate)
		require.False(t, explicit.Projection.CostEstimated)
	})

	t.Run("element reslotting", func(t *testing.T) {
		resp, err := s.analytics.ElementReslotting(ctx, layoutID, models.ReslottingFilter{})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		require.Equal(t, "F2", resp.Opportunities[0].FromLocation)
	})

	t.Run("heatmap", func(t *testing.T) {
		resp, err := s.analytics.Heatmap(ctx, layoutID, models.PeriodFilter{})
		require.NoError(t, err)
		require.Equal(t, 5, resp.Count)
		require.Equal(t, 500, resp.MaxValue)
		require.Equal(t, 10, resp.MinValue)
	})

	t.Run("dashboard", func(t *testing.T) {
		kpi, err := s.analytics.Dashboard(ctx, layoutID, models.DashboardFilter{Top: 2})
		require.NoError(t, err)
		require.Equal(t, 860, kpi.TotalPicks)
		require.Equal(t, 5, kpi.ActiveItems)
		require.Equal(t, 5, kpi.SlotElements)
		require.Len(t, kpi.TopElements, 2)
		require.True(t, kpi.HasCartParking)
		require.Len(t, kpi.DailyPicks, 1)
	})

	t.Run("labor", func(t *testing.T) {
		est, err := s.analytics.Labor(ctx, layoutID, models.PeriodFilter{})
		require.NoError(t, err)
		require.InDelta(t, 860.0/30, est.DailyPicks, 1e-9)
		// Weighted by picks: (500*100 + 200*50 + 100*16 + 50*10 + 10*4) / 860
		require.InDelta(t, 62140.0/860, est.AvgRoundTripFeet, 1e-9)
		require.Equal(t, 30.0, est.Standards.HourlyRate)
	})

	t.Run("unknown layout", func(t *testing.T) {
		_, err := s.analytics.Velocity(ctx, 999, models.PeriodFilter{})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestElementReslottingEmptySlots(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	layout, err := s.layouts.CreateLayout(ctx, models.LayoutInput{Name: "Empties", CanvasWidth: 1400})
	require.NoError(t, err)
	bin := func(label string, x float64) models.ElementInput {
		return models.ElementInput{Label: label, Type: models.ElementTypeBin, X: x, Width: 24, Height: 24}
	}
	// Round trips: NEAR_EMPTY 4ft, P2 10ft, P3 16ft, P4 22ft, P5 28ft,
	// HOT 100ft, FAR_EMPTY 204ft.
	_, err = s.layouts.SaveCanvas(ctx, layout.ID, []models.ElementInput{
		bin("NEAR_EMPTY", 0), bin("P2", 36), bin("P3", 72), bin("P4", 108), bin("P5", 144),
		bin("HOT", 576), bin("FAR_EMPTY", 1200),
	})
	require.NoError(t, err)
	_, err = s.layouts.ReplaceMarkers(ctx, layout.ID, []models.RouteMarkerInput{
		{Label: "Cart", MarkerType: models.MarkerTypeCartParking},
	})
	require.NoError(t, err)

	csv := `element_name,date,pick_count
HOT,2024-05-10,500
P2,2024-05-10,40
P3,2024-05-10,30
P4,2024-05-10,20
P5,2024-05-10,10
`
	_, err = s.uploads.Upload(ctx, layout.ID, models.UploadKindElement, "picks.csv", strings.NewReader(csv))
	require.NoError(t, err)

	resp, err := s.analytics.ElementReslotting(ctx, layout.ID, models.ReslottingFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)

	opp := resp.Opportunities[0]
	require.Equal(t, "HOT", opp.FromLocation)
	require.Equal(t, "NEAR_EMPTY", opp.ToLocation)
	require.Equal(t, models.TierCold, opp.ToTier)
	require.InDelta(t, 4.0, opp.ToRoundTripFeet, 1e-9)
	require.InDelta(t, 96.0, opp.DistanceDelta, 1e-9)

	t.Run("empty slots leave picked tiers alone", func(t *testing.T) {
		v, err := s.analytics.Velocity(ctx, layout.ID, models.PeriodFilter{})
		require.NoError(t, err)
		require.Equal(t, models.VelocitySummary{Hot: 1, Warm: 1, Cold: 3, Total: 5}, v.Summary)
		require.Equal(t, 20.0, v.Elements[0].Percentile)
	})
}

func TestLaborService(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	layoutID := seedWarehouse(t, s)

	got, err := s.labor.GetStandards(ctx, layoutID)
	require.NoError(t, err)
	require.Equal(t, analytics.DefaultLaborStandards(layoutID), *got)

	_, err = s.labor.SaveStandards(ctx, layoutID, models.LaborStandards{HourlyRate: -1})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	saved, err := s.labor.SaveStandards(ctx, layoutID, models.LaborStandards{HourlyRate: 25, ShiftHours: 8})
	require.NoError(t, err)
	require.Equal(t, 25.0, saved.HourlyRate)
	require.Equal(t, 8.0, saved.ShiftHours)
	require.Equal(t, 8.0, saved.PickSeconds)

	got, err = s.labor.GetStandards(ctx, layoutID)
	require.NoError(t, err)
	require.Equal(t, *saved, *got)
}
