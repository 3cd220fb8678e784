package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/config"
	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := database.Open(database.Config{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn, zap.NewNop()).RunMigrations())

	cfg := config.Default()
	cfg.RateLimit = 0
	if mutate != nil {
		mutate(cfg)
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPrometheus(reg, "test")
	require.NoError(t, err)

	engine, stop := SetupRouter(Deps{Config: cfg, DB: conn, Logger: zap.NewNop(), Metrics: rec, Gatherer: reg})
	t.Cleanup(stop)
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.send(req)
}

func (s *testServer) upload(path, name, content string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(s.t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.send(req)
}

func (s *testServer) send(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	w, _ := s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, _ = s.do(http.MethodGet, "/api/v1/layouts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="/api/v1/layouts",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	w, _ := s.do(http.MethodOptions, "/api/v1/layouts", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSlottingWorkflow(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(http.MethodPost, "/api/v1/layouts", map[string]any{"name": "DC East"})
	require.Equal(t, http.StatusCreated, w.Code)
	layout := decode[struct {
		ID int64 `json:"id"`
	}](t, env.Data)
	base := fmt.Sprintf("/api/v1/layouts/%d", layout.ID)

	bin := func(label string, x float64) map[string]any {
		return map[string]any{"label": label, "element_type": "bin", "x_coordinate": x, "width": 24, "height": 24}
	}
	w, env = s.do(http.MethodPut, base+"/elements", []map[string]any{
		bin("N1", 0), bin("N2", 36), bin("N3", 72), bin("F1", 276), bin("F2", 576),
		{"label": "", "element_type": "wall", "x_coordinate": 0, "y_coordinate": 100, "width": 600, "height": 4},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	require.Len(t, decode[[]map[string]any](t, env.Data), 6)

	w, env = s.do(http.MethodPut, base+"/route-markers", []map[string]any{
		{"label": "Cart", "marker_type": "cart_parking"},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Error)

	t.Run("invalid upload reports rows", func(t *testing.T) {
		w, env := s.upload(base+"/picks/upload", "bad.csv", "element_name,date,pick_count\nN1,2024-05-10,x\nQ9,2024-05-10,1\n")
		require.Equal(t, http.StatusBadRequest, w.Code)
		verr := decode[struct {
			Rows []struct {
				Row int `json:"row"`
			} `json:"rows"`
		}](t, env.Data)
		require.Len(t, verr.Rows, 2)
	})

	w, env = s.upload(base+"/item-picks/upload", "items.csv", `item_id,item_description,location,date,pick_count,quantity
HOT,Fast mover,F2,2024-05-10,500,10
B,Warm mover,F1,2024-05-10,200,10
C,Slow,N3,2024-05-10,100,10
D,Slower,N2,2024-05-10,50,10
E,Slowest,N1,2024-05-10,10,10
`)
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	upload := decode[struct {
		ID       string `json:"id"`
		RowCount int    `json:"row_count"`
	}](t, env.Data)
	require.Equal(t, 5, upload.RowCount)

	t.Run("velocity", func(t *testing.T) {
		w, env := s.do(http.MethodGet, base+"/item-velocity", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[struct {
			Summary struct {
				Hot int `json:"hot"`
			} `json:"summary"`
			Period struct {
				End string `json:"end"`
			} `json:"period"`
		}](t, env.Data)
		require.Equal(t, 1, resp.Summary.Hot)
		require.Equal(t, "2024-05-10", resp.Period.End)
	})

	t.Run("reslotting", func(t *testing.T) {
		w, env := s.do(http.MethodGet, base+"/reslotting?limit=5&threshold=0.1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[struct {
			Count         int     `json:"count"`
			Threshold     float64 `json:"capacity_threshold"`
			Opportunities []struct {
				ItemID string `json:"item_id"`
			} `json:"opportunities"`
		}](t, env.Data)
		require.Equal(t, 1, resp.Count)
		require.Equal(t, 0.1, resp.Threshold)
		require.Equal(t, "HOT", resp.Opportunities[0].ItemID)
	})

	t.Run("analytics endpoints respond", func(t *testing.T) {
		for _, path := range []string{
			"/heatmap", "/dashboard?top=3", "/velocity?days=7", "/element-reslotting",
			"/roi?hourlyRate=20&implementationCost=500", "/labor", "/labor-standards", "/uploads",
		} {
			w, env := s.do(http.MethodGet, base+path, nil)
			require.Equal(t, http.StatusOK, w.Code, "%s: %s", path, env.Error)
		}
	})

	t.Run("bad query", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, base+"/velocity?start=05/01/2024", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		w, _ = s.do(http.MethodGet, base+"/reslotting?limit=abc", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("labor standards round trip", func(t *testing.T) {
		w, env := s.do(http.MethodPut, base+"/labor-standards", map[string]any{"hourly_rate": 24.5})
		require.Equal(t, http.StatusOK, w.Code, env.Error)
		w, env = s.do(http.MethodGet, base+"/labor-standards", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[struct {
			HourlyRate float64 `json:"hourly_rate"`
		}](t, env.Data)
		require.Equal(t, 24.5, got.HourlyRate)
	})

	t.Run("sample csv", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, base+"/picks/sample?kind=item&days=3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Header().Get("Content-Disposition"), "sample_item_picks.csv")
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 1+3*5)
	})

	t.Run("delete upload", func(t *testing.T) {
		w, _ := s.do(http.MethodDelete, "/api/v1/uploads/"+upload.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		w, _ = s.do(http.MethodDelete, "/api/v1/uploads/"+upload.ID, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("not found and bad ids", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, "/api/v1/layouts/999", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		w, _ = s.do(http.MethodGet, "/api/v1/layouts/abc/heatmap", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		w, _ = s.do(http.MethodDelete, "/api/v1/elements/0", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		w, _ = s.do(http.MethodPost, "/api/v1/layouts", map[string]any{"description": "no name"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete layout cascades", func(t *testing.T) {
		w, _ := s.do(http.MethodDelete, base, nil)
		require.Equal(t, http.StatusOK, w.Code)
		w, _ = s.do(http.MethodGet, base+"/elements", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.AuthEnabled = true
		cfg.JWTSecret = "router-test-secret"
		cfg.APIKey = "k3y"
	})

	w, _ := s.do(http.MethodGet, "/api/v1/layouts", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/token", map[string]any{"api_key": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/auth/token", map[string]any{"api_key": "k3y", "subject": "planner"})
	require.Equal(t, http.StatusOK, w.Code)
	s.token = decode[struct {
		Token string `json:"token"`
	}](t, env.Data).Token
	require.NotEmpty(t, s.token)

	w, _ = s.do(http.MethodGet, "/api/v1/layouts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
