package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/interface/api"
	"workshop-service/internal/testutil"
	"workshop-service/internal/usecase"
	"workshop-service/pkg/logger"
	"workshop-service/pkg/metrics"
	"workshop-service/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key"

type fixture struct {
	engine *gin.Engine
	store  *testutil.JobCardStore
	opLog  *testutil.OperationLog
	sink   *testutil.SheetRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC) }
	log := logger.NewNopLogger()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsWithRegistry("test", reg)

	store := testutil.NewJobCardStore(&entity.JobCard{
		DriveID:    "D1",
		Name:       "Valve",
		Operations: entity.Operations{"10_COAT": {}, "PPK": {}},
		Project:    testutil.Str("P1"),
		IsActive:   true,
	})
	opLog := &testutil.OperationLog{}
	sink := testutil.NewSheetRecorder()

	scheduler := usecase.NewSyncScheduler(
		testutil.NewDocumentTree(),
		store,
		utils.NewJobCardExtractor(utils.DefaultJobCardLayout()),
		usecase.SyncConfig{ProjectsFolderID: "root", InWorkMarker: "in_work", JobCardRange: "JC", Concurrency: 1},
		m, log,
	)
	publisher := usecase.NewPublisher(
		store,
		usecase.NewProjectionBuilder(usecase.NewStatusDeriver(now, time.UTC), now, time.UTC),
		sink,
		usecase.PublishConfig{MasterSheet: "master", ProjectsSheet: "projects"},
		m, log,
	)
	handler := api.NewWorkshopHandler(
		usecase.NewOperationManager(store, opLog, m, log, now),
		usecase.NewDispatcher(scheduler, publisher),
		log,
	)

	engine := NewRouter(Options{
		APIKey:      testKey,
		CORSOrigins: []string{"*"},
		Gatherer:    reg,
	}, handler, store.Ping, log)

	return &fixture{engine: engine, store: store, opLog: opLog, sink: sink}
}

func (f *fixture) do(t *testing.T, method, path, body string, authed bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set(apiKeyHeader, testKey)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestRouter_Healthz(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "up", body["db"])

	f.store.Err = errors.New("connection refused")
	w, body = f.do(t, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "down", body["db"])
}

func TestRouter_APIKeyRequired(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodGet, "/v1/ping", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, api.CodeUnauthorized, body["error"].(map[string]any)["code"])

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(apiKeyHeader, "wrong")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	w, body = f.do(t, http.MethodGet, "/v1/ping", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", body["msg"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRouter_UpdateOperation(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodPost, "/v1/wsop",
		`{"jobCardCode":"D1","operation":"10_COAT","startDateTime":"2024-03-02T08:00"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, true, body["applied"])

	rec := f.store.Card("D1").Operations["10_COAT"]
	require.NotNil(t, rec.StartDttm)
	assert.Equal(t, "2024-03-02T08:00", *rec.StartDttm)
	assert.Len(t, f.opLog.Entries, 1)

	w, body = f.do(t, http.MethodPost, "/v1/wsop", `{"jobCardCode":"D1","operation":"NOPE","comment":"x"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["applied"])
	assert.Equal(t, usecase.ReasonUnknownOperation, body["reason"])
	assert.Len(t, f.opLog.Entries, 2)

	w, _ = f.do(t, http.MethodPost, "/v1/wsop", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GetJobCard(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodGet, "/v1/wsop/D1", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "D1", data["drive_id"])
	assert.Contains(t, data["operations"], "PPK")

	w, body = f.do(t, http.MethodGet, "/v1/wsop/D1/PPK", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["data"], "end_dttm")

	w, body = f.do(t, http.MethodGet, "/v1/wsop/missing", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.CodeNotFound, body["error"].(map[string]any)["code"])

	w, _ = f.do(t, http.MethodGet, "/v1/wsop/D1/20_MECH", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Go(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodPost, "/v1/wsop/go", `{"action":"mstr_upd"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mstr_upd", body["action"])
	assert.Contains(t, f.sink.Replaced, "master")

	w, _ = f.do(t, http.MethodPost, "/v1/wsop/go", `{"action":"color","data":{"row":2,"col":6,"status":"completed"}}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.sink.Colors, 1)
	assert.Equal(t, entity.GridPos{Row: 1, Col: 5}, f.sink.Colors[0].From)

	w, body = f.do(t, http.MethodPost, "/v1/wsop/go", `{"action":"explode"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or missing action", body["error"].(map[string]any)["message"])

	f.sink.Err = errors.New("sheets quota")
	w, body = f.do(t, http.MethodPost, "/v1/wsop/go", `{"action":"prj_upd"}`, true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, api.CodeInternal, body["error"].(map[string]any)["code"])
}

func TestRouter_NoRouteAndMetrics(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodGet, "/nowhere", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.CodeNotFound, body["error"].(map[string]any)["code"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuth_EmptyHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", APIKeyAuth(testKey), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
