package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GuardHer/internal/service"
	"GuardHer/internal/store"
	"GuardHer/pkg/config"
	"GuardHer/pkg/notification"
)

const testAdminToken = "test-admin-token"

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{
		APIPrefix:         "/api",
		AdminToken:        testAdminToken,
		UserToken:         "", // user auth disabled, as in the prototype
		AnalyticsPageSize: 20,
	}

	sessions := store.NewSessionStore()
	locations := store.NewLiveLocationStore(time.Minute)
	evidence := store.NewEvidenceStore()
	notifier := notification.NewLogNotifier(nil)
	rng := rand.New(rand.NewSource(1))

	classifier := service.NewProbabilisticClassifier(service.ProbabilisticConfig{}, rng)
	h := NewHandlers(
		service.NewSOSService(sessions, locations, notifier),
		service.NewAnalysisService(evidence, classifier, rng),
		service.NewAnalyticsService(sessions, evidence),
		evidence,
	)

	engine := gin.New()
	h.Register(engine)
	return engine
}

func doJSON(engine *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, engine *gin.Engine, severity string) string {
	t.Helper()
	w := doJSON(engine, http.MethodPost, "/api/sos/create",
		`{"userId":"u1","location":{"lat":1,"lng":2},"severity":"`+severity+`"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)
	return body.Data.ID
}

func TestCreateSOSHandler(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("created", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/sos/create",
			`{"userId":"u1","location":{"lat":1,"lng":2},"severity":"high"}`, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"active"`)
	})

	t.Run("missing field", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/sos/create",
			`{"location":{"lat":1,"lng":2},"severity":"high"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "userId")
	})

	t.Run("unknown severity", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/sos/create",
			`{"userId":"u1","location":{"lat":1,"lng":2},"severity":"extreme"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSOSLifecycleOverHTTP(t *testing.T) {
	engine := newTestEngine(t)
	id := createSession(t, engine, "low")

	// live location is tracked right after create
	w := doJSON(engine, http.MethodGet, "/api/sos/track/u1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"lat":1`)

	// resolve drops it
	w = doJSON(engine, http.MethodPost, "/api/sos/resolve/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"resolved"`)

	w = doJSON(engine, http.MethodGet, "/api/sos/track/u1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":{}`)

	// updating a resolved session is a 404
	w = doJSON(engine, http.MethodPost, "/api/sos/update",
		`{"sessionId":"`+id+`","updates":{"severity":"high"}}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHelperRoutes(t *testing.T) {
	engine := newTestEngine(t)
	id := createSession(t, engine, "medium")

	w := doJSON(engine, http.MethodPost, "/api/sos/helpers/"+id, `{"helperId":"h1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"helpers":["h1"]`)

	w = doJSON(engine, http.MethodDelete, "/api/sos/helpers/"+id+"/h1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"helpers":[]`)

	w = doJSON(engine, http.MethodPost, "/api/sos/helpers/nope", `{"helperId":"h1"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeHandler(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(engine, http.MethodPost, "/api/analyze",
		`{"userId":"u1","type":"text","data":"please send help"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"riskLevel":"high"`)

	w = doJSON(engine, http.MethodPost, "/api/analyze",
		`{"userId":"u1","type":"video","data":"clip.mp4"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsAuth(t *testing.T) {
	engine := newTestEngine(t)
	createSession(t, engine, "high")

	t.Run("rejected without token", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/analytics/dashboard", "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("dashboard with token", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/analytics/dashboard", "",
			map[string]string{"Authorization": testAdminToken})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"highSeverity":1`)
	})

	t.Run("malformed pagination", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/analytics/dashboard?page=abc", "",
			map[string]string{"Authorization": testAdminToken})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid page value")

		w = doJSON(engine, http.MethodGet, "/api/analytics/dashboard?limit=ten", "",
			map[string]string{"Authorization": testAdminToken})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid limit value")
	})

	t.Run("csv export", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/analytics/csv", "",
			map[string]string{"Authorization": "Bearer " + testAdminToken})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.True(t, strings.HasPrefix(w.Body.String(),
			"sessionId,userId,severity,status,createdAt,helpers,locationLat,locationLng,evidenceCount"))
	})
}
