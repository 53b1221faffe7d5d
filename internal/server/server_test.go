package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/poseplay/internal/game"
	"github.com/ayusman/poseplay/internal/store"
)

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	mock := quartz.NewMock(t)
	s := New(Config{Clock: mock})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		mock.Advance(3 * time.Second)
		rec := serve(s, http.MethodGet, "/api/health")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "ok", response["status"])
		assert.Equal(t, "3s", response["uptime"])
		assert.NotContains(t, response, "state")
	})

	t.Run("only allows GET method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			rec := serve(s, method, "/api/health")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		}
	})
}

func TestServer_HealthReportsGame(t *testing.T) {
	hub := NewHub()
	hub.PublishSnapshot(game.Snapshot{State: game.StateRunning, Score: 4})
	s := New(Config{Hub: hub})

	rec := serve(s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "running", response["state"])
	assert.EqualValues(t, 4, response["score"])
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	rec := serve(s, http.MethodGet, "/api/nonexistent")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OptionalRoutes(t *testing.T) {
	s := New(Config{})

	// Without a store or hub these routes are not registered.
	for _, path := range []string{"/api/scores", "/api/scores/abc", "/api/stream", "/api/events"} {
		rec := serve(s, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestServer_Scores(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.Sessions().Create(&store.Session{
		ID:        "abc",
		Score:     12,
		Jumps:     15,
		Duration:  40 * time.Second,
		StartedAt: end.Add(-40 * time.Second),
		EndedAt:   end,
	}))

	s := New(Config{Store: st})

	rec := serve(s, http.MethodGet, "/api/scores")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Best  int `json:"best"`
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, 12, list.Best)
	assert.Equal(t, 1, list.Total)

	rec = serve(s, http.MethodGet, "/api/scores/abc")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(s, http.MethodGet, "/api/scores/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_StaticFiles(t *testing.T) {
	tmpDir := t.TempDir()

	testContent := "<html><body>Hello, World!</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte(testContent), 0644))

	cssContent := "body { color: red; }"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "style.css"), []byte(cssContent), 0644))

	s := New(Config{StaticDir: tmpDir})

	t.Run("serves index.html at root path", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testContent, rec.Body.String())
	})

	t.Run("serves static files from configured directory", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/style.css")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, cssContent, rec.Body.String())
	})

	t.Run("returns 404 for non-existent static files", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/nonexistent.html")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_NoStaticDir(t *testing.T) {
	s := New(Config{})

	rec := serve(s, http.MethodGet, "/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		s := New(Config{StaticDir: "/some/path"})
		require.NotNil(t, s)
		assert.Equal(t, "/some/path", s.config.StaticDir)
		assert.NotNil(t, s.config.Clock)
		assert.NotNil(t, s.config.Logger)
		assert.Equal(t, 100*time.Millisecond, s.config.EventsInterval)
	})

	t.Run("server implements http.Handler", func(t *testing.T) {
		var _ http.Handler = New(Config{})
	})
}

func TestHub(t *testing.T) {
	hub := NewHub()

	frame, version, changed := hub.Frame()
	assert.Nil(t, frame)
	assert.Zero(t, version)

	_, snapVersion := hub.Snapshot()
	assert.Zero(t, snapVersion)

	src := []byte{0xff, 0xd8, 0x01}
	hub.PublishFrame(src)
	src[2] = 0x02

	select {
	case <-changed:
	default:
		t.Fatal("publish did not wake waiters")
	}

	frame, version, _ = hub.Frame()
	assert.Equal(t, []byte{0xff, 0xd8, 0x01}, frame)
	assert.Equal(t, uint64(1), version)

	hub.PublishSnapshot(game.Snapshot{Frame: 7, State: game.StateOver})
	hub.PublishSnapshot(game.Snapshot{Frame: 7, State: game.StateOver})
	snap, snapVersion := hub.Snapshot()
	assert.Equal(t, game.StateOver, snap.State)
	assert.Equal(t, uint64(2), snapVersion)
}
