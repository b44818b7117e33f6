package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against a stub detection server.
// The /get_config ping is always answered.
func newTestClient(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/get_config", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"source": "0", "conf": 0.25, "fps": 30, "save_results": false}`))
	})
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClientFailsWhenServerUnreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1"

	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestStartDetectionSendsFormAndDecodesStatus(t *testing.T) {
	var gotSource, gotConf string
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/start_detection": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotSource = r.FormValue("source")
			gotConf = r.FormValue("conf")
			w.Write([]byte(`{"status": "success", "message": "detection started"}`))
		},
	})

	result, err := client.StartDetection(map[string]string{
		"source": "rtsp://cam1",
		"conf":   "0.4",
	})
	require.NoError(t, err)

	assert.Equal(t, "rtsp://cam1", gotSource)
	assert.Equal(t, "0.4", gotConf)
	assert.True(t, result.Success())
	assert.Contains(t, result.Raw, "detection started")
}

func TestStartDetectionNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/start_detection": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "error", "message": "already starting"}`))
		},
	})

	result, err := client.StartDetection(nil)
	require.NoError(t, err)
	assert.False(t, result.Success())
}

func TestStopDetectionToleratesAnyJSONBody(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/stop_detection": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["not", "an", "object"]`))
		},
	})

	result, err := client.StopDetection()
	require.NoError(t, err)
	assert.Equal(t, `["not", "an", "object"]`, result.Raw)
}

func TestStopDetectionRejectsNonJSONBody(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/stop_detection": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		},
	})

	_, err := client.StopDetection()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestFetchLogsMissingLogsFieldMeansEmpty(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/get_logs": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"is_running": true}`))
		},
	})

	result, err := client.FetchLogs()
	require.NoError(t, err)
	assert.NotNil(t, result.Logs)
	assert.Empty(t, result.Logs)
	assert.True(t, result.IsRunning)
}

func TestFetchLogsDecodesOrderedLines(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/get_logs": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"logs": ["[12:00:01] first", "[12:00:02] second"], "is_running": false}`))
		},
	})

	result, err := client.FetchLogs()
	require.NoError(t, err)
	require.Len(t, result.Logs, 2)
	assert.Equal(t, "[12:00:01] first", result.Logs[0])
	assert.False(t, result.IsRunning)
}

func TestFetchAlertsDecodesList(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/alerts": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"timestamp": "20250821_120001", "alerts": ["person", "no helmet"], "path": "output/20250821/alert_1.mp4"}]`))
		},
	})

	alerts, err := client.FetchAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, []string{"person", "no helmet"}, alerts[0].Alerts)
	assert.Equal(t, "output/20250821/alert_1.mp4", alerts[0].ClipPath)
}

func TestFetchAlertsEmptyList(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/alerts": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		},
	})

	alerts, err := client.FetchAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestFetchDefaultsConvertsMixedTypes(t *testing.T) {
	client := newTestClient(t, nil)

	values, err := client.FetchDefaults()
	require.NoError(t, err)

	assert.Equal(t, "0", values["source"])
	assert.Equal(t, "0.25", values["conf"])
	assert.Equal(t, "30", values["fps"])
	assert.Equal(t, "false", values["save_results"])
}

func TestDownloadAlertWritesFile(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/download_alert": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "output/clip.mp4", r.URL.Query().Get("path"))
			w.Write([]byte("clip-bytes"))
		},
	})

	destDir := t.TempDir()
	dest, err := client.DownloadAlert("output/clip.mp4", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "clip.mp4"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "clip-bytes", string(data))
}

func TestDownloadAlertMissingFile(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/download_alert": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		},
	})

	_, err := client.DownloadAlert("gone.mp4", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestErrorStatusIsRejected(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/get_logs": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})

	_, err := client.FetchLogs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
