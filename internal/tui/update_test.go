package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusenback/detpanel/internal/api"
	"github.com/rusenback/detpanel/internal/model"
	"github.com/rusenback/detpanel/internal/storage"
)

// mockAPI toteuttaa api.DetectionAPI testejä varten
type mockAPI struct {
	startResult *api.StartResult
	startErr    error
	stopResult  *api.StopResult
	stopErr     error
	logsResult  *api.LogsResult
	logsErr     error
	alerts      []model.Alert
	alertsErr   error
}

func (m *mockAPI) StartDetection(values map[string]string) (*api.StartResult, error) {
	return m.startResult, m.startErr
}

func (m *mockAPI) StopDetection() (*api.StopResult, error) {
	return m.stopResult, m.stopErr
}

func (m *mockAPI) FetchLogs() (*api.LogsResult, error) {
	return m.logsResult, m.logsErr
}

func (m *mockAPI) FetchAlerts() ([]model.Alert, error) {
	return m.alerts, m.alertsErr
}

func (m *mockAPI) FetchDefaults() (map[string]string, error) {
	return map[string]string{}, nil
}

func (m *mockAPI) FetchUserConfig() (map[string]string, error) {
	return map[string]string{}, nil
}

func (m *mockAPI) ListAlertFiles() ([]model.AlertFile, error) {
	return nil, nil
}

func (m *mockAPI) DownloadAlert(path, destDir string) (string, error) {
	return "", nil
}

func (m *mockAPI) Shutdown() error {
	return nil
}

var _ api.DetectionAPI = (*mockAPI)(nil)

func newTestModel(client api.DetectionAPI) Model {
	return NewModel(client, nil, Options{Params: model.DefaultParams()})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	next, ok := nm.(Model)
	require.True(t, ok, "Update must return a tui.Model")
	return next, cmd
}

func TestPollAppendsAtMostLastTenLogLines(t *testing.T) {
	m := newTestModel(&mockAPI{})

	lines := make([]string, 15)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i)
	}

	m, _ = update(t, m, logsMsg{result: &api.LogsResult{Logs: lines, IsRunning: true}})

	require.Len(t, m.logs, 10)
	for i, entry := range m.logs {
		assert.Equal(t, fmt.Sprintf("line %02d", i+5), entry.Message, "order must be preserved")
	}
	assert.True(t, m.serverRunning)
}

func TestPollAppendsShortLogListsAsIs(t *testing.T) {
	m := newTestModel(&mockAPI{})

	m, _ = update(t, m, logsMsg{result: &api.LogsResult{Logs: []string{"a", "b"}}})

	require.Len(t, m.logs, 2)
	assert.Equal(t, "a", m.logs[0].Message)
	assert.Equal(t, "b", m.logs[1].Message)
}

func TestEmptyAlertsResponseClearsList(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.alerts = []model.Alert{{Timestamp: "t1", Alerts: []string{"person"}}}
	m.alertCursor = 0

	m, _ = update(t, m, alertsMsg{alerts: []model.Alert{}})

	assert.Empty(t, m.alerts)
	assert.Equal(t, 0, m.alertCursor)
}

func TestAlertsListIsReplacedNotMerged(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.alerts = []model.Alert{
		{Timestamp: "t1", Alerts: []string{"person"}},
		{Timestamp: "t2", Alerts: []string{"helmet"}},
	}

	m, _ = update(t, m, alertsMsg{alerts: []model.Alert{{Timestamp: "t3", Alerts: []string{"fire"}}}})

	require.Len(t, m.alerts, 1)
	assert.Equal(t, "t3", m.alerts[0].Timestamp)
}

func TestStartPollingIsIdempotent(t *testing.T) {
	m := newTestModel(&mockAPI{})

	cmd := m.startPolling()
	require.NotNil(t, cmd, "first start must arm the timer")
	gen := m.pollGen

	cmd = m.startPolling()
	assert.Nil(t, cmd, "second start must not arm another timer")
	assert.Equal(t, gen, m.pollGen, "generation must not advance on a no-op start")
	assert.True(t, m.pollingActive())
}

func TestStalePollTickIsDropped(t *testing.T) {
	m := newTestModel(&mockAPI{})

	_ = m.startPolling()
	staleGen := m.pollGen
	m.stopPolling()
	_ = m.startPolling()

	// A tick from the superseded chain must not fire a cycle
	_, cmd := update(t, m, tickMsg{gen: staleGen})
	assert.Nil(t, cmd)

	// The current chain still does
	_, cmd = update(t, m, tickMsg{gen: m.pollGen})
	assert.NotNil(t, cmd)
}

func TestStopPollingWhenInactiveIsNoOp(t *testing.T) {
	m := newTestModel(&mockAPI{})

	assert.NotPanics(t, func() { m.stopPolling() })
	assert.False(t, m.pollingActive())
}

func TestTickWhileStoppedDoesNothing(t *testing.T) {
	m := newTestModel(&mockAPI{})

	_, cmd := update(t, m, tickMsg{gen: m.pollGen})
	assert.Nil(t, cmd)
}

func TestStartSuccessTransitionsToRunningAndPolls(t *testing.T) {
	m := newTestModel(&mockAPI{})

	m, cmd := update(t, m, startMsg{result: &api.StartResult{
		Status: "success", Message: "started", Raw: `{"status":"success"}`,
	}})

	assert.True(t, m.running)
	assert.True(t, m.pollingActive())
	require.NotNil(t, cmd, "polling must be armed")
	require.NotEmpty(t, m.logs)
	assert.Contains(t, m.logs[len(m.logs)-1].Message, "success", "response is logged verbatim")
}

func TestStartNonSuccessLeavesStateUnchanged(t *testing.T) {
	for _, status := range []string{"error", "busy", ""} {
		m := newTestModel(&mockAPI{})

		m, cmd := update(t, m, startMsg{result: &api.StartResult{
			Status: status, Raw: `{"status":"` + status + `"}`,
		}})

		assert.False(t, m.running, "status %q must not start", status)
		assert.False(t, m.pollingActive())
		assert.Nil(t, cmd)
		assert.Len(t, m.logs, 1, "only the logged response line")
	}
}

func TestStartRequestErrorIsLoggedWithoutTransition(t *testing.T) {
	m := newTestModel(&mockAPI{})

	m, _ = update(t, m, startMsg{err: errors.New("connection refused")})

	assert.False(t, m.running)
	assert.False(t, m.pollingActive())
	require.Len(t, m.logs, 1)
	assert.Contains(t, m.logs[0].Message, "connection refused")
}

func TestStopTransitionsToIdleRegardlessOfBody(t *testing.T) {
	bodies := []*api.StopResult{
		{Status: "success", Raw: `{"status":"success"}`},
		{Status: "error", Raw: `{"status":"error"}`},
		{Raw: `{"whatever":42}`},
	}

	for _, body := range bodies {
		m := newTestModel(&mockAPI{})
		m.running = true
		_ = m.startPolling()

		m, _ = update(t, m, stopMsg{result: body})

		assert.False(t, m.running, "body %s must stop", body.Raw)
		assert.False(t, m.pollingActive())
	}
}

func TestPollErrorAppendsOneLineAndChainContinues(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.running = true
	_ = m.startPolling()

	before := len(m.logs)
	m, _ = update(t, m, logsMsg{err: errors.New("network down")})

	require.Equal(t, before+1, len(m.logs), "exactly one line per failed cycle")
	assert.Contains(t, m.logs[len(m.logs)-1].Message, "network down")
	assert.True(t, m.pollingActive())

	// The next scheduled tick still fires a cycle
	_, cmd := update(t, m, tickMsg{gen: m.pollGen})
	assert.NotNil(t, cmd)
}

func TestAlertFetchErrorAppendsOneLine(t *testing.T) {
	m := newTestModel(&mockAPI{})

	m, _ = update(t, m, alertsMsg{err: errors.New("bad gateway")})

	require.Len(t, m.logs, 1)
	assert.Contains(t, m.logs[0].Message, "bad gateway")
}

func TestStartKeyRoundTripThroughMock(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // SaveParams writes under ~/.detpanel

	client := &mockAPI{
		startResult: &api.StartResult{Status: "success", Raw: `{"status":"success"}`},
	}
	m := newTestModel(client)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, cmd, "start key must issue the request")

	msg := cmd()
	start, ok := msg.(startMsg)
	require.True(t, ok)

	m, _ = update(t, m, start)
	assert.True(t, m.running)
	assert.True(t, m.pollingActive())
}

func TestStartKeyIgnoredWhileRunning(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.running = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.Nil(t, cmd, "start is disabled while running")
	assert.True(t, m.running)
}

func TestStopKeyIgnoredWhileIdle(t *testing.T) {
	m := newTestModel(&mockAPI{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd, "stop is disabled while idle")
	assert.False(t, m.running)
}

func TestLogBufferIsCapped(t *testing.T) {
	m := newTestModel(&mockAPI{})

	for i := 0; i < 1100; i++ {
		m.appendLog("panel", fmt.Sprintf("line %d", i))
	}

	assert.Len(t, m.logs, 1000)
	assert.Equal(t, "line 1099", m.logs[len(m.logs)-1].Message)
}

func TestAppendLogPrefixesWallClockLabel(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.width = 120
	m.height = 40

	m.appendLog("panel", "hello")
	require.Len(t, m.logs, 1)

	rendered := styleLogEntry(m.logs[0], 100)
	assert.Contains(t, rendered, m.logs[0].Timestamp.Format("15:04:05"))
	assert.Contains(t, rendered, "hello")
}

func TestFormEditingRoundTrip(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.focusedPanel = PanelForm
	m.form.cursor = 0

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.form.editing)

	// Replace the buffer with a new source value
	for m.form.buffer != "" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("rtsp://cam")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.form.editing)
	assert.Equal(t, "rtsp://cam", m.form.fields[0].value)
	assert.Equal(t, "rtsp://cam", m.form.params().Source)
}

func TestServerParamsOverrideFormValues(t *testing.T) {
	m := newTestModel(&mockAPI{})

	m, _ = update(t, m, paramsMsg{values: map[string]string{
		"conf":    "0.5",
		"unknown": "ignored",
	}})

	assert.Equal(t, "0.5", m.form.params().Conf)
	assert.Equal(t, model.DefaultParams().Model, m.form.params().Model)
}

func TestDetectorRestartDoesNotDuplicateStoredAlerts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := storage.NewStorageAt(dbPath)
	require.NoError(t, err)

	m := NewModel(&mockAPI{}, store, Options{Params: model.DefaultParams()})

	first := []model.Alert{
		{Timestamp: "20250821_120001", Alerts: []string{"person"}, ClipPath: "clips/a.mp4"},
		{Timestamp: "20250821_120002", Alerts: []string{"fire"}, ClipPath: "clips/b.mp4"},
	}
	m, _ = update(t, m, alertsMsg{alerts: first})

	// Detector restart: the list shrinks but still contains an alert
	// that was already persisted
	m, _ = update(t, m, alertsMsg{alerts: first[1:]})

	// Drain the write channel, Close flushes the rest
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, store.Close())

	store, err = storage.NewStorageAt(dbPath)
	require.NoError(t, err)
	defer store.Close()

	stored, err := store.AlertsSince(storage.Range1Day)
	require.NoError(t, err)
	assert.Len(t, stored, 2, "overlapping alerts must be written once")
}

func TestViewRendersAllPanels(t *testing.T) {
	m := newTestModel(&mockAPI{})
	m.width = 120
	m.height = 40
	m.alerts = []model.Alert{{Timestamp: "12:00:01", Alerts: []string{"person"}}}

	out := m.View()
	for _, want := range []string{"Detection Log", "Parameters", "Alerts", "Detection Panel"} {
		assert.True(t, strings.Contains(out, want), "view must contain %q", want)
	}
}
