package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/detpanel/internal/api"
	"github.com/rusenback/detpanel/internal/model"
	"github.com/rusenback/detpanel/internal/storage"
)

// Panel identifies the focusable regions of the layout
type Panel int

const (
	PanelLogs Panel = iota
	PanelForm
	PanelAlerts
	PanelStatus
	panelCount
)

// Model represents the TUI application state
type Model struct {
	client api.DetectionAPI
	width  int
	height int

	// Detection state: exactly one of idle/running, flipped only by
	// a successful start response or any stop response
	running       bool
	serverRunning bool
	lastPoll      time.Time

	// Polling state. The generation counter makes start/stop idempotent:
	// ticks from a superseded chain carry a stale generation and are dropped.
	polling bool
	pollGen int

	pollInterval time.Duration

	logs           []model.LogEntry
	logsScroll     int
	logsAutoScroll bool

	alerts          []model.Alert
	alertCursor     int
	alertsPersisted map[string]struct{} // Keys of alerts already written to storage

	// Alert history from local storage
	showHistory   bool
	historyRange  storage.TimeRange
	historyAlerts []model.Alert

	form formState

	focusedPanel Panel
	message      string

	// Storage and session
	storage *storage.Storage
	session string

	downloadDir string
}

// Message types for Bubbletea update loop
type tickMsg struct {
	gen int
}

type logsMsg struct {
	result *api.LogsResult
	err    error
}

type alertsMsg struct {
	alerts []model.Alert
	err    error
}

type startMsg struct {
	result *api.StartResult
	err    error
}

type stopMsg struct {
	result *api.StopResult
	err    error
}

type paramsMsg struct {
	values map[string]string
	err    error
}

type filesMsg struct {
	files []model.AlertFile
	err   error
}

type downloadMsg struct {
	dest string
	err  error
}

type historyMsg struct {
	alerts []model.Alert
	err    error
}

type shutdownMsg struct {
	err error
}

// Options configures the TUI model
type Options struct {
	PollInterval time.Duration
	DownloadDir  string
	Params       model.DetectionParams
}

// NewModel creates a new TUI model
func NewModel(client api.DetectionAPI, store *storage.Storage, opts Options) Model {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	m := Model{
		client:         client,
		storage:        store,
		session:        time.Now().Format("20060102-150405"),
		pollInterval:   interval,
		logsAutoScroll: true,
		historyRange:   storage.Range30Min,
		downloadDir:    opts.DownloadDir,
		form:           newFormState(opts.Params),
		focusedPanel:   PanelLogs,
	}

	// Pre-fill the log panel from the previous sessions
	if store != nil {
		if recent, err := store.RecentLogs(50); err == nil {
			m.logs = recent
		}
	}

	return m
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return fetchParams(m.client)
}

// startPolling begins the tick chain. No-op when already active.
func (m *Model) startPolling() tea.Cmd {
	if m.polling {
		return nil
	}
	m.polling = true
	m.pollGen++
	return tickCmd(m.pollGen, m.pollInterval)
}

// stopPolling ends the tick chain. No-op when not active.
// In-flight requests are not cancelled, matching the panel's
// last-write-wins behavior.
func (m *Model) stopPolling() {
	if !m.polling {
		return
	}
	m.polling = false
	m.pollGen++
}

// pollingActive kertoo onko pollaus käynnissä
func (m *Model) pollingActive() bool {
	return m.polling
}
