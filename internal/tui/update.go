package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/detpanel/internal/model"
	"github.com/rusenback/detpanel/internal/storage"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tickMsg:
		// Drop ticks from a superseded chain so that at most one
		// poll cycle fires per interval
		if !m.polling || msg.gen != m.pollGen {
			return m, nil
		}
		return m, tea.Batch(
			fetchLogs(m.client),
			fetchAlerts(m.client),
			tickCmd(m.pollGen, m.pollInterval),
		)

	case logsMsg:
		if msg.err != nil {
			// One line per failed cycle, the chain keeps going
			m.appendLog("panel", fmt.Sprintf("Log fetch error: %v", msg.err))
			return m, nil
		}
		m.serverRunning = msg.result.IsRunning
		m.lastPoll = time.Now()

		// Append at most the 10 most recent lines, in arrival order
		entries := msg.result.Logs
		if len(entries) > 10 {
			entries = entries[len(entries)-10:]
		}
		for _, line := range entries {
			m.appendLog("server", line)
		}

	case alertsMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("Alert fetch error: %v", msg.err))
			return m, nil
		}
		// Last fetch wins: replace the whole list, no diffing
		m.persistNewAlerts(msg.alerts)
		m.alerts = msg.alerts
		if m.alertCursor >= len(m.alerts) && len(m.alerts) > 0 {
			m.alertCursor = len(m.alerts) - 1
		}
		if len(m.alerts) == 0 {
			m.alertCursor = 0
		}

	case startMsg:
		if msg.err != nil {
			// No transition: the panel stays idle on a failed request
			m.appendLog("panel", fmt.Sprintf("Start request failed: %v", msg.err))
			return m, nil
		}
		m.appendLog("panel", msg.result.Raw)
		if msg.result.Success() {
			m.running = true
			m.message = "Detection started"
			return m, m.startPolling()
		}
		// Non-success response: only the logged line, state unchanged

	case stopMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("Stop request failed: %v", msg.err))
			return m, nil
		}
		// Stop always succeeds from the panel's perspective,
		// whatever the response body says
		m.appendLog("panel", msg.result.Raw)
		m.running = false
		m.message = "Detection stopped"
		m.stopPolling()

	case paramsMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("Config fetch error: %v", msg.err))
			return m, nil
		}
		m.form.setValues(msg.values)

	case filesMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("Clip listing failed: %v", msg.err))
			return m, nil
		}
		m.appendLog("panel", fmt.Sprintf("%d clips on server", len(msg.files)))
		for _, f := range msg.files {
			m.appendLog("panel", fmt.Sprintf("  %s (%.1f MB)", f.Path, float64(f.Size)/1024/1024))
		}

	case downloadMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("Download failed: %v", msg.err))
			return m, nil
		}
		m.message = "Clip saved"
		m.appendLog("panel", "Saved clip to "+msg.dest)

	case historyMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("History query failed: %v", msg.err))
			return m, nil
		}
		m.historyAlerts = msg.alerts

	case shutdownMsg:
		if msg.err != nil {
			m.appendLog("panel", fmt.Sprintf("Shutdown request failed: %v", msg.err))
			return m, nil
		}
		m.appendLog("panel", "Server shutdown requested")
		m.running = false
		m.stopPolling()
	}

	return m, nil
}

// updateKey handles keyboard input
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Editing captures everything except commit/cancel
	if m.form.editing {
		switch msg.Type {
		case tea.KeyEnter:
			m.form.commitEdit()
		case tea.KeyEsc:
			m.form.cancelEdit()
		case tea.KeyBackspace:
			if len(m.form.buffer) > 0 {
				runes := []rune(m.form.buffer)
				m.form.buffer = string(runes[:len(runes)-1])
			}
		case tea.KeySpace:
			m.form.buffer += " "
		case tea.KeyRunes:
			m.form.buffer += string(msg.Runes)
		case tea.KeyCtrlC:
			m.stopPolling()
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.stopPolling()
		return m, tea.Quit

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % panelCount

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount

	case "up", "k":
		switch m.focusedPanel {
		case PanelForm:
			if m.form.cursor > 0 {
				m.form.cursor--
			}
		case PanelAlerts:
			if m.alertCursor > 0 {
				m.alertCursor--
			}
		case PanelLogs:
			if m.logsScroll > 0 {
				m.logsScroll--
				m.logsAutoScroll = false
			}
		}

	case "down", "j":
		switch m.focusedPanel {
		case PanelForm:
			if m.form.cursor < len(m.form.fields)-1 {
				m.form.cursor++
			}
		case PanelAlerts:
			if m.alertCursor < len(m.visibleAlerts())-1 {
				m.alertCursor++
			}
		case PanelLogs:
			if m.logsScroll < m.calculateMaxScroll() {
				m.logsScroll++
			}
			if m.logsScroll >= m.calculateMaxScroll() {
				m.logsAutoScroll = true
			}
		}

	case "enter":
		if m.focusedPanel == PanelForm && len(m.form.fields) > 0 {
			m.form.beginEdit()
		}

	case "pgup":
		// Scroll logs up by half page for better readability
		if m.logsScroll > 0 {
			visibleLines := m.calculateVisibleLogLines()
			scrollAmount := visibleLines / 2
			if scrollAmount < 1 {
				scrollAmount = 1
			}
			m.logsScroll -= scrollAmount
			if m.logsScroll < 0 {
				m.logsScroll = 0
			}
			m.logsAutoScroll = false
		}

	case "pgdown":
		// Scroll logs down by half page
		visibleLines := m.calculateVisibleLogLines()
		maxScroll := m.calculateMaxScroll()
		scrollAmount := visibleLines / 2
		if scrollAmount < 1 {
			scrollAmount = 1
		}
		m.logsScroll += scrollAmount
		if m.logsScroll >= maxScroll {
			m.logsScroll = maxScroll
			m.logsAutoScroll = true
		}

	case "home":
		m.logsScroll = 0
		m.logsAutoScroll = false

	case "end":
		m.logsScroll = m.calculateMaxScroll()
		m.logsAutoScroll = true

	case "a":
		// Toggle auto-scroll
		m.logsAutoScroll = !m.logsAutoScroll
		if m.logsAutoScroll {
			m.logsScroll = m.calculateMaxScroll()
		}

	case "c":
		// Clear the log view (storage keeps the history)
		m.logs = []model.LogEntry{}
		m.logsScroll = 0

	case "s":
		if !m.running {
			return m, startDetection(m.client, m.form.params())
		}
		m.message = "Detection already running"

	case "x":
		if m.running {
			return m, stopDetection(m.client)
		}
		m.message = "Detection is not running"

	case "R":
		m.message = "Reloading params..."
		return m, fetchParams(m.client)

	case "d":
		alerts := m.visibleAlerts()
		if len(alerts) > 0 && m.alertCursor < len(alerts) {
			clip := alerts[m.alertCursor].ClipPath
			if clip != "" {
				m.message = "Downloading clip..."
				return m, downloadAlert(m.client, clip, m.downloadDir)
			}
			m.message = "Alert has no clip"
		}

	case "f":
		return m, fetchAlertFiles(m.client)

	case "h":
		// Toggle between live alerts and stored history
		m.showHistory = !m.showHistory
		m.alertCursor = 0
		if m.showHistory {
			return m, loadHistory(m.storage, m.historyRange)
		}

	case "1":
		m.historyRange = storage.Range30Min
		if m.showHistory {
			return m, loadHistory(m.storage, m.historyRange)
		}
	case "2":
		m.historyRange = storage.Range1Hour
		if m.showHistory {
			return m, loadHistory(m.storage, m.historyRange)
		}
	case "3":
		m.historyRange = storage.Range6Hour
		if m.showHistory {
			return m, loadHistory(m.storage, m.historyRange)
		}
	case "4":
		m.historyRange = storage.Range1Day
		if m.showHistory {
			return m, loadHistory(m.storage, m.historyRange)
		}
	case "5":
		m.historyRange = storage.Range1Week
		if m.showHistory {
			return m, loadHistory(m.storage, m.historyRange)
		}

	case "X":
		return m, shutdownServer(m.client)
	}

	return m, nil
}

// appendLog adds a line to the log view, caps the buffer and
// auto-scrolls to the bottom
func (m *Model) appendLog(origin, message string) {
	entry := model.LogEntry{
		Timestamp: time.Now(),
		Message:   message,
		Origin:    origin,
	}
	m.logs = append(m.logs, entry)
	if len(m.logs) > 1000 {
		m.logs = m.logs[len(m.logs)-1000:]
	}

	if m.logsAutoScroll {
		m.logsScroll = m.calculateMaxScroll()
	}

	if m.storage != nil {
		m.storage.WriteLog(&storage.LogRecord{
			Session:   m.session,
			Timestamp: entry.Timestamp,
			Line:      message,
			Origin:    origin,
		})
	}
}

// persistNewAlerts writes alerts not seen before to storage.
// The server list is append-only within a run and resets on restart,
// so alerts are keyed by timestamp and clip path to survive a restart
// whose new list overlaps the old one.
func (m *Model) persistNewAlerts(alerts []model.Alert) {
	if m.alertsPersisted == nil {
		m.alertsPersisted = make(map[string]struct{})
	}
	for _, alert := range alerts {
		key := alert.Timestamp + "|" + alert.ClipPath
		if _, ok := m.alertsPersisted[key]; ok {
			continue
		}
		m.alertsPersisted[key] = struct{}{}

		if m.storage != nil {
			m.storage.WriteAlert(&storage.AlertRecord{
				Timestamp: time.Now(),
				Alert:     alert,
			})
		}
	}
}

// visibleAlerts palauttaa näkyvän hälytyslistan (live tai historia)
func (m Model) visibleAlerts() []model.Alert {
	if m.showHistory {
		return m.historyAlerts
	}
	return m.alerts
}
