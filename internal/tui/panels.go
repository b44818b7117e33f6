package tui

import (
	"fmt"
	"strings"
)

// renderLogPanel renders the detection log panel
func (m Model) renderLogPanel(width, height int) string {
	content := m.renderLogPanelContent(width, height)
	return m.panelBorder(PanelLogs).
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderLogPanelContent renders the content of the log panel
func (m Model) renderLogPanelContent(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 Detection Log") + "\n")

	scrollInfo := ""
	if !m.logsAutoScroll {
		scrollInfo = "  (scroll locked)"
	}
	s.WriteString(fmt.Sprintf("%d lines%s\n\n", len(m.logs), scrollInfo))

	if len(m.logs) == 0 {
		s.WriteString("No log lines yet.\nPress [s] to start detection.\n")
	} else {
		// Window of visible lines based on the scroll position.
		// Must match calculateVisibleLogLines: height - 8
		visibleLines := height - 8
		if visibleLines < 3 {
			visibleLines = 3
		}

		start := m.logsScroll
		if start > len(m.logs) {
			start = len(m.logs)
		}
		end := start + visibleLines
		if end > len(m.logs) {
			end = len(m.logs)
		}

		for _, entry := range m.logs[start:end] {
			s.WriteString(styleLogEntry(entry, width-8) + "\n")
		}
	}

	if m.message != "" {
		s.WriteString("\n" + m.message)
	}

	help := "\n[pgup/pgdn] scroll  [a] autoscroll  [c] clear"
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

// renderFormPanel renders the start parameter form
func (m Model) renderFormPanel(width, height int) string {
	content := m.renderFormPanelContent(width, height)
	return m.panelBorder(PanelForm).
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderFormPanelContent renders the content of the form panel
func (m Model) renderFormPanelContent(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("⚙ Parameters") + "\n\n")

	labelWidth := 14
	valueWidth := width - labelWidth - 12
	if valueWidth < 8 {
		valueWidth = 8
	}

	maxFields := height - 8
	for i, field := range m.form.fields {
		if i >= maxFields {
			break
		}

		label := fmt.Sprintf("%-*s", labelWidth, field.label)
		value := field.value
		if value == "" {
			value = "-"
		}

		var line string
		switch {
		case i == m.form.cursor && m.form.editing:
			line = labelStyle.Render(label) + " " + editingStyle.Render(m.form.buffer+"▌")
		case i == m.form.cursor && m.focusedPanel == PanelForm:
			line = selectedStyle.Render("> " + label + " " + truncate(value, valueWidth))
		default:
			line = "  " + labelStyle.Render(label) + " " + valueStyle.Render(truncate(value, valueWidth))
		}
		s.WriteString(line + "\n")
	}

	help := "\n[↑/↓] field  [enter] edit  [R] reload"
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

// renderAlertsPanel renders the alerts list panel
func (m Model) renderAlertsPanel(width, height int) string {
	content := m.renderAlertsPanelContent(width, height)
	return m.panelBorder(PanelAlerts).
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderAlertsPanelContent renders the content of the alerts panel
func (m Model) renderAlertsPanelContent(width, height int) string {
	var s strings.Builder

	if m.showHistory {
		s.WriteString(titleStyle.Render("🚨 Alert History") + "  " +
			headerStyle.Render(" "+m.historyRange.String()+" ") + "\n\n")
	} else {
		s.WriteString(titleStyle.Render("🚨 Alerts") + "\n\n")
	}

	alerts := m.visibleAlerts()
	if len(alerts) == 0 {
		if m.showHistory {
			s.WriteString("No stored alerts in this range.\n")
		} else {
			s.WriteString("No active alerts.\n")
		}
	} else {
		maxAlerts := height - 7
		if maxAlerts < 1 {
			maxAlerts = 1
		}

		for i, alert := range alerts {
			if i >= maxAlerts {
				s.WriteString(fmt.Sprintf("  ... %d more\n", len(alerts)-i))
				break
			}

			line := truncate(alert.Label(), width-10)
			if i == m.alertCursor && m.focusedPanel == PanelAlerts {
				s.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + stoppedStyle.Render(line) + "\n")
			}
		}
	}

	help := "\n[h] history  [1-5] range  [d] download  [f] list clips"
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

// renderStatusPanel renders the connection and detection status panel
func (m Model) renderStatusPanel(width, height int) string {
	content := m.renderStatusPanelContent(width)
	return m.panelBorder(PanelStatus).
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderStatusPanelContent renders the content of the status panel
func (m Model) renderStatusPanelContent(width int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("🎯 Detection Panel") + "\n\n")

	if m.running {
		s.WriteString("State:    " + runningStyle.Render("running") + "\n")
	} else {
		s.WriteString("State:    " + stoppedStyle.Render("idle") + "\n")
	}

	if m.running {
		if m.serverRunning {
			s.WriteString("Server:   " + runningStyle.Render("detecting") + "\n")
		} else {
			s.WriteString("Server:   " + stoppedStyle.Render("not detecting") + "\n")
		}
	}

	if m.pollingActive() {
		s.WriteString("Polling:  " + runningStyle.Render("active") + "\n")
	} else {
		s.WriteString("Polling:  " + stoppedStyle.Render("off") + "\n")
	}

	if !m.lastPoll.IsZero() {
		s.WriteString("Last poll: " + m.lastPoll.Format("15:04:05") + "\n")
	}
	s.WriteString(fmt.Sprintf("Alerts:   %d\n", len(m.alerts)))

	help := "\n[Tab] focus  [s] start  [x] stop\n[X] shutdown server  [q] quit"
	s.WriteString(helpStyle.Render(help))

	return s.String()
}
