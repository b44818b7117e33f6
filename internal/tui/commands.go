package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/detpanel/internal/api"
	"github.com/rusenback/detpanel/internal/config"
	"github.com/rusenback/detpanel/internal/model"
	"github.com/rusenback/detpanel/internal/storage"
)

// tickCmd creates a command that sends the next poll tick.
// The generation is echoed back so stale chains can be dropped.
func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// fetchLogs creates a command to fetch the detection log
func fetchLogs(client api.DetectionAPI) tea.Cmd {
	return func() tea.Msg {
		result, err := client.FetchLogs()
		return logsMsg{result: result, err: err}
	}
}

// fetchAlerts creates a command to fetch the current alert list
func fetchAlerts(client api.DetectionAPI) tea.Cmd {
	return func() tea.Msg {
		alerts, err := client.FetchAlerts()
		return alertsMsg{alerts: alerts, err: err}
	}
}

// startDetection sends the start request with the current form values.
// The last-used params are saved locally when the server accepts them.
func startDetection(client api.DetectionAPI, params model.DetectionParams) tea.Cmd {
	return func() tea.Msg {
		result, err := client.StartDetection(params.FormValues())
		if err == nil && result.Success() {
			_ = config.SaveParams(params)
		}
		return startMsg{result: result, err: err}
	}
}

// stopDetection sends the stop request
func stopDetection(client api.DetectionAPI) tea.Cmd {
	return func() tea.Msg {
		result, err := client.StopDetection()
		return stopMsg{result: result, err: err}
	}
}

// fetchParams loads form values from the server: saved user settings
// first, server defaults as fallback.
func fetchParams(client api.DetectionAPI) tea.Cmd {
	return func() tea.Msg {
		values, err := client.FetchUserConfig()
		if err != nil || len(values) == 0 {
			values, err = client.FetchDefaults()
		}
		return paramsMsg{values: values, err: err}
	}
}

// fetchAlertFiles lists the alert clips stored on the server
func fetchAlertFiles(client api.DetectionAPI) tea.Cmd {
	return func() tea.Msg {
		files, err := client.ListAlertFiles()
		return filesMsg{files: files, err: err}
	}
}

// downloadAlert downloads the selected alert clip to the download dir
func downloadAlert(client api.DetectionAPI, path, destDir string) tea.Cmd {
	return func() tea.Msg {
		dest, err := client.DownloadAlert(path, destDir)
		return downloadMsg{dest: dest, err: err}
	}
}

// loadHistory queries stored alerts for the selected time range
func loadHistory(store *storage.Storage, timeRange storage.TimeRange) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyMsg{alerts: nil}
		}
		alerts, err := store.AlertsSince(timeRange)
		return historyMsg{alerts: alerts, err: err}
	}
}

// shutdownServer asks the detection server to exit
func shutdownServer(client api.DetectionAPI) tea.Cmd {
	return func() tea.Msg {
		return shutdownMsg{err: client.Shutdown()}
	}
}
