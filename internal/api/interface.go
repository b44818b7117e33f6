// internal/api/interface.go
package api

import "github.com/rusenback/detpanel/internal/model"

// DetectionAPI interface mahdollistaa mockauksen testeissä
type DetectionAPI interface {
	StartDetection(values map[string]string) (*StartResult, error)
	StopDetection() (*StopResult, error)
	FetchLogs() (*LogsResult, error)
	FetchAlerts() ([]model.Alert, error)
	FetchDefaults() (map[string]string, error)
	FetchUserConfig() (map[string]string, error)
	ListAlertFiles() ([]model.AlertFile, error)
	DownloadAlert(path, destDir string) (string, error)
	Shutdown() error
}

// Varmista että Client toteuttaa interfacen
var _ DetectionAPI = (*Client)(nil)
