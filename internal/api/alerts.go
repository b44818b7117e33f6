// internal/api/alerts.go
package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rusenback/detpanel/internal/model"
)

// FetchAlerts hakee aktiiviset hälytykset.
// Lista korvaa aina edellisen kokonaan, ei mergeä.
func (c *Client) FetchAlerts() ([]model.Alert, error) {
	alerts := []model.Alert{}
	if err := c.getJSON("/alerts", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// ListAlertFiles hakee palvelimelle tallennetut hälytysklipit
func (c *Client) ListAlertFiles() ([]model.AlertFile, error) {
	files := []model.AlertFile{}
	if err := c.getJSON("/alert_files", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// DownloadAlert lataa hälytysklipin paikalliseen hakemistoon.
// Palauttaa kirjoitetun tiedoston polun.
func (c *Client) DownloadAlert(path, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	resp, err := c.httpc.Get(c.baseURL + "/download_alert?path=" + url.QueryEscape(path))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", path, resp.Status)
	}

	dest := filepath.Join(destDir, filepath.Base(path))
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("download %s: %w", path, err)
	}
	return dest, nil
}
