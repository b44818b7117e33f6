// internal/api/detection.go
package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
)

// StartResult is the decoded /start_detection response
type StartResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Raw     string `json:"-"` // Verbatim body for the panel log
}

// Success kertoo hyväksyikö palvelin käynnistyksen
func (r *StartResult) Success() bool {
	return r != nil && r.Status == "success"
}

// StopResult is the decoded /stop_detection response.
// The panel treats stop as succeeding regardless of content.
type StopResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Raw     string `json:"-"`
}

// StartDetection lähettää käynnistyspyynnön multipart lomakkeena
func (c *Client) StartDetection(values map[string]string) (*StartResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	raw, err := c.postRaw("/start_detection", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	// Best effort decode: a body without a status field is not a success
	result := StartResult{Raw: string(raw)}
	_ = json.Unmarshal(raw, &result)
	return &result, nil
}

// StopDetection pysäyttää detektion
func (c *Client) StopDetection() (*StopResult, error) {
	raw, err := c.postRaw("/stop_detection", "application/json", nil)
	if err != nil {
		return nil, err
	}

	// Mikä tahansa validi JSON body kelpaa
	result := StopResult{Raw: string(raw)}
	_ = json.Unmarshal(raw, &result)
	return &result, nil
}

// Shutdown pyytää palvelinta sammumaan kokonaan
func (c *Client) Shutdown() error {
	_, err := c.postRaw("/shutdown", "application/json", nil)
	return err
}
