// internal/api/logs.go
package api

// LogsResult is the decoded /get_logs response
type LogsResult struct {
	Logs      []string `json:"logs"`
	IsRunning bool     `json:"is_running"`
}

// FetchLogs hakee detektiolokin palvelimelta.
// Puuttuva logs kenttä tarkoittaa tyhjää listaa.
func (c *Client) FetchLogs() (*LogsResult, error) {
	var result LogsResult
	if err := c.getJSON("/get_logs", &result); err != nil {
		return nil, err
	}
	if result.Logs == nil {
		result.Logs = []string{}
	}
	return &result, nil
}
