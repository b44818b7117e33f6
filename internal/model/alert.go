package model

// Alert edustaa yhtä palvelimen havaitsemaa hälytystä
type Alert struct {
	Timestamp string   `json:"timestamp"`
	Alerts    []string `json:"alerts"`
	ClipPath  string   `json:"path"`
	StartTime string   `json:"start_time"`
}

// Label returns a one-line summary for list rendering
func (a Alert) Label() string {
	if len(a.Alerts) == 0 {
		return a.Timestamp
	}
	s := a.Alerts[0]
	for _, extra := range a.Alerts[1:] {
		s += ", " + extra
	}
	return a.Timestamp + "  " + s
}

// AlertFile edustaa palvelimelle tallennettua hälytysklippiä
type AlertFile struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}
