package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rusenback/detpanel/internal/model"
)

// TimeRange represents different time window options
type TimeRange int

const (
	Range30Min TimeRange = iota
	Range1Hour
	Range6Hour
	Range1Day
	Range1Week
)

func (t TimeRange) String() string {
	switch t {
	case Range30Min:
		return "30min"
	case Range1Hour:
		return "1hour"
	case Range6Hour:
		return "6hours"
	case Range1Day:
		return "1day"
	case Range1Week:
		return "1week"
	default:
		return "unknown"
	}
}

// Duration returns the time duration for the range
func (t TimeRange) Duration() time.Duration {
	switch t {
	case Range30Min:
		return 30 * time.Minute
	case Range1Hour:
		return 1 * time.Hour
	case Range6Hour:
		return 6 * time.Hour
	case Range1Day:
		return 24 * time.Hour
	case Range1Week:
		return 7 * 24 * time.Hour
	default:
		return 30 * time.Minute
	}
}

// LogRecord represents a panel log line to be written
type LogRecord struct {
	Session   string
	Timestamp time.Time
	Line      string
	Origin    string
}

// AlertRecord represents one alert snapshot to be written
type AlertRecord struct {
	Timestamp time.Time
	Alert     model.Alert
}

// Storage handles persistent panel history
type Storage struct {
	db        *sql.DB
	logChan   chan *LogRecord
	alertChan chan *AlertRecord
	closeChan chan struct{}
}

// NewStorage creates a new storage instance under ~/.detpanel
func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewStorageAt(filepath.Join(homeDir, ".detpanel", "history.db"))
}

// NewStorageAt opens storage at the given database path
func NewStorageAt(dbPath string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	storage := &Storage{
		db:        db,
		logChan:   make(chan *LogRecord, 1000),
		alertChan: make(chan *AlertRecord, 1000),
		closeChan: make(chan struct{}),
	}

	// Start background writer
	go storage.writer()

	// Start cleanup routine
	go storage.cleanup()

	return storage, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS panel_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		line TEXT NOT NULL,
		origin TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_logs_time
	ON panel_logs(timestamp);

	CREATE TABLE IF NOT EXISTS alert_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		alert_time TEXT,
		alerts TEXT,
		clip_path TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_time
	ON alert_history(timestamp);
	`

	_, err := db.Exec(schema)
	return err
}

// WriteLog queues a log line for writing
func (s *Storage) WriteLog(record *LogRecord) {
	select {
	case s.logChan <- record:
		// Successfully queued
	default:
		// Channel full, drop silently to avoid blocking the UI loop
	}
}

// WriteAlert queues an alert snapshot for writing
func (s *Storage) WriteAlert(record *AlertRecord) {
	select {
	case s.alertChan <- record:
	default:
		// Channel full, drop silently
	}
}

// writer runs in background and batch writes to database
func (s *Storage) writer() {
	logBuffer := make([]*LogRecord, 0, 100)
	alertBuffer := make([]*AlertRecord, 0, 100)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	flush := func() {
		if len(logBuffer) > 0 {
			s.batchWriteLogs(logBuffer)
			logBuffer = logBuffer[:0]
		}
		if len(alertBuffer) > 0 {
			s.batchWriteAlerts(alertBuffer)
			alertBuffer = alertBuffer[:0]
		}
	}

	for {
		select {
		case record := <-s.logChan:
			logBuffer = append(logBuffer, record)
			if len(logBuffer) >= 50 {
				s.batchWriteLogs(logBuffer)
				logBuffer = logBuffer[:0]
			}

		case record := <-s.alertChan:
			alertBuffer = append(alertBuffer, record)
			if len(alertBuffer) >= 50 {
				s.batchWriteAlerts(alertBuffer)
				alertBuffer = alertBuffer[:0]
			}

		case <-ticker.C:
			// Periodic flush every 5 seconds
			flush()

		case <-s.closeChan:
			// Final flush on close
			flush()
			return
		}
	}
}

// batchWriteLogs writes a batch of log lines to the database
func (s *Storage) batchWriteLogs(records []*LogRecord) {
	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO panel_logs (session, timestamp, line, origin)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(
			record.Session,
			record.Timestamp.Unix(),
			record.Line,
			record.Origin,
		)
		if err != nil {
			continue
		}
	}

	tx.Commit()
}

// batchWriteAlerts writes a batch of alert snapshots to the database
func (s *Storage) batchWriteAlerts(records []*AlertRecord) {
	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO alert_history (timestamp, alert_time, alerts, clip_path)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return
	}
	defer stmt.Close()

	for _, record := range records {
		alerts, err := json.Marshal(record.Alert.Alerts)
		if err != nil {
			continue
		}
		_, err = stmt.Exec(
			record.Timestamp.Unix(),
			record.Alert.Timestamp,
			string(alerts),
			record.Alert.ClipPath,
		)
		if err != nil {
			continue
		}
	}

	tx.Commit()
}

// RecentLogs retrieves the last n log lines in chronological order
func (s *Storage) RecentLogs(n int) ([]model.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT timestamp, line, origin FROM panel_logs
		ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		var timestamp int64
		var line, origin string
		if err := rows.Scan(&timestamp, &line, &origin); err != nil {
			continue
		}
		entries = append(entries, model.LogEntry{
			Timestamp: time.Unix(timestamp, 0),
			Message:   line,
			Origin:    origin,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows come newest first, flip to arrival order
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// AlertsSince retrieves stored alerts within the time range, newest first
func (s *Storage) AlertsSince(timeRange TimeRange) ([]model.Alert, error) {
	cutoff := time.Now().Add(-timeRange.Duration()).Unix()

	rows, err := s.db.Query(`
		SELECT alert_time, alerts, clip_path FROM alert_history
		WHERE timestamp > ?
		ORDER BY timestamp DESC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var alertTime, alertsJSON, clipPath string
		if err := rows.Scan(&alertTime, &alertsJSON, &clipPath); err != nil {
			continue
		}

		alert := model.Alert{
			Timestamp: alertTime,
			ClipPath:  clipPath,
		}
		if err := json.Unmarshal([]byte(alertsJSON), &alert.Alerts); err != nil {
			continue
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// cleanup removes old data periodically
func (s *Storage) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Delete data older than 7 days in batches to avoid locking
			cutoff := time.Now().Add(-7 * 24 * time.Hour).Unix()
			s.batchDelete("panel_logs", cutoff)
			s.batchDelete("alert_history", cutoff)

		case <-s.closeChan:
			return
		}
	}
}

// batchDelete removes old records in batches to prevent long-running locks
func (s *Storage) batchDelete(table string, cutoffTimestamp int64) {
	const batchSize = 1000
	for {
		result, err := s.db.Exec(
			"DELETE FROM "+table+" WHERE id IN (SELECT id FROM "+table+" WHERE timestamp < ? LIMIT ?)",
			cutoffTimestamp,
			batchSize,
		)
		if err != nil {
			return
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil || rowsAffected == 0 {
			// No more rows to delete
			return
		}

		// Small sleep to avoid overwhelming the database
		time.Sleep(100 * time.Millisecond)
	}
}

// Close closes the storage
func (s *Storage) Close() error {
	close(s.closeChan)
	time.Sleep(100 * time.Millisecond) // Allow goroutines to finish
	return s.db.Close()
}
