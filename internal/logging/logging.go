// Package logging mirrors the standard logger into a daily log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Setup sends log output to stdout and to dir/app-YYYY-MM-DD.log, switching files
// at midnight and pruning files older than retentionDays. The returned func
// stops the rotation and closes the current file.
func Setup(dir string, retentionDays int) (func(), error) {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	currentDate := time.Now().Format(dateLayout)
	file, err := openLogFile(dir, currentDate)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	cleanupOldLogs(dir, retentionDays, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				now := time.Now()
				date := now.Format(dateLayout)
				mu.Lock()
				if date != currentDate {
					newFile, err := openLogFile(dir, date)
					if err == nil {
						log.SetOutput(io.MultiWriter(os.Stdout, newFile))
						_ = file.Close()
						file = newFile
						currentDate = date
						cleanupOldLogs(dir, retentionDays, now)
					}
				}
				mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		mu.Lock()
		log.SetOutput(os.Stdout)
		_ = file.Close()
		mu.Unlock()
	}, nil
}

func openLogFile(dir, date string) (*os.File, error) {
	filename := filepath.Join(dir, fmt.Sprintf("app-%s.log", date))
	return os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// cleanupOldLogs keeps the files of the last retentionDays days, today included.
func cleanupOldLogs(dir string, retentionDays int, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	today, _ := time.Parse(dateLayout, now.Format(dateLayout))
	cutoff := today.AddDate(0, 0, -(retentionDays - 1))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		datePart := strings.TrimSuffix(strings.TrimPrefix(name, "app-"), ".log")
		logDate, err := time.Parse(dateLayout, datePart)
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
