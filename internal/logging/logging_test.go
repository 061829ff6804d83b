package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestCleanupOldLogsKeepsRetentionWindow(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	touch(t, dir, "app-2026-03-10.log")
	touch(t, dir, "app-2026-03-08.log")
	touch(t, dir, "app-2026-03-07.log")
	touch(t, dir, "app-2026-01-01.log")
	touch(t, dir, "app-garbage.log")
	touch(t, dir, "other.txt")

	cleanupOldLogs(dir, 3, now)

	for _, name := range []string{"app-2026-03-10.log", "app-2026-03-08.log", "app-garbage.log", "other.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to be kept: %v", name, err)
		}
	}
	for _, name := range []string{"app-2026-03-07.log", "app-2026-01-01.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be removed, stat err=%v", name, err)
		}
	}
}

func TestSetupWritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	closeLog, err := Setup(dir, 7)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Printf("hello from the office")
	closeLog()

	name := filepath.Join(dir, "app-"+time.Now().Format(dateLayout)+".log")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from the office") {
		t.Fatalf("log line missing, got %q", data)
	}
}
