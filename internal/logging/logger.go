package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// PlacementLog is a single scheduling-decision log entry: one row per
// request drained off the queue, whether it was placed, rejected, or
// rolled back.
type PlacementLog struct {
	Timestamp  time.Time `json:"timestamp"`
	ServerUID  string    `json:"server_uid"`
	ServerName string    `json:"server_name"`
	HostUID    string    `json:"host_uid,omitempty"`
	Outcome    string    `json:"outcome"` // placed, rejected, rolled_back
	Error      string    `json:"error,omitempty"`
	CPUCount   int       `json:"cpu_count"`
	MemorySize int64     `json:"memory_size"`
}

// Logger handles placement logging. Its clock defaults to the real wall
// clock but can be swapped for the scheduler's own clock so PlacementLog
// timestamps track simulated time rather than time.Now().
type Logger struct {
	mu      sync.Mutex
	enabled bool
	file    *os.File
	console bool
	clock   clock.Clock
}

var defaultLogger = &Logger{enabled: true, console: true, clock: clock.RealClock{}}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the log output file.
func (l *Logger) SetOutput(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = f
	return nil
}

// SetConsole enables/disables console output.
func (l *Logger) SetConsole(enabled bool) {
	l.mu.Lock()
	l.console = enabled
	l.mu.Unlock()
}

// SetClock swaps the time source used to stamp PlacementLog entries. Tying
// it to the scheduler's own clock keeps log timestamps and quantum-aligned
// decisions on the same timeline.
func (l *Logger) SetClock(c clock.Clock) {
	l.mu.Lock()
	l.clock = c
	l.mu.Unlock()
}

// Log writes a placement log entry.
func (l *Logger) Log(entry *PlacementLog) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}

	if l.clock != nil {
		entry.Timestamp = l.clock.Now()
	} else {
		entry.Timestamp = time.Now()
	}

	if l.console {
		var glyph string
		switch entry.Outcome {
		case "placed":
			glyph = "✓"
		case "rolled_back":
			glyph = "↩"
		default:
			glyph = "✗"
		}
		fmt.Printf("[placement] %s %s -> %s (%s)\n", glyph, entry.ServerName, entry.HostUID, entry.Outcome)
		if entry.Error != "" {
			fmt.Printf("[placement]   error: %s\n", entry.Error)
		}
	}

	if l.file != nil {
		data, _ := json.Marshal(entry)
		l.file.Write(append(data, '\n'))
	}
}

// Close closes the log file.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}
