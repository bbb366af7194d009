package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line. A missing file yields no
// lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Filter keeps lines at or above min. Lines that are not zerolog JSON are
// kept so nothing written by hand is hidden.
func Filter(lines []string, min zerolog.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		level, ok := lineLevel(line)
		if !ok || level >= min {
			out = append(out, line)
		}
	}
	return out
}

// Render writes lines to w in zerolog's console format.
func Render(w io.Writer, lines []string, noColor bool) error {
	console := zerolog.ConsoleWriter{Out: w, NoColor: noColor}
	for _, line := range lines {
		if _, ok := lineLevel(line); !ok {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if _, err := console.Write([]byte(line)); err != nil {
			return fmt.Errorf("render log line: %w", err)
		}
	}
	return nil
}

func lineLevel(line string) (zerolog.Level, bool) {
	var entry struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Level == "" {
		return zerolog.NoLevel, false
	}
	level, err := zerolog.ParseLevel(entry.Level)
	if err != nil {
		return zerolog.NoLevel, false
	}
	return level, true
}
