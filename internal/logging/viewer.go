package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// Entry is one parsed JSON log line.
type Entry struct {
	Time  time.Time
	Level string
	Msg   string
	Attrs map[string]any
	// Raw is the original line, printed as-is when it is not JSON.
	Raw     string
	IsValid bool
}

// ViewerConfig configures the log viewer.
type ViewerConfig struct {
	// Level drops entries below it. Empty shows everything.
	Level   string
	Pattern *regexp.Regexp
	NoColor bool
}

// Viewer reads, filters and prints log files.
type Viewer struct {
	config ViewerConfig
	out    io.Writer
	levels map[string]lipgloss.Style
}

// NewViewer creates a new log viewer writing to out.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	v := &Viewer{config: cfg, out: out, levels: map[string]lipgloss.Style{}}
	if !cfg.NoColor {
		v.levels = map[string]lipgloss.Style{
			"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
			"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		}
	}
	return v
}

// Tail returns the last n matching entries of the file at path.
func (v *Viewer) Tail(path string, n int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entry := parseLine(line)
		if !v.matches(entry) {
			continue
		}
		entries = append(entries, entry)
		if n > 0 && len(entries) > n {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return entries, nil
}

// Follow calls fn for every matching entry appended to path until ctx ends.
// Rotation is handled by reopening the file when it is recreated.
func (v *Viewer) Follow(ctx context.Context, path string, fn func(Entry)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so a rotated-in file is seen as Create
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	reader := bufio.NewReader(f)
	drain := func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				// Partial line: rewind so it is read whole next time
				if len(line) > 0 {
					_, _ = f.Seek(-int64(len(line)), io.SeekCurrent)
					reader.Reset(f)
				}
				return
			}
			line = strings.TrimSuffix(line, "\n")
			if line == "" {
				continue
			}
			if entry := parseLine(line); v.matches(entry) {
				fn(entry)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			switch {
			case event.Op&fsnotify.Write != 0:
				drain()
			case event.Op&fsnotify.Create != 0:
				drain()
				nf, err := os.Open(path)
				if err != nil {
					continue
				}
				_ = f.Close()
				f = nf
				reader.Reset(f)
				drain()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}

// FormatEntry renders an entry as "15:04:05.000 LEVEL msg key=value ...".
// Attributes are sorted by key.
func (v *Viewer) FormatEntry(e Entry) string {
	if !e.IsValid {
		return e.Raw
	}

	level := strings.ToUpper(e.Level)
	if len(level) > 5 {
		level = level[:5]
	}
	padded := fmt.Sprintf("%-5s", level)
	if st, ok := v.levels[level]; ok {
		padded = st.Render(padded)
	}

	var sb strings.Builder
	sb.WriteString(e.Time.Format("15:04:05.000"))
	sb.WriteByte(' ')
	sb.WriteString(padded)
	sb.WriteByte(' ')
	sb.WriteString(e.Msg)

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, e.Attrs[k])
	}
	return sb.String()
}

// Print writes entries to the viewer output.
func (v *Viewer) Print(entries []Entry) {
	for _, e := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(e))
	}
}

func parseLine(line string) Entry {
	entry := Entry{Raw: line}

	var data map[string]any
	if err := json.Unmarshal([]byte(line), &data); err != nil {
		return entry
	}
	entry.IsValid = true

	if t, ok := data["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			entry.Time = parsed
		}
	}
	entry.Level, _ = data["level"].(string)
	entry.Msg, _ = data["msg"].(string)

	delete(data, "time")
	delete(data, "level")
	delete(data, "msg")
	entry.Attrs = data
	return entry
}

func (v *Viewer) matches(e Entry) bool {
	if v.config.Level != "" && e.IsValid {
		if LevelFromString(e.Level) < LevelFromString(v.config.Level) {
			return false
		}
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(e.Raw) {
		return false
	}
	return true
}
