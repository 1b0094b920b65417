package provisioning

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Severity tags every console line.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Logger is the printf-style half of Observer.
type Logger interface {
	Printf(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "credentials", "zone")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"

	// EventCheckPassed indicates an informational check succeeded.
	EventCheckPassed EventType = "check.passed"
	// EventCheckFailed indicates an informational check did not succeed. Never fatal.
	EventCheckFailed EventType = "check.failed"
)

// Severity returns the console severity for events of this type.
func (t EventType) Severity() Severity {
	switch t {
	case EventPhaseFailed:
		return SeverityError
	case EventResourceExists, EventCheckFailed:
		return SeverityWarn
	default:
		return SeverityInfo
	}
}

var severityStyles = map[Severity]lipgloss.Style{
	SeverityInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
	SeverityWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
	SeverityError: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
}

// ConsoleObserver writes timestamped, severity-tagged lines through the standard log package.
type ConsoleObserver struct {
	out           *log.Logger
	color         bool
	now           func() time.Time
	contextFields map[string]string
}

// NewConsoleObserver creates an observer writing to stderr, colored when stderr is a terminal.
func NewConsoleObserver() *ConsoleObserver {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return NewConsoleObserverWithWriter(os.Stderr, color)
}

// NewConsoleObserverWithWriter creates an observer writing to w.
func NewConsoleObserverWithWriter(w io.Writer, color bool) *ConsoleObserver {
	return &ConsoleObserver{
		out:           log.New(&lockedWriter{w: w}, "", 0),
		color:         color,
		now:           time.Now,
		contextFields: make(map[string]string),
	}
}

// Printf logs at INFO.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.write(SeverityInfo, fmt.Sprintf(format, v...))
}

// Warnf logs at WARN.
func (o *ConsoleObserver) Warnf(format string, v ...any) {
	o.write(SeverityWarn, fmt.Sprintf(format, v...))
}

// Errorf logs at ERROR.
func (o *ConsoleObserver) Errorf(format string, v ...any) {
	o.write(SeverityError, fmt.Sprintf(format, v...))
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = o.now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	o.writeAt(event.Timestamp, event.Type.Severity(), formatEvent(event))
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		out:           o.out,
		color:         o.color,
		now:           o.now,
		contextFields: newFields,
	}
}

func (o *ConsoleObserver) write(sev Severity, msg string) {
	if len(o.contextFields) > 0 {
		msg = msg + " " + formatFields(o.contextFields)
	}
	o.writeAt(o.now(), sev, msg)
}

func (o *ConsoleObserver) writeAt(ts time.Time, sev Severity, msg string) {
	tag := fmt.Sprintf("%-5s", sev)
	if o.color {
		tag = severityStyles[sev].Render(tag)
	}
	o.out.Printf("%s %s %s", ts.UTC().Format(time.RFC3339), tag, msg)
}

// formatEvent formats an event for console output.
func formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		parts = append(parts, formatFields(event.Fields))
	}

	return strings.Join(parts, " ")
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fieldParts := make([]string, 0, len(keys))
	for _, k := range keys {
		fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, fields[k]))
	}
	return fmt.Sprintf("(%s)", strings.Join(fieldParts, ", "))
}

// lockedWriter serializes writes from observers sharing one destination.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceExists logs when a resource already exists. Emitted at WARN.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogCheck logs the outcome of a best-effort check.
func LogCheck(observer Observer, phase, target string, err error, detail string) {
	event := Event{
		Type:     EventCheckPassed,
		Phase:    phase,
		Resource: target,
		Message:  detail,
	}
	if err != nil {
		event.Type = EventCheckFailed
		event.Message = err.Error()
	}
	observer.Event(event)
}
