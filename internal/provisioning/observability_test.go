package provisioning

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	mu       sync.Mutex
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) Printf(format string, v ...any) { m.record(fmt.Sprintf(format, v...)) }
func (m *MockObserver) Warnf(format string, v ...any)  { m.record("WARN " + fmt.Sprintf(format, v...)) }
func (m *MockObserver) Errorf(format string, v ...any) { m.record("ERROR " + fmt.Sprintf(format, v...)) }

func (m *MockObserver) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	return m
}

func (m *MockObserver) eventTypes() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]EventType, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}

func fixedObserver(buf *bytes.Buffer) *ConsoleObserver {
	o := NewConsoleObserverWithWriter(buf, false)
	o.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return o
}

func TestConsoleObserver_Printf(t *testing.T) {
	var buf bytes.Buffer
	fixedObserver(&buf).Printf("hello %s", "world")
	assert.Equal(t, "2026-01-02T03:04:05Z INFO  hello world\n", buf.String())
}

func TestConsoleObserver_Severities(t *testing.T) {
	var buf bytes.Buffer
	o := fixedObserver(&buf)
	o.Warnf("careful")
	o.Errorf("broken")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-01-02T03:04:05Z WARN  careful", lines[0])
	assert.Equal(t, "2026-01-02T03:04:05Z ERROR broken", lines[1])
}

func TestConsoleObserver_Event(t *testing.T) {
	var buf bytes.Buffer
	o := fixedObserver(&buf)
	o.Event(Event{
		Type:     EventResourceExists,
		Phase:    "zone",
		Resource: "example.test.",
		Message:  "hosted zone already exists",
		Fields:   map[string]string{"type": "hosted zone", "id": "Z1"},
	})

	assert.Equal(t, "2026-01-02T03:04:05Z WARN  resource.exists [zone] resource=example.test. hosted zone already exists (id=Z1, type=hosted zone)\n", buf.String())
}

func TestConsoleObserver_WithFields(t *testing.T) {
	var buf bytes.Buffer
	o := fixedObserver(&buf).WithFields(map[string]string{"run": "dns"})
	o.Printf("message")
	o.Event(Event{Type: EventPhaseStarted, Phase: "zone", Message: "starting"})

	out := buf.String()
	assert.Contains(t, out, "message (run=dns)")
	assert.Contains(t, out, "phase.started [zone] starting (run=dns)")
}

func TestConsoleObserver_ColorTags(t *testing.T) {
	var buf bytes.Buffer
	o := NewConsoleObserverWithWriter(&buf, true)
	o.Errorf("x")
	assert.Contains(t, buf.String(), "ERROR")
}

func TestEventType_Severity(t *testing.T) {
	tests := []struct {
		eventType EventType
		want      Severity
	}{
		{EventPhaseStarted, SeverityInfo},
		{EventPhaseCompleted, SeverityInfo},
		{EventPhaseFailed, SeverityError},
		{EventResourceCreating, SeverityInfo},
		{EventResourceCreated, SeverityInfo},
		{EventResourceExists, SeverityWarn},
		{EventCheckPassed, SeverityInfo},
		{EventCheckFailed, SeverityWarn},
	}
	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.eventType.Severity())
		})
	}
}

func TestLogHelpers(t *testing.T) {
	m := NewMockObserver()

	LogPhaseStart(m, "zone")
	LogPhaseComplete(m, "zone", 1500*time.Millisecond)
	LogPhaseFailed(m, "zone", errors.New("boom"))
	LogResourceCreating(m, "zone", "hosted zone", "example.test.")
	LogResourceCreated(m, "zone", "hosted zone", "example.test.", "Z1")
	LogResourceExists(m, "zone", "hosted zone", "example.test.", "Z1")
	LogCheck(m, "propagation", "ns-1", nil, "delegation visible")
	LogCheck(m, "propagation", "ns-2", errors.New("timeout"), "")

	assert.Equal(t, []EventType{
		EventPhaseStarted,
		EventPhaseCompleted,
		EventPhaseFailed,
		EventResourceCreating,
		EventResourceCreated,
		EventResourceExists,
		EventCheckPassed,
		EventCheckFailed,
	}, m.eventTypes())

	assert.Equal(t, "completed in 1.5s", m.events[1].Message)
	assert.Equal(t, "failed: boom", m.events[2].Message)
	assert.Equal(t, "Z1", m.events[4].Fields["id"])
	assert.Equal(t, "timeout", m.events[7].Message)
	assert.Equal(t, "ns-2", m.events[7].Resource)
}
