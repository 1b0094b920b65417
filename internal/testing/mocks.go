package testing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/mock"

	"github.com/imamik/ocpctl/internal/platform/awscloud"
	"github.com/imamik/ocpctl/internal/platform/download"
	"github.com/imamik/ocpctl/internal/platform/executor"
	"github.com/imamik/ocpctl/internal/provisioning"
)

// MockZoneManager is a testify mock of awscloud.ZoneManager.
type MockZoneManager struct {
	mock.Mock
}

// FindZone implements awscloud.ZoneManager.
func (m *MockZoneManager) FindZone(ctx context.Context, domain string) (*awscloud.Zone, error) {
	args := m.Called(ctx, domain)
	if fn, ok := args.Get(0).(func(context.Context, string) *awscloud.Zone); ok {
		return fn(ctx, domain), args.Error(1)
	}
	zone, _ := args.Get(0).(*awscloud.Zone)
	return zone, args.Error(1)
}

// CreateZone implements awscloud.ZoneManager.
func (m *MockZoneManager) CreateZone(ctx context.Context, domain, callerReference string) (*awscloud.Zone, error) {
	args := m.Called(ctx, domain, callerReference)
	zone, _ := args.Get(0).(*awscloud.Zone)
	return zone, args.Error(1)
}

// GetZone implements awscloud.ZoneManager.
func (m *MockZoneManager) GetZone(ctx context.Context, id string) (*awscloud.Zone, error) {
	args := m.Called(ctx, id)
	zone, _ := args.Get(0).(*awscloud.Zone)
	return zone, args.Error(1)
}

// MockIdentityVerifier is a testify mock of awscloud.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

// CallerIdentity implements awscloud.IdentityVerifier.
func (m *MockIdentityVerifier) CallerIdentity(ctx context.Context) (*awscloud.Identity, error) {
	args := m.Called(ctx)
	id, _ := args.Get(0).(*awscloud.Identity)
	return id, args.Error(1)
}

// MockArchiver is a testify mock of awscloud.Archiver.
type MockArchiver struct {
	mock.Mock
}

// Archive implements awscloud.Archiver.
func (m *MockArchiver) Archive(ctx context.Context, bucket, key string, data []byte) error {
	return m.Called(ctx, bucket, key, data).Error(0)
}

// FakeCloud is an awscloud.Factory handing out the embedded mocks.
type FakeCloud struct {
	Identity *MockIdentityVerifier
	Zones    *MockZoneManager
	Archive  *MockArchiver

	// ConfigErr, when set, is returned by Config.
	ConfigErr error

	mu      sync.Mutex
	Configs []awscloud.Credentials
}

// NewFakeCloud returns a factory whose identity probe succeeds.
func NewFakeCloud() *FakeCloud {
	c := &FakeCloud{
		Identity: new(MockIdentityVerifier),
		Zones:    new(MockZoneManager),
		Archive:  new(MockArchiver),
	}
	c.Identity.On("CallerIdentity", mock.Anything).Return(&awscloud.Identity{
		Account: "123456789012",
		ARN:     "arn:aws:iam::123456789012:user/ops",
		UserID:  "AIDAEXAMPLE",
	}, nil).Maybe()
	return c
}

// Config implements awscloud.Factory.
func (c *FakeCloud) Config(_ context.Context, creds awscloud.Credentials) (aws.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Configs = append(c.Configs, creds)
	if c.ConfigErr != nil {
		return aws.Config{}, c.ConfigErr
	}
	return aws.Config{Region: creds.Region}, nil
}

// IdentityVerifier implements awscloud.Factory.
func (c *FakeCloud) IdentityVerifier(aws.Config) awscloud.IdentityVerifier { return c.Identity }

// ZoneManager implements awscloud.Factory.
func (c *FakeCloud) ZoneManager(aws.Config) awscloud.ZoneManager { return c.Zones }

// Archiver implements awscloud.Factory.
func (c *FakeCloud) Archiver(aws.Config) awscloud.Archiver { return c.Archive }

// RecordingObserver is a provisioning.Observer that keeps every line and event.
type RecordingObserver struct {
	mu       sync.Mutex
	events   []provisioning.Event
	messages []string
}

// NewRecordingObserver creates an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (o *RecordingObserver) add(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
}

// Printf implements provisioning.Observer.
func (o *RecordingObserver) Printf(format string, v ...any) { o.add(fmt.Sprintf(format, v...)) }

// Warnf implements provisioning.Observer.
func (o *RecordingObserver) Warnf(format string, v ...any) {
	o.add("WARN " + fmt.Sprintf(format, v...))
}

// Errorf implements provisioning.Observer.
func (o *RecordingObserver) Errorf(format string, v ...any) {
	o.add("ERROR " + fmt.Sprintf(format, v...))
}

// Event implements provisioning.Observer.
func (o *RecordingObserver) Event(e provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

// WithFields implements provisioning.Observer. Fields are dropped.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer { return o }

// Events returns a copy of the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), o.events...)
}

// EventsOf returns the recorded events of type t.
func (o *RecordingObserver) EventsOf(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns a copy of the recorded log lines.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// Transcript joins every log line and event message.
func (o *RecordingObserver) Transcript() string {
	var b strings.Builder
	for _, m := range o.Messages() {
		b.WriteString(m)
		b.WriteByte('\n')
	}
	for _, e := range o.Events() {
		fmt.Fprintf(&b, "%s %s %s %s\n", e.Type, e.Phase, e.Resource, e.Message)
	}
	return b.String()
}

// RunFunc scripts the behavior of one fake command.
type RunFunc func(cmd executor.Command) ([]byte, error)

// FakeRunner records commands and answers them from Handlers keyed by
// binary base name. Unknown commands succeed with no output.
type FakeRunner struct {
	mu       sync.Mutex
	Handlers map[string]RunFunc
	Commands []executor.Command
}

// NewFakeRunner creates a runner with no handlers.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Handlers: map[string]RunFunc{}}
}

// On registers fn for commands whose binary base name is name.
func (r *FakeRunner) On(name string, fn RunFunc) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Handlers[name] = fn
	return r
}

func (r *FakeRunner) dispatch(cmd executor.Command) ([]byte, error) {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	fn := r.Handlers[baseName(cmd.Name)]
	r.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(cmd)
}

// Run implements executor.Runner. Output is written to cmd.Stdout.
func (r *FakeRunner) Run(ctx context.Context, cmd executor.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := r.dispatch(cmd)
	if cmd.Stdout != nil && len(out) > 0 {
		_, _ = cmd.Stdout.Write(out)
	}
	return err
}

// Output implements executor.Runner.
func (r *FakeRunner) Output(ctx context.Context, cmd executor.Command) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.dispatch(cmd)
}

// Names returns the base names of every command run so far.
func (r *FakeRunner) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		names = append(names, baseName(c.Name))
	}
	return names
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// FakeFetcher serves bodies from memory. Unknown URLs answer 404.
type FakeFetcher struct {
	mu     sync.Mutex
	Bodies map[string][]byte
	URLs   []string
}

// NewFakeFetcher creates a fetcher with no bodies.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{Bodies: map[string][]byte{}}
}

// Fetch implements download.Fetcher.
func (f *FakeFetcher) Fetch(ctx context.Context, url string, dst io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.URLs = append(f.URLs, url)
	body, ok := f.Bodies[url]
	f.mu.Unlock()
	if !ok {
		return &download.StatusError{URL: url, StatusCode: http.StatusNotFound}
	}
	_, err := io.Copy(dst, bytes.NewReader(body))
	return err
}

// FakeProber answers NS probes. Nameservers listed in Failures fail every attempt.
type FakeProber struct {
	mu       sync.Mutex
	Records  []string
	Failures map[string]error
	Calls    map[string]int
}

// NewFakeProber returns a prober answering records for every nameserver.
func NewFakeProber(records ...string) *FakeProber {
	return &FakeProber{Records: records, Failures: map[string]error{}, Calls: map[string]int{}}
}

// Probe implements dnsprobe.Prober.
func (p *FakeProber) Probe(ctx context.Context, nameserver, _ string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls[nameserver]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := p.Failures[nameserver]; ok {
		return nil, err
	}
	return append([]string(nil), p.Records...), nil
}

// TotalCalls counts probes across all nameservers.
func (p *FakeProber) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.Calls {
		n += c
	}
	return n
}
