// Package dnsprobe asks a specific nameserver which NS records it serves for a domain.
package dnsprobe

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Prober queries one nameserver directly.
type Prober interface {
	Probe(ctx context.Context, nameserver, domain string) ([]string, error)
}

// NSProber sends non-recursive NS queries over UDP.
type NSProber struct {
	client *dns.Client
	port   string
}

// Option configures an NSProber.
type Option func(*NSProber)

// WithPort overrides the destination port (53).
func WithPort(port string) Option {
	return func(p *NSProber) {
		p.port = port
	}
}

// New creates a prober whose queries time out after timeout.
func New(timeout time.Duration, opts ...Option) *NSProber {
	p := &NSProber{
		client: &dns.Client{Net: "udp", Timeout: timeout},
		port:   "53",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe returns the sorted NS targets nameserver answers for domain.
// A non-success rcode or an empty answer is an error.
func (p *NSProber) Probe(ctx context.Context, nameserver, domain string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeNS)
	msg.RecursionDesired = false

	addr := net.JoinHostPort(strings.TrimSuffix(nameserver, "."), p.port)
	resp, _, err := p.client.ExchangeContext(ctx, msg, addr)
	if err != nil {
		return nil, fmt.Errorf("NS query to %s failed: %w", addr, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("NS query to %s returned %s", addr, dns.RcodeToString[resp.Rcode])
	}

	var records []string
	for _, rr := range append(resp.Answer, resp.Ns...) {
		if ns, ok := rr.(*dns.NS); ok {
			records = append(records, strings.TrimSuffix(ns.Ns, "."))
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s returned no NS records for %s", addr, domain)
	}
	sort.Strings(records)
	return records, nil
}
