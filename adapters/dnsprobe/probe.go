// Package dnsprobe answers what public DNS currently serves for a name.
// It queries through the system resolver and is advisory only; sync
// outcomes never depend on it.
package dnsprobe

import (
	"context"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/miekg/dns"
)

const (
	fallbackServer = "1.1.1.1"
	fallbackPort   = "53"
	queryTimeout   = 5 * time.Second
)

// Probe queries A records through a single DNS server.
type Probe struct {
	client *dns.Client
	server string
}

// New returns a Probe using the first nameserver from /etc/resolv.conf,
// falling back to 1.1.1.1:53 when none is configured.
func New() *Probe {
	return &Probe{client: &dns.Client{Timeout: queryTimeout}}
}

// NewWithServer returns a Probe bound to an explicit host:port server.
func NewWithServer(addr string) *Probe {
	return &Probe{client: &dns.Client{Timeout: queryTimeout}, server: addr}
}

// Drift is the result of comparing DNS answers against an expected
// address. Any answer matching Want counts as in sync; multiple A
// records are normal while a change propagates.
type Drift struct {
	FQDN    string
	Want    string
	Answers []string
	TTL     time.Duration
	InSync  bool
}

// Check resolves fqdn and reports whether any answer matches want.
func (p *Probe) Check(ctx context.Context, fqdn, want string) (*Drift, error) {
	addrs, ttl, err := p.LookupA(ctx, fqdn)
	if err != nil {
		return nil, err
	}
	d := &Drift{FQDN: fqdn, Want: want, Answers: addrs, TTL: ttl}
	for _, a := range addrs {
		if a == want {
			d.InSync = true
			break
		}
	}
	return d, nil
}

// LookupA returns the A record addresses served for fqdn and the
// minimum TTL among them. A name with no A records (including
// NXDOMAIN) yields an empty slice, not an error.
func (p *Probe) LookupA(ctx context.Context, fqdn string) ([]string, time.Duration, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(fqdn), dns.TypeA)

	r, _, err := p.client.ExchangeContext(ctx, m, p.serverAddr())
	if err != nil {
		return nil, 0, fmt.Errorf("dns query for %s failed: %w", fqdn, err)
	}
	if r.Rcode == dns.RcodeNameError {
		return nil, 0, nil
	}
	if r.Rcode != dns.RcodeSuccess {
		return nil, 0, fmt.Errorf("dns query for %s failed: %s", fqdn, dns.RcodeToString[r.Rcode])
	}

	var addrs []string
	minTTL := uint32(0)
	for _, ans := range r.Answer {
		a, ok := ans.(*dns.A)
		if !ok {
			continue
		}
		addrs = append(addrs, a.A.String())
		if minTTL == 0 || a.Hdr.Ttl < minTTL {
			minTTL = a.Hdr.Ttl
		}
	}
	sort.Strings(addrs)
	return addrs, time.Duration(minTTL) * time.Second, nil
}

func (p *Probe) serverAddr() string {
	if p.server != "" {
		return p.server
	}
	cfg, _ := dns.ClientConfigFromFile("/etc/resolv.conf")
	if cfg == nil || len(cfg.Servers) == 0 {
		cfg = &dns.ClientConfig{Servers: []string{fallbackServer}, Port: fallbackPort}
	}
	p.server = net.JoinHostPort(cfg.Servers[0], cfg.Port)
	return p.server
}
