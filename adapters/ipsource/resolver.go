// Package ipsource obtains the machine's current public IPv4 address
// from an ordered list of plaintext echo services.
package ipsource

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
)

const (
	connectTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second

	// maxBodyBytes bounds the echo response read; a dotted quad is at
	// most 15 bytes, anything much larger is not an IP address.
	maxBodyBytes = 64
)

// Resolver queries echo services in configured order and returns the
// first syntactically valid IPv4 answer.
type Resolver struct {
	Services []string
	Client   *http.Client
}

// New creates a Resolver over the given service URLs with the default
// IPv4-only HTTP client.
func New(services []string) *Resolver {
	return &Resolver{Services: services, Client: newIPv4Client()}
}

// newIPv4Client dials tcp4 only, so a dual-stack echo service cannot
// answer over IPv6 and report the wrong address family.
func newIPv4Client() *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.DialContext(ctx, "tcp4", addr)
			},
		},
	}
}

// Resolve walks the service list in order and returns the first valid
// IPv4 address. One failing service falls through to the next without
// retry; only when every service fails does the call fail, with
// model.ErrAllIPServicesFailed.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	logger := logging.FromContext(ctx)
	for _, svc := range r.Services {
		ip, err := r.query(ctx, svc)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.Warn(ctx, "ip service failed", "service", svc, "error", err)
			continue
		}
		logger.Debug(ctx, "public ip resolved", "service", svc, "ip", ip)
		return ip, nil
	}
	return "", model.ErrAllIPServicesFailed
}

func (r *Resolver) query(ctx context.Context, svc string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	ip := strings.TrimSpace(string(body))
	if err := ValidateIPv4(ip); err != nil {
		return "", err
	}
	return ip, nil
}

// ValidateIPv4 checks that s is a plain dotted-quad IPv4 address.
// netip.ParseAddr already rejects leading zeros, missing octets and
// octets above 255; IPv6 text (including 4-mapped-in-6) and a zero
// first octet are rejected on top.
func ValidateIPv4(s string) error {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return fmt.Errorf("not an ip address: %q", s)
	}
	if !addr.Is4() {
		return fmt.Errorf("not an ipv4 address: %q", s)
	}
	if addr.As4()[0] == 0 {
		return fmt.Errorf("first octet must be nonzero: %q", s)
	}
	return nil
}
