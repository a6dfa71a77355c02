package naming

// Package naming builds the fully qualified record names targeted by a run.
// Keeping the rules here allows future changes (trailing-dot policy, IDN
// handling) without touching call sites.

import (
	"fmt"
	"strings"
)

// Apex is the sentinel subdomain selecting the zone itself.
const Apex = "@"

// FQDN converts a subdomain to its fully qualified record name within a
// zone (e.g., "www" -> "www.example.com", "@" -> "example.com"). A name
// already qualified with the zone passes through unchanged.
func FQDN(subdomain, zone string) string {
	sub := strings.TrimSuffix(strings.TrimSpace(subdomain), ".")
	z := strings.TrimSuffix(strings.TrimSpace(zone), ".")
	if sub == "" || sub == Apex || strings.EqualFold(sub, z) {
		return z
	}
	if strings.HasSuffix(strings.ToLower(sub), "."+strings.ToLower(z)) {
		return sub
	}
	return sub + "." + z
}

// EqualFQDN reports whether two record names refer to the same FQDN.
// DNS names compare case-insensitively and a trailing dot is not
// significant.
func EqualFQDN(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "."), strings.TrimSuffix(b, "."))
}

// ValidateDomain checks that a zone or record name is a syntactically
// valid DNS name: dot-separated labels of letters, digits and hyphens,
// each 1-63 characters, not hyphen-edged.
func ValidateDomain(name string) error {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return fmt.Errorf("domain must not be empty")
	}
	if len(name) > 253 {
		return fmt.Errorf("domain exceeds 253 characters")
	}
	for _, label := range strings.Split(name, ".") {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("invalid domain %q: %w", name, err)
		}
	}
	return nil
}

// ValidateSubdomain checks a subdomain value from configuration.
// The apex sentinel and the empty string are valid.
func ValidateSubdomain(sub string) error {
	if sub == "" || sub == Apex {
		return nil
	}
	for _, label := range strings.Split(strings.TrimSuffix(sub, "."), ".") {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("invalid subdomain %q: %w", sub, err)
		}
	}
	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("empty label")
	}
	if len(label) > 63 {
		return fmt.Errorf("label %q exceeds 63 characters", label)
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return fmt.Errorf("label %q starts or ends with a hyphen", label)
	}
	for _, c := range label {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			continue
		}
		return fmt.Errorf("label %q contains invalid character %q", label, c)
	}
	return nil
}
