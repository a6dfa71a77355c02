package naming

import "testing"

func TestFQDN(t *testing.T) {
	cases := []struct {
		name      string
		subdomain string
		zone      string
		want      string
	}{
		{"simple subdomain", "www", "example.com", "www.example.com"},
		{"apex sentinel", "@", "example.com", "example.com"},
		{"empty subdomain", "", "example.com", "example.com"},
		{"zone name as subdomain", "example.com", "example.com", "example.com"},
		{"already qualified", "www.example.com", "example.com", "www.example.com"},
		{"nested subdomain", "a.b", "example.com", "a.b.example.com"},
		{"trailing dots trimmed", "www.", "example.com.", "www.example.com"},
		{"case insensitive zone suffix", "WWW.Example.COM", "example.com", "WWW.Example.COM"},
		{"whitespace trimmed", " www ", " example.com ", "www.example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FQDN(tc.subdomain, tc.zone); got != tc.want {
				t.Errorf("FQDN(%q, %q) = %q, want %q", tc.subdomain, tc.zone, got, tc.want)
			}
		})
	}
}

func TestEqualFQDN(t *testing.T) {
	if !EqualFQDN("www.example.com", "WWW.EXAMPLE.COM") {
		t.Errorf("expected case-insensitive match")
	}
	if !EqualFQDN("www.example.com.", "www.example.com") {
		t.Errorf("expected trailing dot to be ignored")
	}
	if EqualFQDN("www.example.com", "example.com") {
		t.Errorf("expected different names to mismatch")
	}
}

func TestValidateDomain(t *testing.T) {
	valid := []string{"example.com", "sub.example.co.uk", "x.io", "my-site.example.com"}
	for _, d := range valid {
		if err := ValidateDomain(d); err != nil {
			t.Errorf("ValidateDomain(%q) = %v, want nil", d, err)
		}
	}
	invalid := []string{"", "example..com", "-bad.example.com", "bad-.example.com", "exa mple.com"}
	for _, d := range invalid {
		if err := ValidateDomain(d); err == nil {
			t.Errorf("ValidateDomain(%q) = nil, want error", d)
		}
	}
}

func TestValidateSubdomain(t *testing.T) {
	for _, s := range []string{"", "@", "www", "a.b", "_acme-challenge"} {
		if err := ValidateSubdomain(s); err != nil {
			t.Errorf("ValidateSubdomain(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"-www", "www-", "ba d"} {
		if err := ValidateSubdomain(s); err == nil {
			t.Errorf("ValidateSubdomain(%q) = nil, want error", s)
		}
	}
}
