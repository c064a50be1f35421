package registry

import (
	"context"
	"testing"
)

func TestValidSIRENChecksum(t *testing.T) {
	cases := []struct {
		siren string
		want  bool
	}{
		{"732829320", true},
		{"732829321", false},
		{"12345678", false},
		{"abcdefghi", false},
	}
	for _, tc := range cases {
		if got := ValidSIRENChecksum(tc.siren); got != tc.want {
			t.Fatalf("ValidSIRENChecksum(%q) = %v, want %v", tc.siren, got, tc.want)
		}
	}
}

func TestValidSIRETChecksum(t *testing.T) {
	if !ValidSIRETChecksum("73282932000020") {
		t.Fatalf("expected valid siret")
	}
	if ValidSIRETChecksum("73282932000021") {
		t.Fatalf("expected invalid siret")
	}
	if ValidSIRETChecksum("732829320") {
		t.Fatalf("expected invalid length to fail")
	}
}

func TestVATNumberFromSIREN(t *testing.T) {
	if got := VATNumberFromSIREN("732829320"); got != "FR43732829320" {
		t.Fatalf("unexpected vat number %q", got)
	}
}

func TestLookupCompanyOffline(t *testing.T) {
	c := NewINSEEClient()
	c.consumerKey = ""
	c.consumerSecret = ""

	info, err := c.LookupCompany(context.Background(), "732829320")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SIREN != "732829320" || info.VATNumber != "FR43732829320" || !info.IsActive {
		t.Fatalf("unexpected offline info: %+v", info)
	}

	if _, err := c.LookupCompany(context.Background(), "732829321"); err == nil {
		t.Fatalf("expected checksum rejection")
	}
}
