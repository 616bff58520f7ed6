// ABOUTME: Tests for account name handling and host description
// ABOUTME: Platform lookups are exercised through ResolveUser on the test host
package session

import (
	"testing"
)

func TestSplitAccount(t *testing.T) {
	tests := []struct {
		account    string
		wantDomain string
		wantName   string
	}{
		{`CONTOSO\jdoe`, "CONTOSO", "jdoe"},
		{`jdoe`, "", "jdoe"},
		{` WORKSTATION\admin `, "WORKSTATION", "admin"},
		{`AzureAD\Jane Doe`, "AzureAD", "Jane Doe"},
	}

	for _, tt := range tests {
		domain, name := SplitAccount(tt.account)
		if domain != tt.wantDomain || name != tt.wantName {
			t.Errorf("SplitAccount(%q) = %q, %q; want %q, %q", tt.account, domain, name, tt.wantDomain, tt.wantName)
		}
	}
}

func TestQualified(t *testing.T) {
	if got := (User{Name: "jdoe", Domain: "CONTOSO"}).Qualified(); got != `CONTOSO\jdoe` {
		t.Errorf("Qualified() = %q", got)
	}
	if got := (User{Name: "jdoe"}).Qualified(); got != "jdoe" {
		t.Errorf("Qualified() without domain = %q", got)
	}
}

func TestResolveUser(t *testing.T) {
	u, err := ResolveUser()
	if err != nil {
		t.Skipf("no user available on this host: %v", err)
	}
	if u.Name == "" {
		t.Error("resolved user should have a name")
	}
	if u.Source == "" {
		t.Error("resolved user should record its source")
	}
}

func TestMachineSummary(t *testing.T) {
	if MachineSummary() == "" {
		t.Error("MachineSummary() should never be empty")
	}
}
