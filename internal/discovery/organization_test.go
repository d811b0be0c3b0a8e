package discovery

import "testing"

func TestDetectOrganizationNameFromDomainCandidate(t *testing.T) {
	best := orgCandidate{method: MethodDomain, domain: "corp.example", confidence: 85}

	org := organizationFromCandidate(best)

	if org.Name != "corp Organization" {
		t.Errorf("Name = %q, want %q", org.Name, "corp Organization")
	}
	if org.ID != "domain_corp" {
		t.Errorf("ID = %q, want %q", org.ID, "domain_corp")
	}
	if org.Method != MethodDomain || org.Confidence != 85 {
		t.Errorf("Method/Confidence = %v/%d, want domain/85", org.Method, org.Confidence)
	}
}

func TestFirstLabel(t *testing.T) {
	cases := map[string]string{
		"corp.example":     "corp",
		"sub.corp.example": "sub",
		"corp":             "corp",
		"":                 "",
	}
	for domain, want := range cases {
		if got := firstLabel(domain); got != want {
			t.Errorf("firstLabel(%q) = %q, want %q", domain, got, want)
		}
	}
}

func TestDetectOrganizationPlaceholdersAreZero(t *testing.T) {
	ctx := t.Context()
	if c := detectViaCertificate(ctx); c.confidence != 0 {
		t.Errorf("detectViaCertificate confidence = %d, want 0", c.confidence)
	}
	if c := detectViaDNS(ctx); c.confidence != 0 {
		t.Errorf("detectViaDNS confidence = %d, want 0", c.confidence)
	}
	if c := detectViaCloud(ctx); c.confidence != 0 {
		t.Errorf("detectViaCloud confidence = %d, want 0", c.confidence)
	}
}
