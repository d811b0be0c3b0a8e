package discovery

import "testing"

func TestInferComplianceHIPAA(t *testing.T) {
	mask := inferCompliance("Riverside Medical Clinic", nil)
	if mask&ComplianceHIPAA == 0 {
		t.Errorf("expected HIPAA bit set, got %b", mask)
	}
}

func TestInferCompliancePCIImpliesSOX(t *testing.T) {
	mask := inferCompliance("First National Bank", nil)
	if mask&CompliancePCIDSS == 0 || mask&ComplianceSOX == 0 {
		t.Errorf("expected PCI-DSS and SOX bits set, got %b", mask)
	}
}

func TestInferComplianceNIST(t *testing.T) {
	mask := inferCompliance("", []string{"/opt/county-gov-agent"})
	if mask&ComplianceNIST == 0 {
		t.Errorf("expected NIST bit set from install path, got %b", mask)
	}
}

func TestInferComplianceNoMatch(t *testing.T) {
	mask := inferCompliance("Acme Widgets", []string{"/opt/acme"})
	if mask&(CompliancePCIDSS|ComplianceHIPAA|ComplianceNIST|ComplianceSOX) != 0 {
		t.Errorf("expected no keyword bits set, got %b", mask)
	}
}
