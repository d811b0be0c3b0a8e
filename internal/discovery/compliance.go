package discovery

import (
	"strings"
	"time"
)

// keyword sets lifted from tg_discovery_detect_compliance_requirements.
var (
	hipaaKeywords = []string{"hospital", "medical", "health", "clinic"}
	pciKeywords   = []string{"bank", "financial", "credit", "insurance"}
	nistKeywords  = []string{"gov", "federal", "state", "county"}
)

// inferCompliance scans the organization name and a platform-supplied list
// of install paths for regulatory category keywords, then adds GDPR when
// isEULocale reports a Europe/ zone.
func inferCompliance(orgName string, installPaths []string) ComplianceMask {
	text := strings.ToLower(orgName)
	for _, p := range installPaths {
		text += " " + strings.ToLower(p)
	}

	var mask ComplianceMask
	if containsAny(text, hipaaKeywords) {
		mask |= ComplianceHIPAA
	}
	if containsAny(text, pciKeywords) {
		mask |= CompliancePCIDSS | ComplianceSOX
	}
	if containsAny(text, nistKeywords) {
		mask |= ComplianceNIST
	}
	if isEULocale() {
		mask |= ComplianceGDPR
	}
	return mask
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// isEULocale treats an IANA zone name under "Europe/" as an EU-country signal.
// It reads the name of time.Local, which carries a zone name only when it
// was set from the TZ environment variable; a zone taken from
// /etc/localtime or from the Windows system setting is named "Local" and
// never matches. The host locale is not consulted.
func isEULocale() bool {
	return strings.HasPrefix(time.Local.String(), "Europe/")
}
