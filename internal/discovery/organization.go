package discovery

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/bgthreatai/threatguard-agent/internal/wmi"
)

type orgCandidate struct {
	method     DetectionMethod
	domain     string
	confidence int
}

// DetectOrganization evaluates the ordered method list from
// original_source's tg_discovery_detect_organization, keeping the
// highest-confidence candidate, and falls back to the Unknown org.
func DetectOrganization(ctx context.Context) Organization {
	candidates := []orgCandidate{
		detectViaDomain(ctx),
		detectViaCertificate(ctx),
		detectViaDNS(ctx),
		detectViaCloud(ctx),
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.confidence > best.confidence {
			best = c
		}
	}

	if best.confidence == 0 {
		return Organization{ID: "unknown", Name: "Unknown Organization", Method: MethodNone, Confidence: 0}
	}

	return organizationFromCandidate(best)
}

// organizationFromCandidate names the organization after the first label
// of the winning candidate's domain, used verbatim.
func organizationFromCandidate(best orgCandidate) Organization {
	label := firstLabel(best.domain)
	return Organization{
		ID:         "domain_" + label,
		Name:       label + " Organization",
		Domain:     best.domain,
		Method:     best.method,
		Confidence: best.confidence,
	}
}

// detectViaDomain checks Windows domain join (env var, then WMI fallback)
// and, on Unix, an Active Directory Kerberos realm from krb5.conf.
func detectViaDomain(ctx context.Context) orgCandidate {
	if runtime.GOOS == "windows" {
		domain := os.Getenv("USERDNSDOMAIN")
		if domain == "" {
			domain = domainViaWMI(ctx)
		}
		if domain == "" {
			domain = domainViaRegistry()
		}
		if domain != "" {
			return orgCandidate{method: MethodDomain, domain: strings.ToLower(domain), confidence: 85}
		}
		return orgCandidate{}
	}

	if realm := kerberosRealm(); realm != "" {
		return orgCandidate{method: MethodDomain, domain: strings.ToLower(realm), confidence: 75}
	}
	return orgCandidate{}
}

func domainViaWMI(ctx context.Context) string {
	result, err := wmi.QuerySingle(ctx, "root\\CIMV2", "SELECT Domain, PartOfDomain FROM Win32_ComputerSystem")
	if err != nil {
		return ""
	}
	partOfDomain, _ := wmi.GetPropertyBool(result, "PartOfDomain")
	if !partOfDomain {
		return ""
	}
	domain, _ := wmi.GetPropertyString(result, "Domain")
	return domain
}

// kerberosRealm reads default_realm out of /etc/krb5.conf, the common
// location for an AD-joined Linux/macOS host's Kerberos configuration.
func kerberosRealm() string {
	b, err := os.ReadFile("/etc/krb5.conf")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "default_realm") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1])
			}
		}
	}
	return ""
}

// detectViaCertificate is a documented placeholder: a production probe
// would read the organization field off the machine's client certificate
// store. Not yet specified, so confidence stays 0.
func detectViaCertificate(ctx context.Context) orgCandidate {
	return orgCandidate{method: MethodCertificate}
}

// detectViaDNS is a documented placeholder for a DNS TXT/PTR lookup probe.
func detectViaDNS(ctx context.Context) orgCandidate {
	return orgCandidate{method: MethodDNS}
}

// detectViaCloud is a documented placeholder for an AWS/Azure/GCP instance
// metadata endpoint probe.
func detectViaCloud(ctx context.Context) orgCandidate {
	return orgCandidate{method: MethodCloud}
}

func firstLabel(domain string) string {
	if idx := strings.IndexByte(domain, '.'); idx >= 0 {
		return domain[:idx]
	}
	return domain
}
