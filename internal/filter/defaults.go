package filter

// DefaultRules returns the baseline rule set the engine seeds itself with
// when no external rules file is loaded, lifted id-for-id from
// tg_security_add_default_rules.
func DefaultRules() []Rule {
	return []Rule{
		{ID: 1, Name: "failed-login", Description: "repeated or flagged failed authentication", Kind: KindExact, Priority: 90, Action: ActionFlag, Enabled: true, Field: "event_type", Pattern: "login_failed"},
		{ID: 2, Name: "privilege-escalation", Description: "privilege escalation indicators in event_type", Kind: KindBehavioral, Priority: 95, Action: ActionFlag, Enabled: true, Field: "event_type"},
		{ID: 3, Name: "malware-keywords", Description: "known malware keyword in event fields", Kind: KindRegex, Priority: 85, Action: ActionFlag, Enabled: true, Field: "message", Pattern: "malware"},
		{ID: 4, Name: "suspicious-network", Description: "destination IP matches threat intel", Kind: KindThreatIntel, Priority: 75, Action: ActionFlag, Enabled: true, Field: "dst_ip"},
		{ID: 5, Name: "system-file-modification", Description: "modification under a system directory", Kind: KindRegex, Priority: 80, Action: ActionFlag, Enabled: true, Field: "file_path", Pattern: "system32"},
		{ID: 6, Name: "pci-compliance", Description: "payment-card keyword in scope of PCI-DSS", Kind: KindCompliance, Priority: 100, Action: ActionFlag, Enabled: true, Compliance: CompliancePCIDSS},
		{ID: 7, Name: "hipaa-compliance", Description: "patient-data keyword in scope of HIPAA", Kind: KindCompliance, Priority: 100, Action: ActionFlag, Enabled: true, Compliance: ComplianceHIPAA},
		{ID: 8, Name: "noise-reduction", Description: "heartbeat/keepalive noise", Kind: KindRegex, Priority: 10, Action: ActionDrop, Enabled: true, Field: "event_type", Pattern: "heartbeat"},
		{ID: 9, Name: "critical-severity", Description: "event explicitly marked critical", Kind: KindExact, Priority: 100, Action: ActionFlag, Enabled: true, Field: "severity", Pattern: "critical"},
		{ID: 10, Name: "threat-intel-catchall", Description: "any field value matches a known-bad indicator", Kind: KindThreatIntel, Priority: 98, Action: ActionFlag, Enabled: true, Field: "*", Pattern: "*"},
	}
}
