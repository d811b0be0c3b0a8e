//go:build windows

package discovery

import "golang.org/x/sys/windows/registry"

// domainViaRegistry is the last-resort fallback behind USERDNSDOMAIN and
// the Win32_ComputerSystem WMI query: some locked-down images disable WMI
// but still carry the joined domain in Tcpip's registry parameters.
func domainViaRegistry() string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters`, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()

	domain, _, err := k.GetStringValue("Domain")
	if err != nil || domain == "" {
		domain, _, err = k.GetStringValue("DhcpDomain")
		if err != nil {
			return ""
		}
	}
	return domain
}
