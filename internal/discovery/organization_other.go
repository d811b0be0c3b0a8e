//go:build !windows

package discovery

// domainViaRegistry only applies on Windows; Unix hosts rely on
// kerberosRealm instead.
func domainViaRegistry() string { return "" }
