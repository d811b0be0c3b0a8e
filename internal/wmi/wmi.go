// Package wmi provides helpers for Windows Management Instrumentation
// queries, used by the Windows security-tool scanner in internal/discovery
// to detect Defender, firewall, and BitLocker state and by organization
// detection to read domain membership.
//
// This package uses the go-ole library to execute WMI queries on Windows.
// On non-Windows platforms, Query returns an error; internal/discovery
// calls this package from platform_windows.go and, behind a runtime.GOOS
// check, from organization.go's domain lookup.
package wmi

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// QueryResult represents a single WMI object result as a map of property names to values.
type QueryResult map[string]interface{}

// Query executes a WMI query and returns the results.
//
// namespace: WMI namespace (e.g., "root\\CIMV2", "root\\Microsoft\\Windows\\Defender")
// query: WQL query string (e.g., "SELECT * FROM Win32_ComputerSystem")
func Query(ctx context.Context, namespace, query string) ([]QueryResult, error) {
	if runtime.GOOS != "windows" {
		return nil, fmt.Errorf("WMI queries only supported on Windows")
	}
	return queryWindows(ctx, namespace, query)
}

// QuerySingle executes a WMI query expecting a single result.
func QuerySingle(ctx context.Context, namespace, query string) (QueryResult, error) {
	results, err := Query(ctx, namespace, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for query")
	}
	return results[0], nil
}

// GetPropertyBool extracts a boolean property, with case-insensitive name matching.
func GetPropertyBool(result QueryResult, name string) (bool, bool) {
	val, ok := getPropertyValue(result, name)
	if !ok {
		return false, false
	}
	bval, ok := val.(bool)
	return bval, ok
}

// GetPropertyInt extracts an integer property, with case-insensitive name matching.
func GetPropertyInt(result QueryResult, name string) (int, bool) {
	val, ok := getPropertyValue(result, name)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint32:
		return int(v), true
	default:
		return 0, false
	}
}

// GetPropertyString extracts a string property, converting non-string WMI
// types to their string form, with case-insensitive name matching.
func GetPropertyString(result QueryResult, name string) (string, bool) {
	val, ok := getPropertyValue(result, name)
	if !ok || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case bool:
		return fmt.Sprintf("%v", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func getPropertyValue(result QueryResult, name string) (interface{}, bool) {
	if val, ok := result[name]; ok {
		return val, true
	}
	nameLower := strings.ToLower(name)
	for k, v := range result {
		if strings.ToLower(k) == nameLower {
			return v, true
		}
	}
	return nil, false
}
