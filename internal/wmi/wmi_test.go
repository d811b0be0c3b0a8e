package wmi

import (
	"context"
	"runtime"
	"testing"
)

func TestQueryResultPropertyHelpers(t *testing.T) {
	result := QueryResult{
		"StringProp": "value",
		"BoolProp":   true,
		"IntProp":    int32(42),
		"Int64Prop":  int64(100),
		"Uint32Prop": uint32(200),
	}

	if val, ok := GetPropertyString(result, "StringProp"); !ok || val != "value" {
		t.Errorf("expected 'value', got '%s', ok=%v", val, ok)
	}

	if _, ok := GetPropertyString(result, "Missing"); ok {
		t.Error("expected ok=false for missing property")
	}

	if val, ok := GetPropertyBool(result, "BoolProp"); !ok || !val {
		t.Errorf("expected true, got %v, ok=%v", val, ok)
	}

	if val, ok := GetPropertyInt(result, "IntProp"); !ok || val != 42 {
		t.Errorf("expected 42, got %d, ok=%v", val, ok)
	}

	if val, ok := GetPropertyInt(result, "Int64Prop"); !ok || val != 100 {
		t.Errorf("expected 100, got %d, ok=%v", val, ok)
	}

	if val, ok := GetPropertyInt(result, "Uint32Prop"); !ok || val != 200 {
		t.Errorf("expected 200, got %d, ok=%v", val, ok)
	}

	if _, ok := GetPropertyInt(result, "Missing"); ok {
		t.Error("expected ok=false for missing property")
	}

	if _, ok := GetPropertyInt(result, "StringProp"); ok {
		t.Error("expected ok=false for wrong type")
	}
}

func TestPropertyLookupIsCaseInsensitive(t *testing.T) {
	result := QueryResult{"AntivirusEnabled": true}
	if val, ok := GetPropertyBool(result, "antivirusenabled"); !ok || !val {
		t.Errorf("expected case-insensitive match, got %v, ok=%v", val, ok)
	}
}

func TestQueryOnNonWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping non-Windows test on Windows")
	}

	ctx := context.Background()
	if _, err := Query(ctx, "root\\CIMV2", "SELECT * FROM Win32_ComputerSystem"); err == nil {
		t.Error("expected error on non-Windows platform")
	}
}

func TestQuerySingleOnNonWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping non-Windows test on Windows")
	}

	ctx := context.Background()
	if _, err := QuerySingle(ctx, "root\\CIMV2", "SELECT * FROM Win32_ComputerSystem"); err == nil {
		t.Error("expected error on non-Windows platform")
	}
}
