package filter

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadRulesFileParsesValidLines(t *testing.T) {
	content := "# comment\n1|failed-login|0|90|1|event_type|login_failed\n\n2|noise|1|10|2|event_type|heartbeat\n"
	rules := LoadRulesFile(strings.NewReader(content), zerolog.Nop())
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Name != "failed-login" || rules[0].Kind != KindExact || rules[0].Priority != 90 || rules[0].Action != ActionFlag {
		t.Errorf("rule[0] = %+v, unexpected field values", rules[0])
	}
	if rules[1].Action != ActionDrop {
		t.Errorf("rule[1].Action = %v, want Drop", rules[1].Action)
	}
}

func TestLoadRulesFileSkipsMalformedLines(t *testing.T) {
	content := "1|ok|0|90|1|a|b\nnot-enough-fields\n2|ok2|99|10|1|a|b\n3|ok3|0|10|1|a|b\n"
	rules := LoadRulesFile(strings.NewReader(content), zerolog.Nop())
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2 (malformed and invalid-kind lines skipped)", len(rules))
	}
}

func TestLoadRulesFileEmptyIsEmptySlice(t *testing.T) {
	rules := LoadRulesFile(strings.NewReader(""), zerolog.Nop())
	if len(rules) != 0 {
		t.Errorf("got %d rules, want 0", len(rules))
	}
}
