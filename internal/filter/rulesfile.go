package filter

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// LoadRulesFile parses the `id|name|kind|priority|action|field|pattern`
// format (spec.md §6), grounded on tg_security_load_rules_file's
// tokenizer. Malformed lines are skipped with a warning and count toward
// neither success nor failure; a line count of zero parsed rules is still
// a successful (empty) parse, leaving fallback-to-defaults to the caller.
func LoadRulesFile(r io.Reader, log zerolog.Logger) []Rule {
	var rules []Rule
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		rule, err := parseRuleLine(trimmed)
		if err != nil {
			log.Warn().Int("line", lineNo).Err(err).Msg("skipping malformed rule line")
			continue
		}
		rules = append(rules, rule)
	}

	return rules
}

func parseRuleLine(line string) (Rule, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 7 {
		return Rule{}, errFieldCount(len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Rule{}, err
	}
	name := strings.TrimSpace(fields[1])

	kindCode, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Rule{}, err
	}
	kind := Kind(kindCode)
	if kind < KindExact || kind > KindCompliance {
		return Rule{}, errInvalidCode{"kind", kindCode}
	}

	priority, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return Rule{}, err
	}

	actionCode, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return Rule{}, err
	}
	action := Action(actionCode)
	if action < ActionPass || action > ActionEnrich {
		return Rule{}, errInvalidCode{"action", actionCode}
	}

	return Rule{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Priority: priority,
		Action:   action,
		Enabled:  true,
		Field:    strings.TrimSpace(fields[5]),
		Pattern:  strings.TrimSpace(fields[6]),
	}, nil
}

type errFieldCount int

func (e errFieldCount) Error() string {
	return "expected 7 pipe-separated fields, got " + strconv.Itoa(int(e))
}

type errInvalidCode struct {
	kind string
	code int
}

func (e errInvalidCode) Error() string {
	return "invalid " + e.kind + " code " + strconv.Itoa(e.code)
}
