package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// refPattern matches a reference token appearing as the entire string
// value of an argument field. Tokens embedded inside longer strings are
// deliberately not recognized.
var refPattern = regexp.MustCompile(`^\{\{step_([0-9]+)\}\}$`)

// argValue is the deferred-value model for one top-level argument:
// either a literal carried through unchanged, or a reference to a prior
// step's result resolved before validation.
type argValue struct {
	literal json.RawMessage
	ref     int
	isRef   bool
}

func parseArgValue(raw json.RawMessage) argValue {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return argValue{literal: raw}
	}
	match := refPattern.FindStringSubmatch(s)
	if match == nil {
		return argValue{literal: raw}
	}
	ordinal, err := strconv.Atoi(match[1])
	if err != nil {
		return argValue{literal: raw}
	}
	return argValue{ref: ordinal, isRef: true}
}

// ResolveArguments replaces reference tokens in a step's top-level
// argument values with the primary identifier of the referenced step's
// result. Only scalar string values are scanned; nested structures are
// passed through untouched, since no operation takes indirection below
// the top level. A token naming a step that has not executed yet, or
// one outside the plan, is a hard error.
func ResolveArguments(raw json.RawMessage, prior []Result) (json.RawMessage, error) {
	if len(raw) == 0 {
		return raw, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("arguments are not a JSON object: %w", err)
	}

	changed := false
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := parseArgValue(fields[key])
		if !value.isRef {
			continue
		}
		if value.ref < 1 || value.ref > len(prior) {
			return nil, fmt.Errorf("field %q references step %d, which has not executed", key, value.ref)
		}
		id, ok := prior[value.ref-1].PrimaryID()
		if !ok {
			return nil, fmt.Errorf("field %q references step %d, which produced no identifier", key, value.ref)
		}
		encoded, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("encode resolved reference: %w", err)
		}
		fields[key] = encoded
		changed = true
	}
	if !changed {
		return raw, nil
	}
	resolved, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode resolved arguments: %w", err)
	}
	return resolved, nil
}
