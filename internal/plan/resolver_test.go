package plan

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResolveArgumentsReplacesToken(t *testing.T) {
	prior := []Result{{IDs: []string{"obj-1"}}}
	raw := json.RawMessage(`{"operation":"delete_shape","shapeId":"{{step_1}}"}`)
	resolved, err := ResolveArguments(raw, prior)
	if err != nil {
		t.Fatalf("ResolveArguments: %v", err)
	}
	var fields map[string]string
	if err := json.Unmarshal(resolved, &fields); err != nil {
		t.Fatalf("decode resolved: %v", err)
	}
	if fields["shapeId"] != "obj-1" {
		t.Fatalf("shapeId = %q, want obj-1", fields["shapeId"])
	}
}

func TestResolveArgumentsUsesPrimaryIdentifier(t *testing.T) {
	prior := []Result{{IDs: []string{"first", "second", "third"}}}
	raw := json.RawMessage(`{"shapeId":"{{step_1}}"}`)
	resolved, err := ResolveArguments(raw, prior)
	if err != nil {
		t.Fatalf("ResolveArguments: %v", err)
	}
	if !strings.Contains(string(resolved), `"first"`) {
		t.Fatalf("resolved = %s, want primary identifier", resolved)
	}
}

func TestResolveArgumentsForwardReferenceFails(t *testing.T) {
	raw := json.RawMessage(`{"shapeId":"{{step_2}}"}`)
	if _, err := ResolveArguments(raw, []Result{{IDs: []string{"a"}}}); err == nil {
		t.Fatal("forward reference must fail")
	}
}

func TestResolveArgumentsOutOfRangeFails(t *testing.T) {
	for _, token := range []string{"{{step_0}}", "{{step_7}}"} {
		raw := json.RawMessage(`{"shapeId":"` + token + `"}`)
		if _, err := ResolveArguments(raw, []Result{{IDs: []string{"a"}}}); err == nil {
			t.Fatalf("token %s must fail", token)
		}
	}
}

func TestResolveArgumentsNoIdentifierFails(t *testing.T) {
	raw := json.RawMessage(`{"shapeId":"{{step_1}}"}`)
	if _, err := ResolveArguments(raw, []Result{{}}); err == nil {
		t.Fatal("reference to a result with no identifier must fail")
	}
}

func TestResolveArgumentsIgnoresEmbeddedTokens(t *testing.T) {
	// A token inside a longer string is a legitimate value, not a reference.
	raw := json.RawMessage(`{"text":"see {{step_1}} for details"}`)
	resolved, err := ResolveArguments(raw, nil)
	if err != nil {
		t.Fatalf("ResolveArguments: %v", err)
	}
	if string(resolved) != string(raw) {
		t.Fatalf("embedded token was rewritten: %s", resolved)
	}
}

func TestResolveArgumentsLeavesNestedStructuresAlone(t *testing.T) {
	raw := json.RawMessage(`{"operations":[{"type":"delete","shapeId":"{{step_1}}"}]}`)
	resolved, err := ResolveArguments(raw, nil)
	if err != nil {
		t.Fatalf("ResolveArguments: %v", err)
	}
	if string(resolved) != string(raw) {
		t.Fatal("nested values must not be scanned")
	}
}

func TestResolveArgumentsPassThroughWithoutTokens(t *testing.T) {
	raw := json.RawMessage(`{"x":1,"y":2}`)
	resolved, err := ResolveArguments(raw, nil)
	if err != nil {
		t.Fatalf("ResolveArguments: %v", err)
	}
	if string(resolved) != string(raw) {
		t.Fatal("token-free arguments must pass through unchanged")
	}
}
