package request_models

import (
	"encoding/json"
	"testing"
)

func TestFlexibleInt(t *testing.T) {
	cases := map[string]int{`3`: 3, `3.0`: 3, `"3"`: 3, `" 12 "`: 12, `null`: 0, `""`: 0}
	for input, want := range cases {
		var got FlexibleInt
		if err := json.Unmarshal([]byte(input), &got); err != nil {
			t.Fatalf("%s: unexpected error %v", input, err)
		}
		if int(got) != want {
			t.Fatalf("%s: expected %d, got %d", input, want, got)
		}
	}

	for _, input := range []string{`3.5`, `"three"`, `true`, `[]`} {
		var got FlexibleInt
		if err := json.Unmarshal([]byte(input), &got); err == nil {
			t.Fatalf("%s: expected error", input)
		}
	}
}

func TestFlexibleFloat(t *testing.T) {
	var got FlexibleFloat
	if err := json.Unmarshal([]byte(`"1500.5"`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1500.5 {
		t.Fatalf("expected 1500.5, got %v", got)
	}
	if err := json.Unmarshal([]byte(`"lots"`), &got); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}
