package model

import "testing"

func TestProbeString(t *testing.T) {
	m := map[string]interface{}{
		"Name":  "콘크리트구조",
		"name":  "ignored",
		"Code":  "",
		"code":  "142000",
		"Count": 3.0,
	}

	if got := ProbeString(m, "Name", "name"); got != "콘크리트구조" {
		t.Errorf("ProbeString Name = %q", got)
	}
	// An empty value falls through to the next alias.
	if got := ProbeString(m, "Code", "code"); got != "142000" {
		t.Errorf("ProbeString Code = %q", got)
	}
	// Non-string values are skipped.
	if got := ProbeString(m, "Count"); got != "" {
		t.Errorf("ProbeString Count = %q, want empty", got)
	}
	if got := ProbeString(m, "Missing"); got != "" {
		t.Errorf("ProbeString Missing = %q, want empty", got)
	}
}
