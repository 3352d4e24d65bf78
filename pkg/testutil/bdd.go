package testutil

import "testing"

// Journey steps. Router tests walk a visit through the portal as nested
// subtests, so `go test -v` prints the path a citizen took:
//
//	Given a citizen browsing the portal/When logging in/Then the panel opens
//
// Later steps reuse the cookies earlier steps collected, so a failed step
// stops the rest of its journey instead of piling up follow-on failures.

func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

// And continues the previous step without opening a new phase.
func And(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "And", desc, fn)
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	if !t.Run(keyword+" "+desc, fn) {
		t.FailNow()
	}
}
