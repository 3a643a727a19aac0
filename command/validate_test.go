package command

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestValidateRejectsDateWithPath(t *testing.T) {
	payload := struct {
		ID   string                 `json:"id"`
		Meta map[string]interface{} `json:"meta"`
	}{
		ID:   "x",
		Meta: map[string]interface{}{"addedAt": time.Now()},
	}
	err := ValidateJSONSafe(payload)
	var verr *ValidationError
	if err == nil || !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Path != "payload.meta.addedAt" {
		t.Fatalf("path = %q", verr.Path)
	}
	if !strings.Contains(verr.Reason, "time.Time") {
		t.Fatalf("reason = %q", verr.Reason)
	}

	// The same payload with the date encoded as a number passes.
	payload.Meta["addedAt"] = time.Now().UnixMilli()
	if err := ValidateJSONSafe(payload); err != nil {
		t.Fatalf("numeric timestamp rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		payload interface{}
		path    string
	}{
		{"function", map[string]interface{}{"fn": func() {}}, "payload.fn"},
		{"channel", map[string]interface{}{"ch": make(chan int)}, "payload.ch"},
		{"nan", map[string]interface{}{"n": math.NaN()}, "payload.n"},
		{"infinity", map[string]interface{}{"n": math.Inf(1)}, "payload.n"},
		{"binary", map[string]interface{}{"buf": []byte{1, 2}}, "payload.buf"},
		{"intKeyedMap", map[string]interface{}{"m": map[int]string{1: "x"}}, "payload.m"},
		{"nestedSlice", map[string]interface{}{"list": []interface{}{1, "ok", func() {}}}, "payload.list[2]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateJSONSafe(c.payload)
			var verr *ValidationError
			if err == nil || !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Path != c.path {
				t.Fatalf("path = %q, want %q", verr.Path, c.path)
			}
		})
	}
}

func TestValidateAcceptsEveryBuiltinPayload(t *testing.T) {
	// Serialize runs the validator on each call, so a full round-trip pass
	// over the variants (TestRoundTripBehavior) already exercises it; this
	// only pins the plain-data happy path.
	payload := map[string]interface{}{
		"id":    "c1",
		"pages": []interface{}{map[string]interface{}{"id": "p0", "rotation": 90}},
		"dims":  map[string]interface{}{"width": 595.0, "height": 842.0},
		"none":  nil,
	}
	if err := ValidateJSONSafe(payload); err != nil {
		t.Fatalf("plain payload rejected: %v", err)
	}
}
