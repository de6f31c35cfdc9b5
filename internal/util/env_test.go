package util

import (
	"testing"
	"time"
)

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{name: "unset_uses_default", set: false, want: 3 * time.Second},
		{name: "empty_uses_default", value: "", set: true, want: 3 * time.Second},
		{name: "go_duration", value: "250ms", set: true, want: 250 * time.Millisecond},
		{name: "bare_seconds", value: "2", set: true, want: 2 * time.Second},
		{name: "garbage_uses_default", value: "soon", set: true, want: 3 * time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set {
				t.Setenv("PORTAL_TEST_DURATION", tc.value)
			}
			got := GetEnvDuration("PORTAL_TEST_DURATION", 3*time.Second)
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("PORTAL_TEST_BOOL", "true")
	if !GetEnvBool("PORTAL_TEST_BOOL", false) {
		t.Fatal("expected true")
	}
	t.Setenv("PORTAL_TEST_BOOL", "yes")
	if GetEnvBool("PORTAL_TEST_BOOL", false) {
		t.Fatal("expected default for unrecognised value")
	}
}

func TestGetEnvNumeric(t *testing.T) {
	t.Setenv("PORTAL_TEST_NUM", "7")
	if got := GetEnvNumeric("PORTAL_TEST_NUM", 3); got != 7 {
		t.Fatalf("got %v, want 7", got)
	}
	t.Setenv("PORTAL_TEST_NUM", "x")
	if got := GetEnvNumeric("PORTAL_TEST_NUM", 3); got != 3 {
		t.Fatalf("got %v, want 3", got)
	}
}
