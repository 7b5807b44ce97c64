package ui

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title here", 10, "a longe..."},
		{"ünïcödé strings", 6, "ünï..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2f77cdd6-0b1c-4a57-9d2e-4f0c3b6d1e8a", "2f77cdd6"},
		{"1.25", "1.25"},
		{"ünïcödé-ïd-text", "ünïcödé-"},
	}
	for _, tt := range tests {
		got := ShortID(tt.in)
		if got != tt.want || !utf8.ValidString(got) {
			t.Errorf("ShortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMonoOutput(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var out, errOut bytes.Buffer
	prevOut, prevErr := Out, Err
	Out, Err = &out, &errOut
	defer func() { Out, Err = prevOut, prevErr }()

	OK("added")
	Fail("boom")
	Panel([]string{"Todos", "1. milk"})

	if !strings.Contains(out.String(), "ok added") {
		t.Errorf("OK output = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "x boom") {
		t.Errorf("Fail output = %q", errOut.String())
	}
	if !strings.Contains(out.String(), "+") || !strings.Contains(out.String(), "| 1. milk") {
		t.Errorf("Panel output = %q", out.String())
	}
}

func TestSetThemeFallsBack(t *testing.T) {
	SetTheme("nope")
	if Current().Name != "classic" {
		t.Errorf("Current().Name = %q, want classic", Current().Name)
	}
}
