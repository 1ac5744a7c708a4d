package main

import (
	"testing"
	"time"
)

func TestFormatLatency(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "-"},
		{45 * time.Second, "45s"},
		{30 * time.Minute, "30m"},
		{90 * time.Minute, "1.5h"},
		{36 * time.Hour, "1.5d"},
	}
	for _, tt := range tests {
		if got := formatLatency(tt.d); got != tt.want {
			t.Errorf("formatLatency(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	if bar(0, 10) != "" {
		t.Error("zero value should render an empty bar")
	}
	if bar(5, 0) != "" {
		t.Error("zero max should render an empty bar")
	}
	if got := len([]rune(bar(10, 10))); got != statsBarWidth {
		t.Errorf("full bar = %d cells, want %d", got, statsBarWidth)
	}
	if got := bar(1, 1000); got == "" {
		t.Error("tiny nonzero value should still render one cell")
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 40); got != "short" {
		t.Errorf("clip should pass short strings through, got %q", got)
	}
	long := "a very long task title that will not fit in the column"
	got := clip(long, 20)
	if len([]rune(got)) != 20 {
		t.Errorf("clipped length = %d, want 20", len([]rune(got)))
	}
}
