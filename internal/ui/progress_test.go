package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestHeadlessProgress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bar := NewProgress(3, &buf, false)
	bar.Advance("dbt_acme")
	bar.Advance("dbt_globex")
	bar.Done()

	got := buf.String()
	want := "[1/3] dbt_acme\n[2/3] dbt_globex\n"
	if got != want {
		t.Errorf("headless progress = %q, want %q", got, want)
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("headless progress contains ANSI escapes: %q", got)
	}
}
