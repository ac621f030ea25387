package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDebugLevels(t *testing.T) {
	table := []struct {
		debug     bool
		wantDebug bool
	}{
		{debug: false, wantDebug: false},
		{debug: true, wantDebug: true},
	}

	for _, tc := range table {
		var buf bytes.Buffer
		logger := New(&buf, tc.debug)
		logger.Debug("checking the sky")
		logger.Warn("no rain on record")

		out := buf.String()
		if got := strings.Contains(out, "checking the sky"); got != tc.wantDebug {
			t.Errorf("debug=%v: debug line written = %v, wanted %v", tc.debug, got, tc.wantDebug)
		}
		if !strings.Contains(out, "no rain on record") {
			t.Errorf("debug=%v: warning missing from %q", tc.debug, out)
		}
	}
}
