package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/nestedjson/transform"
)

func TestSlogLoggerSortsFields(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{
		Level: stdslog.LevelDebug,
		ReplaceAttr: func(_ []string, a stdslog.Attr) stdslog.Attr {
			if a.Key == stdslog.TimeKey {
				return stdslog.Attr{}
			}
			return a
		},
	})
	l := Logger{L: stdslog.New(h)}

	l.Debug("field rewritten", transform.Fields{"path": "p", "mode": "unnest", "seq": false})
	l.Warn("w", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %q", buf.String())
	}
	if want := `level=DEBUG msg="field rewritten" mode=unnest path=p seq=false`; lines[0] != want {
		t.Fatalf("got %q want %q", lines[0], want)
	}
	if want := `level=WARN msg=w`; lines[1] != want {
		t.Fatalf("got %q want %q", lines[1], want)
	}
}
