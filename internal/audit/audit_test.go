package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func TestLogAndRead(t *testing.T) {
	dir := t.TempDir()
	l := New(filepath.Join(dir, "nested"), true)
	l.now = fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))

	if err := l.Log(Entry{Operation: OpAdd, Space: "default", Key: "1", Text: "milk"}); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := l.Log(Entry{Operation: OpSpaceSwitch, Space: "work"}); err != nil {
		t.Fatalf("log: %v", err)
	}

	got, err := l.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []Entry{
		{Timestamp: time.Date(2026, 10, 15, 9, 1, 0, 0, time.UTC), Operation: OpAdd, Space: "default", Key: "1", Text: "milk"},
		{Timestamp: time.Date(2026, 10, 15, 9, 2, 0, 0, time.UTC), Operation: OpSpaceSwitch, Space: "work"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDisabledLoggerWritesNothing(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, false)

	if err := l.Log(Entry{Operation: OpAdd, Space: "default"}); err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"ts":"2026-10-15T09:00:00Z","op":"add","space":"default","key":"1","text":"a"}
not json

{"ts":"2026-10-15T09:01:00Z","op":"clear","space":"default"}
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := New(dir, false).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].Operation != OpAdd || got[1].Operation != OpClear {
		t.Errorf("unexpected entries: %+v", got)
	}
}

func TestReadMissingLog(t *testing.T) {
	got, err := New(t.TempDir(), true).Read()
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestTail(t *testing.T) {
	l := New(t.TempDir(), true)
	for _, e := range []Entry{
		{Operation: OpAdd, Space: "default", Key: "1"},
		{Operation: OpAdd, Space: "work", Key: "1"},
		{Operation: OpAdd, Space: "default", Key: "2"},
		{Operation: OpDelete, Space: "default", Key: "1"},
	} {
		if err := l.Log(e); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	tests := []struct {
		name  string
		n     int
		space string
		want  []string
	}{
		{name: "all", n: 0, space: "", want: []string{"add", "add", "add", "delete"}},
		{name: "last two", n: 2, space: "", want: []string{"add", "delete"}},
		{name: "one space", n: 0, space: "work", want: []string{"add"}},
		{name: "space limited", n: 1, space: "default", want: []string{"delete"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := l.Tail(tt.n, tt.space)
			if err != nil {
				t.Fatalf("tail: %v", err)
			}
			var ops []string
			for _, e := range entries {
				ops = append(ops, e.Operation)
			}
			if diff := cmp.Diff(tt.want, ops); diff != "" {
				t.Errorf("ops mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	l := New(t.TempDir(), true)
	if err := l.Truncate(); err != nil {
		t.Fatalf("truncate missing log: %v", err)
	}
	if err := l.Log(Entry{Operation: OpAdd, Space: "default"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Truncate(); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	got, err := l.Read()
	if err != nil || len(got) != 0 {
		t.Fatalf("after truncate: %v, %v", got, err)
	}
}
