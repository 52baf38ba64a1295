package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	time.Sleep(time.Millisecond)
	tm.End(load, "3 files")
	done := tm.Track("lex")
	done("")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected first phase %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS <= 0 {
		t.Fatalf("expected positive duration")
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %f shorter than a phase %f", r.TotalMS, r.Phases[0].DurationMS)
	}

	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "// 3 files") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
}

func TestTimerConcurrentAndNil(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("file")("")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Fatalf("expected 16 phases, got %d", n)
	}

	var nilTimer *Timer
	nilTimer.Track("x")("")
	if len(nilTimer.Report().Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
	tm.End(99, "")
}
