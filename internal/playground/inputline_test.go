package playground

import (
	"fmt"
	"testing"
)

func TestInputLineHistoryRecording(t *testing.T) {
	il := NewInputLine()

	il.AddToHistory("")
	if len(il.history) != 0 {
		t.Error("expected empty commands to be ignored")
	}

	il.AddToHistory("spawn door")
	il.AddToHistory("reg 0 door _OnOpened")
	il.AddToHistory("emit 0")
	if len(il.history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(il.history))
	}
	if il.history[0] != "spawn door" || il.history[2] != "emit 0" {
		t.Errorf("expected oldest-first order, got %v", il.history)
	}

	// An immediate repeat is dropped; the same command later is kept.
	il.AddToHistory("emit 0")
	if len(il.history) != 3 {
		t.Errorf("expected repeat to be dropped, got %v", il.history)
	}
	il.AddToHistory("emit 1")
	il.AddToHistory("emit 0")
	if len(il.history) != 5 {
		t.Errorf("expected non-consecutive repeat to be kept, got %v", il.history)
	}
}

func TestInputLineHistoryCap(t *testing.T) {
	il := NewInputLine()

	for n := 0; n < historyCap+25; n++ {
		il.AddToHistory(fmt.Sprintf("emit %d", n))
	}
	if len(il.history) != historyCap {
		t.Fatalf("expected history capped at %d, got %d", historyCap, len(il.history))
	}
	if got, want := il.history[len(il.history)-1], fmt.Sprintf("emit %d", historyCap+24); got != want {
		t.Errorf("expected newest entry %q kept, got %q", want, got)
	}
}

func TestInputLineRecall(t *testing.T) {
	il := NewInputLine()

	if il.HistoryUp() || il.HistoryDown() {
		t.Fatal("expected recall to be a no-op with no history")
	}

	il.AddToHistory("spawn door")
	il.AddToHistory("reg 0 door _OnOpened")
	il.AddToHistory("emit 0")
	il.input.SetValue("emi")

	// Up walks newest to oldest and stops at the oldest entry.
	for _, want := range []string{"emit 0", "reg 0 door _OnOpened", "spawn door"} {
		if !il.HistoryUp() {
			t.Fatalf("expected recall of %q", want)
		}
		if il.Value() != want {
			t.Fatalf("expected %q, got %q", want, il.Value())
		}
	}
	if il.HistoryUp() {
		t.Error("expected up at the oldest entry to be a no-op")
	}
	if il.Value() != "spawn door" {
		t.Errorf("expected line to stay at the oldest entry, got %q", il.Value())
	}

	// Down walks back toward the newest entry, then restores the draft.
	for _, want := range []string{"reg 0 door _OnOpened", "emit 0", "emi"} {
		if !il.HistoryDown() {
			t.Fatalf("expected recall of %q", want)
		}
		if il.Value() != want {
			t.Fatalf("expected %q, got %q", want, il.Value())
		}
	}
	if il.HistoryDown() {
		t.Error("expected down outside a recall to be a no-op")
	}
}

func TestInputLineResetHistoryNavigation(t *testing.T) {
	il := NewInputLine()

	il.AddToHistory("emit 0")
	il.input.SetValue("spaw")
	il.HistoryUp()

	il.ResetHistoryNavigation()
	if il.browse != -1 || il.draft != "" {
		t.Errorf("expected recall state cleared, got browse=%d draft=%q", il.browse, il.draft)
	}
}

func TestInputLineClear(t *testing.T) {
	il := NewInputLine()

	il.input.SetValue("emit 0")
	il.Clear()
	if il.Value() != "" {
		t.Errorf("expected empty line after Clear, got %q", il.Value())
	}
}
