package decision

import (
	"errors"
	"strings"
	"testing"

	"github.com/coolbeans/caselaw/pkg/anchor"
)

const lotusText = "We hold that the menu command hierarchy is an uncopyrightable " +
	"method of operation, akin to any process or procedure of use."

func TestOpinionLocateText(t *testing.T) {
	opinion := NewOpinion(OpinionMajority, "STAHL, Circuit Judge", lotusText)

	t.Run("quote", func(t *testing.T) {
		set, err := opinion.LocateText(anchor.Quote("method of operation"))
		if err != nil {
			t.Fatalf("LocateText failed: %v", err)
		}
		start := strings.Index(lotusText, "method of operation")
		positions := set.Positions()
		if len(positions) != 1 || positions[0].Start != start {
			t.Errorf("Positions() = %v, want start %d", positions, start)
		}
	})

	t.Run("whole_text", func(t *testing.T) {
		set, err := opinion.LocateText(anchor.SelectAll{})
		if err != nil {
			t.Fatalf("LocateText failed: %v", err)
		}
		want := anchor.TextPosition{Start: 0, End: len(lotusText)}
		if positions := set.Positions(); len(positions) != 1 || positions[0] != want {
			t.Errorf("Positions() = %v, want [%v]", positions, want)
		}
	})

	t.Run("missing_quote_names_opinion", func(t *testing.T) {
		_, err := opinion.LocateText(anchor.Quote("fair use"))
		if err == nil {
			t.Fatal("expected error for missing quote")
		}
		var textErr *anchor.TextSelectionError
		if !errors.As(err, &textErr) {
			t.Fatalf("expected wrapped *TextSelectionError, got %v", err)
		}
		if !strings.Contains(err.Error(), "majority opinion by STAHL, Circuit Judge") {
			t.Errorf("error does not identify the opinion: %v", err)
		}
	})
}

func TestOpinionSelectText(t *testing.T) {
	opinion := NewOpinion(OpinionMajority, "STAHL, Circuit Judge", lotusText)

	sequence, err := opinion.SelectText(anchor.SelectionSequence{
		anchor.Quote("method of operation"),
		anchor.Quote("or procedure"),
	})
	if err != nil {
		t.Fatalf("SelectText failed: %v", err)
	}
	if got := sequence.String(); got != "…method of operation…or procedure…" {
		t.Errorf("SelectText rendering = %q", got)
	}

	t.Run("does_not_mutate_opinion", func(t *testing.T) {
		if opinion.Text != lotusText {
			t.Error("SelectText mutated opinion text")
		}
	})
}
