package anchor

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTextQuoteSelectorFindAll(t *testing.T) {
	buffer := "The doctrine applies. The doctrine controls here."

	t.Run("single_occurrence", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "applies"}
		positions, err := selector.FindAll(buffer)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		want := []TextPosition{{Start: strings.Index(buffer, "applies"), End: strings.Index(buffer, "applies") + len("applies")}}
		if !reflect.DeepEqual(positions, want) {
			t.Errorf("FindAll = %v, want %v", positions, want)
		}
	})

	t.Run("all_occurrences_returned", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "The doctrine"}
		positions, err := selector.FindAll(buffer)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		want := []TextPosition{{Start: 0, End: 12}, {Start: 22, End: 34}}
		if !reflect.DeepEqual(positions, want) {
			t.Errorf("FindAll = %v, want %v", positions, want)
		}
	})

	t.Run("suffix_disambiguates", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "The doctrine", Suffix: " controls"}
		positions, err := selector.FindAll(buffer)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		want := []TextPosition{{Start: 22, End: 34}}
		if !reflect.DeepEqual(positions, want) {
			t.Errorf("FindAll = %v, want %v", positions, want)
		}
	})

	t.Run("prefix_disambiguates", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "doctrine", Prefix: "applies. The "}
		positions, err := selector.FindAll(buffer)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		// The prefix anchors the match but is not part of the selection.
		want := []TextPosition{{Start: 26, End: 34}}
		if !reflect.DeepEqual(positions, want) {
			t.Errorf("FindAll = %v, want %v", positions, want)
		}
	})

	t.Run("case_insensitive", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "THE DOCTRINE APPLIES"}
		positions, err := selector.FindAll(buffer)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		if len(positions) != 1 || positions[0] != (TextPosition{Start: 0, End: 20}) {
			t.Errorf("FindAll = %v", positions)
		}
	})

	t.Run("regex_metacharacters_literal", func(t *testing.T) {
		metaBuffer := "See 17 U.S.C. § 102(b) for the rule."
		selector := TextQuoteSelector{Exact: "§ 102(b)"}
		positions, err := selector.FindAll(metaBuffer)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("expected 1 match, got %v", positions)
		}
		if got := metaBuffer[positions[0].Start:positions[0].End]; got != "§ 102(b)" {
			t.Errorf("matched text = %q", got)
		}
	})

	t.Run("no_match_reported", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "nowhere to be found"}
		_, err := selector.FindAll(buffer)
		if err == nil {
			t.Fatal("expected error for missing quote")
		}
		var textErr *TextSelectionError
		if !errors.As(err, &textErr) {
			t.Fatalf("expected *TextSelectionError, got %T", err)
		}
		if textErr.Quote != "nowhere to be found" {
			t.Errorf("error does not name the quote: %q", textErr.Quote)
		}
	})

	t.Run("context_mismatch_reported", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: "doctrine", Prefix: "no such "}
		_, err := selector.FindAll(buffer)
		var textErr *TextSelectionError
		if !errors.As(err, &textErr) {
			t.Fatalf("expected *TextSelectionError, got %v", err)
		}
	})

	t.Run("empty_exact_rejected", func(t *testing.T) {
		selector := TextQuoteSelector{Exact: ""}
		_, err := selector.FindAll(buffer)
		if !errors.Is(err, ErrEmptyQuote) {
			t.Errorf("expected ErrEmptyQuote, got %v", err)
		}
	})
}
