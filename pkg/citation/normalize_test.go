package citation

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"spaces_us_reporter", "3 US 100", "3 U.S. 100"},
		{"already_canonical", "347 U.S. 483", "347 U.S. 483"},
		{"comma_after_reporter", "15 Ill., 284", "15 Ill. 284"},
		{"split_ordinal_reporter", "460 F. 3d 337", "460 F.3d 337"},
		{"federal_reporter", "750 F.3d 1339", "750 F.3d 1339"},
		{"federal_cases", "9 F. Cas. 50", "9 F. Cas. 50"},
		{"nominative_reporter", "1 Breese 34", "1 Breese 34"},
		{"pickering", "20 Pick. 535", "20 Pick. 535"},
		{"embedded_in_sentence", "See Lotus, 49 F.3d 807, for the holding.", "49 F.3d 807"},
		{"repeated_same_cite", "49 F.3d 807; accord 49 F.3d 807.", "49 F.3d 807"},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := Normalize(testCase.text)
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", testCase.text, err)
			}
			if got != testCase.want {
				t.Errorf("Normalize(%q) = %q, want %q", testCase.text, got, testCase.want)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	t.Run("no_citation", func(t *testing.T) {
		_, err := Normalize("the parol evidence rule")
		if err == nil {
			t.Fatal("expected error for text with no citation")
		}
		if !strings.Contains(err.Error(), "the parol evidence rule") {
			t.Errorf("error does not include the offending text: %v", err)
		}
	})

	t.Run("unrecognized_reporter", func(t *testing.T) {
		_, err := Normalize("999 Cal 9th. 9999")
		if err == nil {
			t.Fatal("expected error for unparseable citation")
		}
	})

	t.Run("id_citation_named_in_error", func(t *testing.T) {
		_, err := Normalize("id. at 37")
		if err == nil {
			t.Fatal("expected error for id. citation")
		}
		if !strings.Contains(err.Error(), "id. citation, not a case citation") {
			t.Errorf("error does not classify the short form: %v", err)
		}
	})

	t.Run("supra_citation_named_in_error", func(t *testing.T) {
		_, err := Normalize("Nimmer, supra note 3, at 12")
		if err == nil {
			t.Fatal("expected error for supra citation")
		}
		if !strings.Contains(err.Error(), "supra citation, not a case citation") {
			t.Errorf("error does not classify the short form: %v", err)
		}
	})

	t.Run("multiple_distinct_citations_ambiguous", func(t *testing.T) {
		_, err := Normalize("compare 3 U.S. 100 with 49 F.3d 807")
		if err == nil {
			t.Fatal("expected error for ambiguous citation text")
		}
		for _, cite := range []string{"3 U.S. 100", "49 F.3d 807"} {
			if !strings.Contains(err.Error(), cite) {
				t.Errorf("error does not list %q: %v", cite, err)
			}
		}
	})

	t.Run("empty_text", func(t *testing.T) {
		if _, err := Normalize(""); err == nil {
			t.Fatal("expected error for empty text")
		}
	})
}

func TestNormalizeCite(t *testing.T) {
	tests := []struct {
		name string
		cite string
	}{
		{"registered_reporter", "15 Ill. 284"},
		// API cite strings pass through even when the reporter is not in
		// the free-text registry.
		{"unregistered_reporter", "1 Yeates 500"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			capCitation := CAPCitation{
				Cite:     test.cite,
				Category: "reporters:state",
				CaseIDs:  []int{436826},
			}
			if got := NormalizeCite(capCitation); got != test.cite {
				t.Errorf("NormalizeCite = %q, want %q", got, test.cite)
			}
		})
	}
}

func TestCitationStrings(t *testing.T) {
	capCitation := CAPCitation{Cite: "20 Pick. 535"}
	if got := capCitation.String(); got != "Citation to 20 Pick. 535" {
		t.Errorf("CAPCitation.String() = %q", got)
	}

	reporterCitation := ReporterCitation{Volume: 750, Reporter: "F.3d", Page: "1339"}
	if got := reporterCitation.String(); got != "750 F.3d 1339" {
		t.Errorf("ReporterCitation.String() = %q", got)
	}
}
