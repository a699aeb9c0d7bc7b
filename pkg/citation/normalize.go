package citation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Citation text parsing patterns.
var (
	// Case citations in "volume reporter page" form: "3 US 100",
	// "750 F.3d 1339", "15 Ill., 284", "9 F. Cas. 50". The reporter is one
	// or more abbreviation tokens; an ordinal series token (2d, 3d, ...)
	// may follow a leading abbreviation as in "F. Supp. 2d".
	caseCitePattern = regexp.MustCompile(
		`\b(\d{1,4})\s+((?:[A-Z][A-Za-z0-9.']*|2d|3d|4th|5th)(?:,?\s+(?:[A-Z][A-Za-z0-9.']*|2d|3d|4th|5th))*),?\s+(\d{1,5})\b`)

	// Short-form citations that reference an earlier citation rather than
	// identifying a case on their own.
	idCitePattern    = regexp.MustCompile(`(?i)\bid\.(?:\s+at\s+\d+)?`)
	supraCitePattern = regexp.MustCompile(`(?i)\bsupra\b(?:,?\s+(?:note\s+\d+|at\s+\d+))*`)
)

// reporterVariants maps reporter abbreviation spellings to their canonical
// form. Lookup keys have commas stripped and internal whitespace collapsed.
var reporterVariants = map[string]string{
	// United States Reports and early nominative volumes.
	"U.S.":   "U.S.",
	"U.S":    "U.S.",
	"US":     "U.S.",
	"U. S.":  "U.S.",
	"Dall.":  "Dall.",
	"Cranch": "Cranch",
	"Wheat.": "Wheat.",
	"Pet.":   "Pet.",
	"How.":   "How.",
	"Wall.":  "Wall.",

	// Supreme Court Reporter and Lawyers' Edition.
	"S. Ct.":    "S. Ct.",
	"S.Ct.":     "S. Ct.",
	"L. Ed.":    "L. Ed.",
	"L.Ed.":     "L. Ed.",
	"L. Ed. 2d": "L. Ed. 2d",
	"L.Ed.2d":   "L. Ed. 2d",

	// Federal Reporter, Supplement, and Cases.
	"F.":          "F.",
	"F.2d":        "F.2d",
	"F. 2d":       "F.2d",
	"F.3d":        "F.3d",
	"F. 3d":       "F.3d",
	"F.4th":       "F.4th",
	"F. 4th":      "F.4th",
	"F. Supp.":    "F. Supp.",
	"F.Supp.":     "F. Supp.",
	"F. Supp. 2d": "F. Supp. 2d",
	"F.Supp.2d":   "F. Supp. 2d",
	"F. Supp. 3d": "F. Supp. 3d",
	"F. Cas.":     "F. Cas.",
	"F.Cas.":      "F. Cas.",

	// Regional reporters.
	"A.":      "A.",
	"A.2d":    "A.2d",
	"A.3d":    "A.3d",
	"N.E.":    "N.E.",
	"N.E.2d":  "N.E.2d",
	"N.E.3d":  "N.E.3d",
	"N.W.":    "N.W.",
	"N.W.2d":  "N.W.2d",
	"P.":      "P.",
	"P.2d":    "P.2d",
	"P.3d":    "P.3d",
	"S.E.":    "S.E.",
	"S.E.2d":  "S.E.2d",
	"S.W.":    "S.W.",
	"S.W.2d":  "S.W.2d",
	"S.W.3d":  "S.W.3d",
	"So.":     "So.",
	"So. 2d":  "So. 2d",
	"So. 3d":  "So. 3d",

	// State reporters and nominative state volumes.
	"Breese":   "Breese",
	"Pick.":    "Pick.",
	"Cal.":     "Cal.",
	"Cal. 2d":  "Cal. 2d",
	"Cal. 3d":  "Cal. 3d",
	"Cal. 4th": "Cal. 4th",
	"Ill.":     "Ill.",
	"Ill. 2d":  "Ill. 2d",
	"Mass.":    "Mass.",
	"N.Y.":     "N.Y.",
	"N.Y.2d":   "N.Y.2d",
	"Ohio St.": "Ohio St.",
	"Pa.":      "Pa.",
	"Tex.":     "Tex.",
	"Wash.":    "Wash.",
	"Wash. 2d": "Wash. 2d",
}

// Normalize finds the single machine-parseable case citation in text and
// returns it in canonical "volume reporter page" form, e.g. "3 US 100"
// becomes "3 U.S. 100".
//
// Text containing zero case citations, or more than one distinct case
// citation, fails with an error describing every citation-shaped parse that
// was found: unrecognized reporters, and short-form references such as
// "id. at 37" or "supra" that do not identify a case on their own.
func Normalize(text string) (string, error) {
	var found []string
	var badParses []string

	for _, match := range caseCitePattern.FindAllStringSubmatch(text, -1) {
		volume, rawReporter, page := match[1], match[2], match[3]
		canonical, ok := normalizeReporter(rawReporter)
		if !ok {
			badParses = append(badParses,
				fmt.Sprintf("%q has unrecognized reporter %q", match[0], strings.TrimSuffix(rawReporter, ",")))
			continue
		}
		cite := volume + " " + canonical + " " + page
		if !containsString(found, cite) {
			found = append(found, cite)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		for _, shortForm := range idCitePattern.FindAllString(text, -1) {
			badParses = append(badParses, fmt.Sprintf("%q was an id. citation, not a case citation", shortForm))
		}
		for _, shortForm := range supraCitePattern.FindAllString(text, -1) {
			badParses = append(badParses, fmt.Sprintf("%q was a supra citation, not a case citation", shortForm))
		}
		message := fmt.Sprintf("could not locate a case citation in the text %q", text)
		if len(badParses) > 0 {
			message += ": " + strings.Join(badParses, "; ")
		}
		return "", errors.New(message)
	default:
		return "", fmt.Errorf("ambiguous citation text %q: found %d case citations (%s)",
			text, len(found), strings.Join(found, "; "))
	}
}

// NormalizeCite returns the citation text for a CAPCitation. The API
// already serves canonical cite strings, so the text passes through
// verbatim; Normalize is for free text only, since its reporter registry
// cannot cover every reporter the API knows.
func NormalizeCite(capCitation CAPCitation) string {
	return capCitation.Cite
}

// normalizeReporter canonicalizes a captured reporter abbreviation. The
// second return value is false when the abbreviation is not a recognized
// reporter.
func normalizeReporter(raw string) (string, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	canonical, ok := reporterVariants[cleaned]
	return canonical, ok
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
