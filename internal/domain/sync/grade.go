package sync

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Condition grades used by the remote catalog: single-letter codes where A
// is mint and F is faulty.
const gradeAlphabet = "ABCEF"

// gradeSuffix matches a trailing grade code preceded by a separator run
// (space, comma, slash, or hyphen, possibly followed by whitespace).
var gradeSuffix = regexp.MustCompile(`[\s,/-]+([` + gradeAlphabet + `])$`)

// ResolveGrade extracts a normalized display name and an optional condition
// grade from a raw catalog item name.
//
// If the source supplied an explicit grade it wins verbatim and the name is
// only normalized. Otherwise the end of the raw name is inspected for a
// separator followed by a known grade code; when found, the matched suffix
// is removed from the clean name. Pure and deterministic: no remote state,
// no identity tables.
func ResolveGrade(rawName string, explicit []string) (cleanName, grade string) {
	cleanName = normalizeName(rawName)

	if len(explicit) > 0 && explicit[0] != "" {
		return cleanName, explicit[0]
	}

	m := gradeSuffix.FindStringSubmatchIndex(cleanName)
	if m == nil {
		return cleanName, ""
	}

	grade = cleanName[m[2]:m[3]]
	cleanName = strings.TrimSpace(cleanName[:m[0]])
	return cleanName, grade
}

// normalizeName trims, NFC-normalizes, and collapses internal whitespace.
func normalizeName(name string) string {
	name = norm.NFC.String(name)
	return strings.Join(strings.Fields(name), " ")
}
