package records

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SafeFileName folds s into a portable file name: accents are stripped,
// separators, reserved and control characters become '_'.
func SafeFileName(s string) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	folded = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, folded)

	folded = strings.Trim(folded, " .")
	if folded == "" {
		return "_"
	}
	return folded
}

// Namer assigns file stems to decompiled records. It prefers the record id,
// then a non-empty name, then a running counter; collisions (ignoring case)
// get a "_<counter>" suffix.
type Namer struct {
	counter int
	seen    map[string]bool
}

// NewNamer returns a Namer with no names taken.
func NewNamer() *Namer {
	return &Namer{seen: make(map[string]bool)}
}

// Next returns the stem for r.
func (n *Namer) Next(r Record) string {
	stem := strconv.Itoa(n.counter)
	if id, ok := r.ID(); ok {
		stem = SafeFileName(id)
	} else if name, ok := r.Name(); ok && name != "" {
		stem = SafeFileName(name)
	} else {
		n.counter++
	}

	if n.seen[strings.ToLower(stem)] {
		stem += "_" + strconv.Itoa(n.counter)
		n.counter++
	}
	n.seen[strings.ToLower(stem)] = true
	return stem
}
