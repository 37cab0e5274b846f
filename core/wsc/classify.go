package wsc

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FocuswithJustin/WscKit/core/textenc"
)

// Rules holds the heuristic tables the classifier applies. The zero value is
// unusable; start from DefaultRules and override fields as needed. The
// printable-ratio rule has no principled threshold; MinLength and
// MinPrintableRatio are tunable, not laws.
type Rules struct {
	KeepPatterns      []*regexp.Regexp
	MinLength         int
	MinPrintableRatio float64
}

// defaultKeepPatterns are the resource, audio, and engine-command shapes that
// are always kept regardless of script content.
var defaultKeepPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^SE_[0-9A-Za-z_.-]+$`),
	regexp.MustCompile(`(?i)^BGM_[0-9A-Za-z_.-]+$`),
	regexp.MustCompile(`(?i)^BG[0-9_]+$`),
	regexp.MustCompile(`(?i)^ST[0-9A-Za-z_]+$`),
	regexp.MustCompile(`(?i)^DAY[0-9A-Za-z_]+$`),
	regexp.MustCompile(`(?i)^HOS_[0-9A-Za-z_]+$`),
	regexp.MustCompile(`(?i).+\.ogg$`),
	regexp.MustCompile(`%`),
}

// DefaultRules returns the standard WSC keep tables.
func DefaultRules() *Rules {
	return &Rules{
		KeepPatterns:      defaultKeepPatterns,
		MinLength:         3,
		MinPrintableRatio: 0.5,
	}
}

// Classifier decides whether a decoded record carries meaning and should
// survive into the transcript. It is a pure predicate with no side effects.
type Classifier struct {
	rules *Rules
}

// NewClassifier returns a classifier using r, or DefaultRules when r is nil.
func NewClassifier(r *Rules) *Classifier {
	if r == nil {
		r = DefaultRules()
	}
	return &Classifier{rules: r}
}

// Meaningful reports whether a record should be kept. Rule order, first
// match wins: empty text drops, a marker prefix keeps, Japanese script
// keeps, a keep pattern keeps; otherwise the record is kept only when it is
// at least MinLength runes long with a printable fraction of at least
// MinPrintableRatio.
func (c *Classifier) Meaningful(decoded string, raw []byte) bool {
	s := strings.TrimSpace(decoded)
	if s == "" {
		return false
	}

	if bytes.HasPrefix(raw, []byte{MarkerByte}) {
		return true
	}

	if textenc.ContainsJapanese(s) {
		return true
	}

	for _, p := range c.rules.KeepPatterns {
		if p.MatchString(s) {
			return true
		}
	}

	n := utf8.RuneCountInString(s)
	if n < c.rules.MinLength {
		return false
	}
	printable := 0
	for _, r := range s {
		if unicode.IsPrint(r) {
			printable++
		}
	}
	return float64(printable)/float64(n) >= c.rules.MinPrintableRatio
}
