// Package config loads codec rule sets from YAML files. A rule file can
// override the heuristic tables the codec ships with: encoding priority,
// keep patterns, and the printable-ratio keep threshold. Absent fields keep
// their defaults.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/WscKit/core/textenc"
	"github.com/FocuswithJustin/WscKit/core/wsc"
)

// RuleFile is the on-disk shape of a codec rule set.
//
//	encodings: [cp932, shift-jis, utf-8, latin-1]
//	keep_patterns:
//	  - "(?i)^SE_[0-9A-Za-z_.-]+$"
//	min_length: 3
//	min_printable_ratio: 0.5
type RuleFile struct {
	Encodings         []string `yaml:"encodings,omitempty"`
	KeepPatterns      []string `yaml:"keep_patterns,omitempty"`
	MinLength         int      `yaml:"min_length,omitempty"`
	MinPrintableRatio float64  `yaml:"min_printable_ratio,omitempty"`
}

// Load reads and parses a rule file.
func Load(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return Parse(data)
}

// Parse parses rule file bytes.
func Parse(data []byte) (*RuleFile, error) {
	var f RuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rule file: %w", err)
	}
	if f.MinLength < 0 {
		return nil, fmt.Errorf("min_length must not be negative: %d", f.MinLength)
	}
	if f.MinPrintableRatio < 0 || f.MinPrintableRatio > 1 {
		return nil, fmt.Errorf("min_printable_ratio must be in [0,1]: %v", f.MinPrintableRatio)
	}
	return &f, nil
}

// Chain builds the encoding candidate chain, or the default chain when the
// file does not name encodings.
func (f *RuleFile) Chain() ([]textenc.Candidate, error) {
	if len(f.Encodings) == 0 {
		return textenc.DefaultChain(), nil
	}
	return textenc.ChainByTags(f.Encodings)
}

// Rules builds classifier rules, starting from the defaults and overriding
// whatever the file specifies.
func (f *RuleFile) Rules() (*wsc.Rules, error) {
	rules := wsc.DefaultRules()
	if len(f.KeepPatterns) > 0 {
		patterns := make([]*regexp.Regexp, 0, len(f.KeepPatterns))
		for _, p := range f.KeepPatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("compile keep pattern %q: %w", p, err)
			}
			patterns = append(patterns, re)
		}
		rules.KeepPatterns = patterns
	}
	if f.MinLength > 0 {
		rules.MinLength = f.MinLength
	}
	if f.MinPrintableRatio > 0 {
		rules.MinPrintableRatio = f.MinPrintableRatio
	}
	return rules, nil
}

// Codec constructs a codec from the rule file.
func (f *RuleFile) Codec() (*wsc.Codec, error) {
	chain, err := f.Chain()
	if err != nil {
		return nil, err
	}
	rules, err := f.Rules()
	if err != nil {
		return nil, err
	}
	return wsc.NewCodecWith(chain, rules), nil
}
