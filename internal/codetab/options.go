package codetab

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultLanguage is used for fences that carry no language tag.
const DefaultLanguage = "source"

// Options configures a Preprocessor.
type Options struct {
	DefaultLanguage string   `yaml:"default_lang"`
	ShowAllAsTabs   bool     `yaml:"show_all_code_as_folders"`
	Languages       []string `yaml:"languages,omitempty"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{DefaultLanguage: DefaultLanguage, ShowAllAsTabs: true}
}

// Language resolves the language a block is rendered with.
func (o Options) Language(lang string) string {
	if len(strings.TrimSpace(lang)) == 0 {
		lang = o.DefaultLanguage
	}

	return strings.ToLower(lang)
}

// ParseFlag coerces a loosely typed option value to a bool. Only a string
// spelled "false" (in any case) turns the flag off; nil means unset and
// yields true like every other value.
func ParseFlag(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return !strings.EqualFold(strings.TrimSpace(v), "false")
	default:
		return true
	}
}

type filterFunc func(lang string) bool

func compileFilter(patterns []string) (filterFunc, error) {
	if len(patterns) == 0 {
		return func(string) bool { return true }, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}

		globs = append(globs, g)
	}

	return func(lang string) bool {
		for _, g := range globs {
			if g.Match(lang) {
				return true
			}
		}

		return false
	}, nil
}
