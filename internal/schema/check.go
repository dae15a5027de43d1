package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Check reports the first declared constraint v violates: length, pattern
// or enum. Lengths count characters, not bytes.
func (s String) Check(v string) error {
	n := utf8.RuneCountInString(v)
	if s.MinLength != nil && n < *s.MinLength {
		if s.MaxLength != nil && *s.MaxLength == *s.MinLength {
			return fmt.Errorf("must be exactly %d characters", *s.MinLength)
		}
		return fmt.Errorf("must be at least %d characters", *s.MinLength)
	}
	if s.MaxLength != nil && n > *s.MaxLength {
		if s.MinLength != nil && *s.MaxLength == *s.MinLength {
			return fmt.Errorf("must be exactly %d characters", *s.MaxLength)
		}
		return fmt.Errorf("must be at most %d characters", *s.MaxLength)
	}
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return fmt.Errorf("pattern %q does not compile: %w", s.Pattern, err)
		}
		if !re.MatchString(v) {
			return fmt.Errorf("must match %s", s.Pattern)
		}
	}
	if s.Enum != nil {
		for _, allowed := range s.Enum {
			if v == allowed {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(s.Enum, ", "))
	}
	return nil
}
