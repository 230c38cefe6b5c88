package cache

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/ntfsview/ntfsview/internal/volume"
)

// ErrNoDrivesMatched is returned when a pattern resolves to zero drive
// letters, per spec §8 error taxonomy.
var ErrNoDrivesMatched = errors.New("cache: invalid drive-letter pattern or no drives matched")

// ResolvePattern expands a drive-letter pattern into the set of drive
// letters it names, per spec §6's grammar: `*` (all present drives),
// a single letter, concatenated letters ("CD"), or a comma- or
// whitespace-separated list. Letters are upper-cased and de-duplicated
// while preserving first-seen order.
func ResolvePattern(pattern string) ([]byte, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "*" {
		drives, err := volume.EnumerateDrives()
		if err != nil {
			return nil, errors.Wrap(err, "cache: enumerate drives for '*' pattern")
		}
		if len(drives) == 0 {
			return nil, ErrNoDrivesMatched
		}
		return drives, nil
	}

	var out []byte
	seen := make(map[byte]bool)
	for _, field := range splitFields(pattern) {
		for i := 0; i < len(field); i++ {
			c := field[i]
			if !unicode.IsLetter(rune(c)) {
				return nil, errors.Errorf("cache: invalid character %q in drive pattern %q", c, pattern)
			}
			letter := byte(unicode.ToUpper(rune(c)))
			if !seen[letter] {
				seen[letter] = true
				out = append(out, letter)
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoDrivesMatched
	}
	return out, nil
}

// splitFields splits on commas and whitespace, dropping empty fields, so
// that "C,D", "C D", and "C, D" are all equivalent.
func splitFields(pattern string) []string {
	return strings.FieldsFunc(pattern, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
