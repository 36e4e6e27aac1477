package slugs

import "strings"

// Stage names, in default evaluation order.
const (
	StageExact           = "exact"
	StageSuffixVariant   = "suffix-variant"
	StageCaseInsensitive = "case-insensitive"
	StageContains        = "contains"
)

// DefaultSuffix is the legacy suffix some product slugs carry and others lack.
const DefaultSuffix = "-vending"

// Strategy turns a normalized slug into the lookups for one stage. Lookups
// are tried in order; the first non-empty result wins.
type Strategy struct {
	Name    string
	Lookups func(slug string) []Lookup
}

// Exact compares the normalized slug byte for byte.
func Exact() Strategy {
	return Strategy{
		Name: StageExact,
		Lookups: func(slug string) []Lookup {
			return []Lookup{{Field: FieldSlug, Match: MatchExact, Value: slug}}
		},
	}
}

// SuffixVariant strips a known suffix when present, otherwise tries each
// suffix appended.
func SuffixVariant(suffixes ...string) Strategy {
	cleaned := cleanSuffixes(suffixes)
	return Strategy{
		Name: StageSuffixVariant,
		Lookups: func(slug string) []Lookup {
			for _, suffix := range cleaned {
				if trimmed, ok := strings.CutSuffix(slug, suffix); ok {
					if trimmed == "" {
						return nil
					}
					return []Lookup{{Field: FieldSlug, Match: MatchExact, Value: trimmed}}
				}
			}
			out := make([]Lookup, 0, len(cleaned))
			for _, suffix := range cleaned {
				out = append(out, Lookup{Field: FieldSlug, Match: MatchExact, Value: slug + suffix})
			}
			return out
		},
	}
}

// CaseInsensitive matches stored slugs regardless of case.
func CaseInsensitive() Strategy {
	return Strategy{
		Name: StageCaseInsensitive,
		Lookups: func(slug string) []Lookup {
			return []Lookup{{Field: FieldSlug, Match: MatchInsensitive, Value: slug}}
		},
	}
}

// Contains is the last resort substring match.
func Contains() Strategy {
	return Strategy{
		Name: StageContains,
		Lookups: func(slug string) []Lookup {
			return []Lookup{{Field: FieldSlug, Match: MatchContains, Value: slug}}
		},
	}
}

// DefaultStrategies returns exact, suffix-variant, case-insensitive and
// contains. With no suffixes DefaultSuffix is used.
func DefaultStrategies(suffixes ...string) []Strategy {
	if len(cleanSuffixes(suffixes)) == 0 {
		suffixes = []string{DefaultSuffix}
	}
	return []Strategy{
		Exact(),
		SuffixVariant(suffixes...),
		CaseInsensitive(),
		Contains(),
	}
}

func cleanSuffixes(suffixes []string) []string {
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
