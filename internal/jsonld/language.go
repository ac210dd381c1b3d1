// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"sort"
	"strings"
)

// MoreGenericTags lists a BCP-47 language tag together with its progressively
// truncated ancestors, most specific first: "en-US-x-ny" yields
// ["en-US-x-ny", "en-US-x", "en-US", "en"].
func MoreGenericTags(tag string) []string {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, "-")
	tags := make([]string, 0, len(parts))
	for i := len(parts); i >= 1; i-- {
		tags = append(tags, strings.Join(parts[:i], "-"))
	}
	return tags
}

// GetByLanguage picks the best value for the given language tag from a
// JSON-LD value. Maps are matched by key (longest candidate tag first) and
// yield the value under the matching key. Lists of {"@language","@value"}
// objects are matched by @language and yield the whole matching element, or
// an empty map when nothing matches. Scalar values pass through untouched.
// The empty tag falls back to the configured default language.
func (c Config) GetByLanguage(value any, tag string) any {
	if tag == "" {
		tag = c.DefaultLanguage
	}

	tags := MoreGenericTags(tag)
	candidates := make([]string, 0, len(tags)*2)
	for _, t := range tags {
		candidates = append(candidates, t, "@"+t)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	switch v := value.(type) {
	case map[string]any:
		return getFromLongestMatchingKey(v, candidates)
	case []any:
		return getFromLongestMatchingValue(v, candidates)
	default:
		return value
	}
}

// getFromLongestMatchingKey returns the value under the longest candidate
// tag that exists as a key, case-insensitively.
func getFromLongestMatchingKey(obj map[string]any, candidates []string) any {
	lowered := make(map[string]any, len(obj))
	for k, v := range obj {
		lowered[strings.ToLower(k)] = v
	}
	for _, candidate := range candidates {
		if v, ok := lowered[strings.ToLower(candidate)]; ok {
			return v
		}
	}
	return nil
}

// getFromLongestMatchingValue scans a list of language-mapped objects for the
// longest candidate tag, matching each object's @language exactly, and
// returns the matching element itself. Only when the shortest candidate
// finds no exact match does the primary subtag fallback kick in; an empty
// map marks full exhaustion.
func getFromLongestMatchingValue(list []any, candidates []string) any {
	ordered := make([]string, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	for i, candidate := range ordered {
		lowered := strings.ToLower(strings.TrimPrefix(candidate, "@"))
		for _, elem := range list {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			lang, _ := obj["@language"].(string)
			if strings.ToLower(lang) == lowered {
				return obj
			}
		}
		if i < len(ordered)-1 {
			continue
		}
		// Last resort: match on the primary subtag alone.
		primary := strings.SplitN(lowered, "-", 2)[0]
		for _, elem := range list {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			lang, _ := obj["@language"].(string)
			if strings.SplitN(strings.ToLower(lang), "-", 2)[0] == primary {
				return obj
			}
		}
	}
	return map[string]any{}
}
