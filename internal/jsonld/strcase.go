// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"regexp"
	"strings"
)

var (
	firstCapRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRe   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// CamelCase converts a snake_case_string to a camelCaseString.
func CamelCase(snakeCase string) string {
	words := strings.Split(snakeCase, "_")
	var b strings.Builder
	b.WriteString(words[0])
	for _, word := range words[1:] {
		b.WriteString(titleWord(word))
	}
	return b.String()
}

// SnakeCase converts a camelCaseString to a snake_case_string.
//
// CamelCase(SnakeCase(x)) == x for camelCase identifiers without digits
// adjacent to case transitions; an identifier like "itemA1B" does not survive
// the round trip because the digit boundary is folded into the preceding
// word.
func SnakeCase(camelCase string) string {
	snake := firstCapRe.ReplaceAllString(camelCase, "${1}_${2}")
	snake = allCapRe.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// titleWord uppercases the first rune of word and lowercases the rest.
func titleWord(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}

// firstLower lowercases the first rune of s, used when deriving an entity
// type name from the last segment of a @type IRI.
func firstLower(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToLower(string(runes[0])) + string(runes[1:])
}
