// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextForString(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantEntry map[string]any
		wantTerm  string
	}{
		{
			name:      "clean last segment becomes suffix",
			in:        "schema.org/about",
			wantEntry: map[string]any{"schemaorg": "schema.org/"},
			wantTerm:  "schemaorg:about",
		},
		{
			name:      "dotted last segment maps whole string",
			in:        "schema.org/file.name",
			wantEntry: map[string]any{"schemaorg_filename": "schema.org/file.name"},
			wantTerm:  "schemaorg_filename",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			entry, term := contextForString(test.in)
			assert.Equal(t, test.wantEntry, entry)
			assert.Equal(t, test.wantTerm, term)
		})
	}
}

func TestContextualize(t *testing.T) {
	obj := map[string]any{
		"@context": "http://schema.example.org/base",
		"plain":    "unchanged",
		"nested": map[string]any{
			"schema.org/about": map[string]any{
				"deep": map[string]any{
					"schema.org/name": map[string]any{"v": 1},
				},
			},
			"schema.org/url": map[string]any{"v": 2},
			"untouched":      "scalar",
		},
	}

	out := Contextualize(obj)

	assert.Equal(t, "unchanged", out["plain"])

	nested, ok := out["nested"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, nested, "schemaorg:about")
	assert.Contains(t, nested, "schemaorg:url")
	assert.NotContains(t, nested, "schema.org/about")
	assert.Equal(t, "scalar", nested["untouched"])

	about, ok := nested["schemaorg:about"].(map[string]any)
	require.True(t, ok)
	deep, ok := about["deep"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, deep, "schemaorg:name")

	context, ok := out["@context"].([]any)
	require.True(t, ok)
	assert.Equal(t, "http://schema.example.org/base", context[0])

	// Three rewritten keys share one namespace, so exactly one entry is
	// synthesized for it.
	synthesized := 0
	for _, entry := range context[1:] {
		m, isMap := entry.(map[string]any)
		require.True(t, isMap)
		if m["schemaorg"] == "schema.org/" {
			synthesized++
		}
	}
	assert.Equal(t, 1, synthesized)
}

func TestContextualizeLeavesNoDottedKeys(t *testing.T) {
	obj := map[string]any{
		"top": map[string]any{
			"a.example/one": map[string]any{
				"b.example/two": map[string]any{
					"c.example/three": map[string]any{"leaf": true},
				},
			},
		},
	}

	out := Contextualize(obj)

	var walk func(m map[string]any)
	walk = func(m map[string]any) {
		for k, v := range m {
			if k == "@context" {
				continue
			}
			if sub, ok := v.(map[string]any); ok {
				assert.False(t, strings.Contains(k, "."), "key %q still dotted", k)
				walk(sub)
			}
		}
	}
	walk(out)
}

func TestKeyExpansion(t *testing.T) {
	got := keyExpansion([]string{
		"schema:name",
		"http://schema.org/url",
		"plain",
	})

	assert.Contains(t, got, "name")
	assert.Contains(t, got, "url")
	assert.Contains(t, got, "plain")
	assert.NotContains(t, got, "schema:name")
}
