// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"reflect"
	"strings"
)

// contextForString derives a @context entry and a rewritten term for a dotted
// key. When the last path segment carries no dot, the namespace is the URL
// prefix and the term keeps the segment as a suffix ("prefix:segment");
// otherwise the whole string becomes the mapped value and the term is the
// derived key alone.
func contextForString(s string) (map[string]any, string) {
	parts := strings.Split(s, "/")
	last := parts[len(parts)-1]

	clean := func(v string) string {
		v = strings.ReplaceAll(v, ".", "")
		return strings.ReplaceAll(v, ":", "")
	}

	if strings.Contains(last, ".") {
		key := clean(strings.Join(parts, "_"))
		return map[string]any{key: s}, key
	}

	key := clean(strings.Join(parts[:len(parts)-1], "_"))
	prefix := strings.Join(parts[:len(parts)-1], "/") + "/"
	return map[string]any{key: prefix}, key + ":" + last
}

// Contextualize rewrites dotted keys of nested objects into
// @context-qualified "prefix:suffix" terms so the object becomes legal
// JSON-LD. Synthesized context entries accumulate on the object's @context
// list, deduplicated by exact equality. Non-object and non-dotted entries
// pass through unchanged.
func Contextualize(ldObj map[string]any) map[string]any {
	newObj := make(map[string]any, len(ldObj))
	context := contextList(ldObj["@context"])

	for k, v := range ldObj {
		if k == "@context" {
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			context, newObj[k] = deeperContextualize(sub, context)
		} else {
			newObj[k] = v
		}
	}

	newObj["@context"] = context
	return newObj
}

// deeperContextualize walks an object depth-first, rewriting every dotted key
// whose value is itself an object and collecting the synthesized context
// entries.
func deeperContextualize(ldObj map[string]any, context []any) ([]any, map[string]any) {
	newObj := make(map[string]any, len(ldObj))

	for k, v := range ldObj {
		sub, isObject := v.(map[string]any)
		if isObject {
			context, sub = deeperContextualize(sub, context)
			v = sub
		}
		if isObject && strings.Contains(k, ".") {
			entry, term := contextForString(k)
			newObj[term] = v
			if !containsEntry(context, entry) {
				context = append(context, entry)
			}
		} else {
			newObj[k] = v
		}
	}

	return context, newObj
}

// contextList coerces a @context value into a mutable list form.
func contextList(v any) []any {
	switch ctx := v.(type) {
	case nil:
		return []any{}
	case []any:
		out := make([]any, len(ctx))
		copy(out, ctx)
		return out
	default:
		return []any{ctx}
	}
}

func containsEntry(context []any, entry map[string]any) bool {
	for _, existing := range context {
		if reflect.DeepEqual(existing, entry) {
			return true
		}
	}
	return false
}

// keyExpansion strips namespace qualifiers from a key list: for every key the
// suffix after ':' and after '/' is included, and unqualified keys are kept
// as-is. Used to decide which original keys survived expansion.
func keyExpansion(keys []string) map[string]struct{} {
	expanded := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		qualified := false
		if i := strings.LastIndex(k, ":"); i >= 0 {
			expanded[k[i+1:]] = struct{}{}
			qualified = true
		}
		if i := strings.LastIndex(k, "/"); i >= 0 {
			expanded[k[i+1:]] = struct{}{}
			qualified = true
		}
		if !qualified {
			expanded[k] = struct{}{}
		}
	}
	return expanded
}
