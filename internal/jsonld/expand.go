// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"context"
	"errors"

	"github.com/piprate/json-gold/ld"
	"github.com/rs/zerolog"
)

// ExpandState reports what Expand actually achieved for a document.
type ExpandState int

const (
	// StateExpanded means the processor produced an expanded document
	// (possibly nil when the input collapsed to nothing).
	StateExpanded ExpandState = iota
	// StateUnchanged means expansion could not proceed and the caller got
	// the original object back.
	StateUnchanged
)

// ExpandResult carries the expansion outcome together with the reason the
// document came back unchanged, when it did. Value is a map[string]any for
// single-node documents and a []any of finished nodes when the document
// carries several top-level nodes (an @graph, for example).
type ExpandResult struct {
	Value  any
	State  ExpandState
	Reason error
}

// Expander turns compacted JSON-LD objects into their expanded form,
// stripping unreachable remote contexts instead of failing outright.
type Expander struct {
	cfg    Config
	loader ld.DocumentLoader
	logger *zerolog.Logger
}

func NewExpander(cfg Config, loader ld.DocumentLoader, logger *zerolog.Logger) *Expander {
	return &Expander{cfg: cfg, loader: loader, logger: logger}
}

// Expand contextualizes and expands a JSON-LD object. Remote contexts that
// cannot be dereferenced are removed and expansion retried, bounded by the
// number of context entries the object started with. The result always says
// whether expansion happened; an unchanged result carries the reason.
func (e *Expander) Expand(ctx context.Context, obj map[string]any) ExpandResult {
	if obj == nil {
		return ExpandResult{State: StateExpanded}
	}

	prepared := Contextualize(obj)
	nodes, err := e.expandOnce(ctx, prepared)
	if err != nil {
		e.logger.Debug().Str("func", "Expand").Err(err).Msg("expansion failed, returning object unchanged")
		return ExpandResult{Value: obj, State: StateUnchanged, Reason: err}
	}

	if len(nodes) == 1 {
		node, ok := nodes[0].(map[string]any)
		if !ok {
			return ExpandResult{Value: nodes[0], State: StateExpanded}
		}
		if v := e.finishNode(ctx, node, obj); v != nil {
			return ExpandResult{Value: v, State: StateExpanded}
		}
		return ExpandResult{State: StateExpanded}
	}

	// Several top-level nodes: finish each one on its own and keep them all.
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		node, ok := n.(map[string]any)
		if !ok {
			out = append(out, n)
			continue
		}
		if v := e.finishNode(ctx, node, node); v != nil {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return ExpandResult{State: StateExpanded}
	}
	return ExpandResult{Value: out, State: StateExpanded}
}

// finishNode applies the post-expansion passes to one expanded node: merging
// back the original keys expansion dropped (the active context cannot map
// them, but the data should not be lost), removing falsy values, and
// recursively expanding the configured nested keys. Returns nil when nothing
// survives.
func (e *Expander) finishNode(ctx context.Context, node, orig map[string]any) map[string]any {
	expandedKeys := keyExpansion(mapKeys(node))
	for k, v := range orig {
		if k == "@context" {
			continue
		}
		suffix := k
		if i := lastDelimiter(k); i >= 0 {
			suffix = k[i+1:]
		}
		if _, ok := expandedKeys[suffix]; !ok {
			node[k] = v
		}
	}

	for k, v := range node {
		if dropFalsy(v) == nil {
			delete(node, k)
		} else {
			node[k] = dropFalsy(v)
		}
	}

	e.expandNestedKeys(ctx, node)
	if len(node) == 0 {
		return nil
	}
	return node
}

// expandOnce runs the processor, retrying with failed remote contexts
// removed from @context until expansion succeeds or nothing is left to
// remove. The result is the processor's raw node list.
func (e *Expander) expandOnce(ctx context.Context, obj map[string]any) ([]any, error) {
	proc := ld.NewJsonLdProcessor()

	attempts := 1 + len(contextList(obj["@context"]))
	for i := 0; i < attempts; i++ {
		recorder := &recordingLoader{base: e.loader}
		opts := ld.NewJsonLdOptions("")
		opts.DocumentLoader = recorder

		expanded, err := proc.Expand(obj, opts)
		if err == nil {
			return expanded, nil
		}

		var ldErr *ld.JsonLdError
		if !errors.As(err, &ldErr) || ldErr.Code != ld.LoadingRemoteContextFailed || len(recorder.failed) == 0 {
			return nil, err
		}

		trimmed, removed := removeContexts(obj, recorder.failed)
		if !removed {
			return nil, err
		}
		e.logger.Debug().Str("func", "expandOnce").
			Strs("contexts", recorder.failed).
			Msg("removed unreachable remote contexts")
		obj = trimmed
	}

	return nil, &ld.JsonLdError{Code: ld.LoadingRemoteContextFailed}
}

// expandNestedKeys recursively expands the configured nested keys, typically
// response option constraints referenced by @id.
func (e *Expander) expandNestedKeys(ctx context.Context, obj map[string]any) {
	for _, key := range e.cfg.KeysToExpand {
		nested, ok := obj[key]
		if !ok {
			continue
		}
		switch v := nested.(type) {
		case []any:
			expanded := make([]any, 0, len(v))
			for _, elem := range v {
				sub, ok := elem.(map[string]any)
				if !ok {
					expanded = append(expanded, elem)
					continue
				}
				ref, _ := sub["@id"].(map[string]any)
				if ref == nil {
					ref = sub
				}
				r := e.Expand(ctx, ref)
				if dropFalsy(r.Value) != nil {
					expanded = append(expanded, r.Value)
				}
			}
			if len(expanded) != 0 {
				obj[key] = expanded
			} else {
				delete(obj, key)
			}
		case map[string]any:
			r := e.Expand(ctx, v)
			if dropFalsy(r.Value) != nil {
				obj[key] = r.Value
			}
		case nil:
			delete(obj, key)
		}
	}
}

// recordingLoader remembers which URLs the wrapped loader failed to fetch so
// the offending @context entries can be removed before a retry.
type recordingLoader struct {
	base   ld.DocumentLoader
	failed []string
}

func (r *recordingLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	doc, err := r.base.LoadDocument(u)
	if err != nil {
		r.failed = append(r.failed, u)
	}
	return doc, err
}

// removeContexts strips the failed URLs from the object's @context and
// reports whether anything was removed.
func removeContexts(obj map[string]any, failed []string) (map[string]any, bool) {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}

	bad := make(map[string]struct{}, len(failed))
	for _, u := range failed {
		bad[u] = struct{}{}
	}

	removed := false
	kept := make([]any, 0)
	for _, entry := range contextList(obj["@context"]) {
		if s, ok := entry.(string); ok {
			if _, isBad := bad[s]; isBad {
				removed = true
				continue
			}
		}
		kept = append(kept, entry)
	}
	if !removed {
		return obj, false
	}

	if len(kept) == 0 {
		delete(out, "@context")
	} else {
		out["@context"] = kept
	}
	return out, true
}

// dropFalsy removes empty values: nil, false, zero numbers, empty strings,
// empty lists and empty maps collapse to nil. Non-empty lists keep their
// shape, single-element ones included.
func dropFalsy(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		if !val {
			return nil
		}
	case string:
		if val == "" {
			return nil
		}
	case float64:
		if val == 0 {
			return nil
		}
	case int:
		if val == 0 {
			return nil
		}
	case []any:
		if len(val) == 0 {
			return nil
		}
	case map[string]any:
		if len(val) == 0 {
			return nil
		}
	}
	return v
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func lastDelimiter(k string) int {
	for i := len(k) - 1; i >= 0; i-- {
		if k[i] == ':' || k[i] == '/' {
			return i
		}
	}
	return -1
}

