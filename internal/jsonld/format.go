// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"context"
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/rs/zerolog"
)

// Document is the formatter's view of a stored folder: its identifier, its
// metadata, and the previously formatted representation if one was cached.
type Document struct {
	ID     string
	Meta   map[string]any
	Cached map[string]any
}

// Resolver locates the document behind a component URL, either in local
// storage or by dereferencing the URL, and reports the component's type
// (applet, activitySet, activity, screen).
type Resolver interface {
	ResolveComponent(ctx context.Context, url string) (*Document, string, error)
}

// CacheWriter persists a formatted representation next to its source
// document.
type CacheWriter interface {
	WriteCache(ctx context.Context, docID string, cached map[string]any) error
}

// FormatOptions control a single formatting call.
type FormatOptions struct {
	// RefreshCache forces reformatting even when a cached representation
	// exists, and rewrites the cache afterwards.
	RefreshCache bool
}

// Formatter turns stored JSON-LD documents into their fully expanded,
// dereferenced representation. Applets pull in their activity set, activity
// sets pull in their activities and screens, and the assembled result is
// cached on the applet document.
type Formatter struct {
	cfg      Config
	expander *Expander
	resolver Resolver
	cache    CacheWriter
	logger   *zerolog.Logger
}

func NewFormatter(cfg Config, expander *Expander, resolver Resolver, cache CacheWriter, logger *zerolog.Logger) *Formatter {
	return &Formatter{cfg: cfg, expander: expander, resolver: resolver, cache: cache, logger: logger}
}

// FormatLdObject formats a document of the given type. A document without
// metadata yields ErrNoMetadata; a document that cannot be formatted even
// after a forced cache refresh yields ErrFormatFailed. The two are distinct
// so callers can tell "nothing to format" from "formatting broke".
func (f *Formatter) FormatLdObject(ctx context.Context, doc *Document, mesoPrefix string, opts FormatOptions) (map[string]any, error) {
	out, err := f.format(ctx, doc, mesoPrefix, opts.RefreshCache)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrNoMetadata) || errors.Is(err, ErrNoDocumentID) {
		return nil, err
	}

	f.logger.Warn().Str("func", "FormatLdObject").Err(err).
		Msg("formatting failed, retrying with cache refresh")
	out, retryErr := f.format(ctx, doc, mesoPrefix, true)
	if retryErr != nil {
		return nil, errors.Join(ErrFormatFailed, retryErr)
	}
	return out, nil
}

func (f *Formatter) format(ctx context.Context, doc *Document, mesoPrefix string, refresh bool) (map[string]any, error) {
	if doc == nil || doc.Meta == nil {
		return nil, ErrNoMetadata
	}
	if !refresh && len(doc.Cached) > 0 {
		return doc.Cached, nil
	}
	if doc.ID == "" {
		return nil, ErrNoDocumentID
	}

	meso := CamelCase(mesoPrefix)
	if meso == TypeApplet {
		return f.formatApplet(ctx, doc, refresh)
	}

	mesoObj, ok := doc.Meta[meso].(map[string]any)
	if !ok {
		mesoObj = doc.Meta
	}

	res := f.expander.Expand(ctx, mesoObj)
	newObj, ok := res.Value.(map[string]any)
	if res.Value != nil && !ok {
		return nil, fmt.Errorf("metadata of %s expanded to multiple nodes", doc.ID)
	}
	if newObj == nil {
		newObj = map[string]any{}
	}
	newObj["_id"] = SnakeCase(meso) + "/" + doc.ID

	if meso == TypeActivitySet {
		return f.formatActivitySet(ctx, newObj, refresh)
	}
	return newObj, nil
}

// formatApplet assembles the full applet representation: the formatted
// activity set with its activities and screens hoisted to the top level, the
// applet's own metadata merged over the set's properties, and the result
// written back to the cache with a generation timestamp.
func (f *Formatter) formatApplet(ctx context.Context, doc *Document, refresh bool) (map[string]any, error) {
	setURL := metaURL(doc.Meta, TypeActivitySet)
	if setURL == "" {
		return nil, ErrNoActivitySetURL
	}

	setDoc, _, err := f.resolver.ResolveComponent(ctx, setURL)
	if err != nil {
		return nil, err
	}
	set, err := f.format(ctx, setDoc, TypeActivitySet, refresh)
	if err != nil {
		return nil, err
	}

	applet := map[string]any{
		"activities": popObject(set, "activities"),
		"items":      popObject(set, "items"),
	}

	inner := popObject(set, TypeActivitySet)
	ref := map[string]any{}
	for _, key := range []string{"@type", "_id", "http://schema.org/url"} {
		if v, ok := inner[key]; ok {
			ref[key] = v
		}
	}
	applet[TypeActivitySet] = ref

	merged := make(map[string]any, len(inner))
	for k, v := range inner {
		merged[k] = v
	}
	if appletMeta, ok := doc.Meta[TypeApplet].(map[string]any); ok {
		if err := mergo.Merge(&merged, appletMeta, mergo.WithOverride); err != nil {
			return nil, err
		}
	}
	merged["_id"] = TypeApplet + "/" + doc.ID
	merged["url"] = setURL
	applet[TypeApplet] = merged

	cached := make(map[string]any, len(applet)+1)
	for k, v := range applet {
		cached[k] = v
	}
	cached[GeneratedAtKey] = XSDNow()
	if err := f.cache.WriteCache(ctx, doc.ID, cached); err != nil {
		f.logger.Warn().Str("func", "formatApplet").Str("applet", doc.ID).Err(err).
			Msg("cannot cache formatted applet")
	}

	return applet, nil
}

// formatActivitySet imports every component the set's order references,
// then keeps importing the components those components reference, until no
// new ones appear. A visited set keeps each URL from being imported twice
// and the iteration cap turns a runaway reference graph into an error
// instead of an endless crawl.
func (f *Formatter) formatActivitySet(ctx context.Context, setObj map[string]any, refresh bool) (map[string]any, error) {
	activities := map[string]any{}
	items := map[string]any{}
	result := map[string]any{
		TypeActivitySet: setObj,
		"activities":    activities,
		"items":         items,
	}

	processed := map[string]struct{}{}
	pending := orderURLs(setObj)

	for round := 0; len(pending) > 0; round++ {
		if round >= f.cfg.ImportIterationCap {
			return nil, ErrCyclicComponentGraph
		}

		var next []string
		for _, u := range pending {
			if _, done := processed[u]; done {
				continue
			}
			processed[u] = struct{}{}

			component, mesoType, err := f.componentImport(ctx, u, refresh)
			if err != nil {
				f.logger.Warn().Str("func", "formatActivitySet").Str("url", u).Err(err).
					Msg("component import failed")
				continue
			}

			switch mesoType {
			case TypeActivity:
				activities[u] = component
				next = append(next, orderURLs(component)...)
			case TypeScreen, TypeItem:
				items[u] = component
			default:
				f.logger.Warn().Str("func", "formatActivitySet").
					Str("url", u).Str("type", mesoType).
					Msg("unrecognized component type")
			}
		}
		pending = next
	}

	return result, nil
}

// componentImport resolves and formats a single referenced component.
func (f *Formatter) componentImport(ctx context.Context, url string, refresh bool) (map[string]any, string, error) {
	doc, mesoType, err := f.resolver.ResolveComponent(ctx, url)
	if err != nil {
		return nil, "", err
	}
	formatted, err := f.format(ctx, doc, mesoType, refresh)
	if err != nil {
		return nil, "", err
	}
	return formatted, mesoType, nil
}

// orderURLs extracts the @id references from an expanded order property.
func orderURLs(obj map[string]any) []string {
	var urls []string
	entries, ok := obj[OrderKey].([]any)
	if !ok {
		if single, one := obj[OrderKey].(map[string]any); one {
			entries = []any{single}
		}
	}
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		list, _ := m["@list"].([]any)
		for _, elem := range list {
			em, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := em["@id"].(string); ok && id != "" {
				urls = append(urls, id)
			}
		}
	}
	return urls
}

func metaURL(meta map[string]any, key string) string {
	sub, _ := meta[key].(map[string]any)
	u, _ := sub["url"].(string)
	return u
}

func popObject(obj map[string]any, key string) map[string]any {
	v, _ := obj[key].(map[string]any)
	delete(obj, key)
	if v == nil {
		v = map[string]any{}
	}
	return v
}
