// SPDX-License-Identifier: Apache-2.0

// Package jsonld normalizes, expands, and caches the JSON-LD metadata
// attached to stored documents.
//
// The pipeline is: Contextualize rewrites dotted keys into @context-qualified
// terms, Expander runs the standard JSON-LD expansion algorithm (json-gold)
// over the result, and Formatter applies type-specific assembly — hoisting an
// applet's activity set, importing linked components, stamping and persisting
// the cached representation.
//
// All tunables (entity hierarchy, value-constraint keys, default language,
// import iteration cap) are injected through Config rather than kept as
// package state.
package jsonld

import "time"

// Entity types a stored document can declare, most general first.
const (
	TypeApplet      = "applet"
	TypeActivitySet = "activitySet"
	TypeActivity    = "activity"
	TypeScreen      = "screen"
	TypeItem        = "item"
)

// OrderKey is the fully qualified term holding the ordered list of component
// references inside an activity set or activity definition.
const OrderKey = "https://raw.githubusercontent.com/ReproNim/schema-standardization/master/terms/order"

// GeneratedAtKey is the provenance term stamped onto every persisted cache.
const GeneratedAtKey = "prov:generatedAtTime"

// Config carries the injected tunables of the package.
type Config struct {
	// Hierarchy lists the known entity types, most general first.
	Hierarchy []string

	// KeysToExpand lists the value-constraint key variants that get a second,
	// recursive expansion pass.
	KeysToExpand []string

	// DefaultLanguage is the BCP-47 tag used by GetByLanguage when the caller
	// supplies none.
	DefaultLanguage string

	// ImportIterationCap bounds the component import fixed-point loop.
	ImportIterationCap int
}

// DefaultConfig returns the standard configuration for ReproNim-schema
// documents.
func DefaultConfig() Config {
	return Config{
		Hierarchy: []string{TypeApplet, TypeActivitySet, TypeActivity, TypeScreen, TypeItem},
		KeysToExpand: []string{
			"responseOptions",
			"https://schema.repronim.org/valueconstraints",
			"reproterms:valueconstraints",
			"valueconstraints",
		},
		DefaultLanguage:    "en-US",
		ImportIterationCap: 10,
	}
}

// XSDNow returns the current time as an XSD dateTime string, used for the
// prov:generatedAtTime cache stamp.
func XSDNow() string {
	return time.Now().Format(time.RFC3339Nano)
}
