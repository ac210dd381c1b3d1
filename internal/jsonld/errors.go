// SPDX-License-Identifier: Apache-2.0

package jsonld

import "errors"

// Sentinel errors returned by the formatter. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrNoMetadata is returned when a document carries no metadata to
	// format. This is the "no data" outcome, distinct from a formatting
	// failure.
	ErrNoMetadata = errors.New("document has no metadata")

	// ErrNoDocumentID is returned when a document carries no identifier to
	// build the synthetic _id from.
	ErrNoDocumentID = errors.New("document has no identifier")

	// ErrFormatFailed is returned when formatting failed even after the
	// automatic refresh retry. It is never conflated with an empty result.
	ErrFormatFailed = errors.New("formatting JSON-LD object failed")

	// ErrNoActivitySetURL is returned when an applet's metadata does not
	// point at an activity set to assemble from.
	ErrNoActivitySetURL = errors.New("applet metadata has no activity set url")

	// ErrCyclicComponentGraph is returned when the component import loop does
	// not converge within the configured iteration cap, which indicates a
	// cyclic or unbounded reference graph.
	ErrCyclicComponentGraph = errors.New("cyclic reference in component graph")
)
