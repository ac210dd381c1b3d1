// SPDX-License-Identifier: Apache-2.0

package models

// CreateResponseRequest is the decoded form body of POST /api/response.
type CreateResponseRequest struct {
	// Metadata is the response payload. It must contain "applet" and
	// "activity" keys, each an object or a plain string label.
	Metadata map[string]any `json:"metadata"`

	// SubjectID optionally names the user the response is about.
	// Empty means the informant is their own subject.
	SubjectID string `json:"subject_id,omitempty"`
}

// ResponseListing is the body of GET /api/response: all visible response
// items for one applet, keyed by the applet ID the query asked about.
type ResponseListing map[string][]Item
