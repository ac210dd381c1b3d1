// SPDX-License-Identifier: Apache-2.0

package service

import "errors"

// Sentinel errors returned by the service layer. Handlers match these with
// [errors.Is] to pick HTTP status codes.
var (
	// ErrInvalidDataProvided is returned when a request carries data the
	// service cannot work with (empty login, malformed identifier).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when password verification fails on login.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenIsExpired is returned when an authentication token fails
	// validation because its lifetime ran out.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrAccessDenied is returned when the caller lacks the access level an
	// operation requires on the target document.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidMetadata is returned when a response submission is missing
	// the required applet or activity metadata keys.
	ErrInvalidMetadata = errors.New("response metadata must include applet and activity")

	// ErrNoAppletData is returned when an applet folder carries no metadata
	// to format. Distinct from a formatting failure.
	ErrNoAppletData = errors.New("applet has no metadata")
)
