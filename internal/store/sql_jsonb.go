// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"fmt"

	"github.com/dkhasanov/appletd/models"
)

// marshalJSONB encodes m for a JSONB column. A nil map is stored as SQL NULL.
func marshalJSONB(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding jsonb column: %w", err)
	}
	return data, nil
}

// unmarshalJSONB decodes a JSONB column value. SQL NULL yields a nil map.
func unmarshalJSONB(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding jsonb column: %w", err)
	}
	return m, nil
}

// marshalACL encodes an access-control list for its JSONB column. UUID map
// keys serialize as their canonical string form.
func marshalACL(acl models.ACL) (any, error) {
	if acl == nil {
		acl = models.ACL{}
	}
	data, err := json.Marshal(acl)
	if err != nil {
		return nil, fmt.Errorf("encoding access column: %w", err)
	}
	return data, nil
}

// unmarshalACL decodes an access-control list JSONB column.
func unmarshalACL(raw []byte) (models.ACL, error) {
	if len(raw) == 0 {
		return models.ACL{}, nil
	}
	var acl models.ACL
	if err := json.Unmarshal(raw, &acl); err != nil {
		return nil, fmt.Errorf("decoding access column: %w", err)
	}
	return acl, nil
}
