// SPDX-License-Identifier: Apache-2.0

package service

import (
	"github.com/dkhasanov/appletd/internal/config"
	"github.com/dkhasanov/appletd/internal/utils"
	"github.com/google/uuid"
)

// newTestToken issues a signed token string for the given user with the test
// configuration's parameters.
func newTestToken(cfg config.App, userID uuid.UUID) (string, error) {
	token, err := utils.GenerateJWTToken(cfg.TokenIssuer, userID, cfg.TokenDuration, cfg.TokenSignKey)
	if err != nil {
		return "", err
	}
	return token.SignedString, nil
}
