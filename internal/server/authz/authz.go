// Package authz decides whether a session may touch an account.
package authz

import (
	"context"
	"errors"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/server/ledger"
	"github.com/hardbank/hardbank/internal/server/models"
)

// Intent is the kind of access being requested.
type Intent int

const (
	Read Intent = iota
	Write
)

type Gate struct {
	ledger ledger.Ledger
}

func NewGate(l ledger.Ledger) *Gate {
	return &Gate{ledger: l}
}

// Authorize allows access iff the account exists and the session's user owns
// it. The same ErrorDenied covers "no such account" and "not yours", so a
// caller cannot probe which account ids exist. The account snapshot is
// returned on success so read paths need no second lookup.
//
// Ownership is all-or-nothing here; Read and Write carry the same rule and
// the intent exists so call sites state what they are about to do.
func (g *Gate) Authorize(ctx context.Context, session *models.Session, accountID string, intent Intent) (*models.Account, error) {
	account, err := g.ledger.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorAccountNotFound) {
			return nil, common.ErrorDenied
		}
		return nil, err
	}

	if account.OwnerUserID != session.UserID {
		return nil, common.ErrorDenied
	}

	return account, nil
}
