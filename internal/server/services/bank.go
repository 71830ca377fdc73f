package services

import (
	"context"

	"github.com/hardbank/hardbank/internal/logging"
	"github.com/hardbank/hardbank/internal/server/authz"
	"github.com/hardbank/hardbank/internal/server/csrf"
	"github.com/hardbank/hardbank/internal/server/ledger"
	"github.com/hardbank/hardbank/internal/server/models"
	"github.com/hardbank/hardbank/internal/server/sessions"
)

// LoginResult carries everything the boundary needs after a successful
// login: the raw session token for the cookie and the CSRF token for the
// response body.
type LoginResult struct {
	SessionToken string
	CSRFToken    string
	UserID       string
}

// Bank is the transfer orchestrator: the only externally reachable path to
// the ledger. Every mutating operation runs session validation, the CSRF
// check and authorization in a fixed order; the CSRF check is unconditional
// here so no caller can forget it.
type Bank struct {
	creds    *Credentials
	sessions *sessions.Manager
	guard    *csrf.Guard
	gate     *authz.Gate
	ledger   ledger.Ledger
	logger   logging.Logger
}

func NewBank(creds *Credentials, sm *sessions.Manager, guard *csrf.Guard, gate *authz.Gate, l ledger.Ledger, log logging.Logger) *Bank {
	return &Bank{
		creds:    creds,
		sessions: sm,
		guard:    guard,
		gate:     gate,
		ledger:   l,
		logger:   log.With("module", "bank"),
	}
}

// Login verifies credentials and issues a session plus its CSRF token.
func (b *Bank) Login(ctx context.Context, clientAddr, username, password string) (*LoginResult, error) {
	userID, err := b.creds.Verify(ctx, clientAddr, username, password)
	if err != nil {
		return nil, err
	}

	rawToken, session, err := b.sessions.Create(ctx, userID)
	if err != nil {
		b.logger.Error(ctx, "session create failed", "error", err.Error())
		return nil, err
	}

	return &LoginResult{
		SessionToken: rawToken,
		CSRFToken:    b.guard.TokenFor(session),
		UserID:       userID,
	}, nil
}

// Logout revokes the session. Mutating, so the CSRF token is required.
func (b *Bank) Logout(ctx context.Context, sessionToken, csrfToken string) error {
	session, err := b.sessions.Validate(ctx, sessionToken)
	if err != nil {
		return err
	}
	if err := b.guard.Validate(session, csrfToken); err != nil {
		return err
	}
	return b.sessions.Revoke(ctx, sessionToken)
}

// ViewAccount is the read path: session then ownership, no CSRF.
func (b *Bank) ViewAccount(ctx context.Context, sessionToken, accountID string) (*models.Account, error) {
	session, err := b.sessions.Validate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	return b.gate.Authorize(ctx, session, accountID, authz.Read)
}

// ListTransfers returns the transfer history of an account the session's
// user owns. Same checks as ViewAccount.
func (b *Bank) ListTransfers(ctx context.Context, sessionToken, accountID string) ([]models.TransferRecord, error) {
	session, err := b.sessions.Validate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if _, err := b.gate.Authorize(ctx, session, accountID, authz.Read); err != nil {
		return nil, err
	}
	return b.ledger.ListTransfers(ctx, accountID)
}

// Transfer is the single mutating sequence: session, CSRF, ownership of the
// source, then the ledger's atomic unit. The destination only has to exist;
// that is checked inside the ledger transaction, and a missing destination
// surfaces exactly like a denied account so ids cannot be probed.
func (b *Bank) Transfer(ctx context.Context, sessionToken, csrfToken string, req models.TransferRequest) (*models.TransferRecord, error) {
	session, err := b.sessions.Validate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	if err := b.guard.Validate(session, csrfToken); err != nil {
		return nil, err
	}

	if _, err := b.gate.Authorize(ctx, session, req.SourceAccountID, authz.Write); err != nil {
		return nil, err
	}

	rec, err := b.ledger.Transfer(ctx, req)
	if err != nil {
		return nil, err
	}

	b.logger.Info(ctx, "transfer committed",
		"transfer_id", rec.ID,
		"source", rec.SourceAccountID,
		"destination", rec.DestinationAccountID,
		"amount", rec.Amount)
	return rec, nil
}
