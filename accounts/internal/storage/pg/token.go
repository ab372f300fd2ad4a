package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shoply-dev/shoply/shared/domain"
	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	shared_pg "github.com/shoply-dev/shoply/shared/storage/pg"
)

// SaveConfirmationToken replaces any earlier token for the account: only the
// most recently issued link works.
func (s *Storage) SaveConfirmationToken(token domain.ConfirmationToken) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM confirmation_tokens WHERE account_id = $1", token.AccountId); err != nil {
			return fmt.Errorf("failed to clear stale tokens: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO confirmation_tokens(account_id, token_hash) VALUES($1, $2)",
			token.AccountId, token.TokenHash); err != nil {
			return fmt.Errorf("failed to insert confirmation token: %w", err)
		}
		return nil
	})
}

// ConsumeConfirmationToken deletes the matching token. Deletion doubles as
// validation: zero rows means the token never existed or was already used.
func (s *Storage) ConsumeConfirmationToken(id domain.AccountId, tokenHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"DELETE FROM confirmation_tokens WHERE account_id = $1 AND token_hash = $2",
			id, tokenHash)
		if err != nil {
			return fmt.Errorf("failed to consume confirmation token: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for token consumption: %w", err)
		}
		if affected == 0 {
			return internal_errors.NewNotFound("Confirmation token not found")
		}
		return nil
	})
}
