package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shoply-dev/shoply/shared/domain"
	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	shared_pg "github.com/shoply-dev/shoply/shared/storage/pg"
)

const opTimeout = 5 * time.Second

// uniqueViolation is the postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// mapUniqueViolation turns a constraint failure into the caller-facing
// conflict error for the colliding field.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "accounts_email_key":
			return internal_errors.NewBadRequest("Email is already registered")
		case "accounts_login_key":
			return internal_errors.NewBadRequest("Username is already taken")
		}
	}
	return err
}

// =========================================================================
// Public methods (satisfy the service.AccountStorage interface)
// =========================================================================

func (s *Storage) SaveAccount(account domain.Account) (domain.AccountId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.saveAccount(tx, account)
	})
	if err != nil {
		return "", err
	}
	return account.Id, nil
}

func (s *Storage) AccountByEmail(email domain.Email) (domain.Account, error) {
	return s.account(s.db, "a.email = $1", email)
}

func (s *Storage) AccountByLogin(login domain.Login) (domain.Account, error) {
	return s.account(s.db, "a.login = $1", login)
}

func (s *Storage) AccountById(id domain.AccountId) (domain.Account, error) {
	return s.account(s.db, "a.id = $1", id)
}

func (s *Storage) UpdatePassword(id domain.AccountId, passHash, securityStamp string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.updateField(tx, id, "password_hash", passHash, securityStamp)
	})
}

func (s *Storage) UpdateLogin(id domain.AccountId, login domain.Login, securityStamp string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.updateField(tx, id, "login", login, securityStamp)
	})
}

// UpdateEmail also resets the confirmed flag: the new address has not been
// proven yet, whatever the state of the old one was.
func (s *Storage) UpdateEmail(id domain.AccountId, email domain.Email, securityStamp string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"UPDATE accounts SET email = $1, email_confirmed = FALSE, security_stamp = $2 WHERE id = $3",
			email, securityStamp, id)
		if err != nil {
			return mapUniqueViolation(err)
		}
		return requireAffected(result, "email update")
	})
}

// UpdateIdentity changes login and email in one statement so a uniqueness
// conflict on either column leaves neither committed. The confirmed-flag
// reset of UpdateEmail applies here too.
func (s *Storage) UpdateIdentity(id domain.AccountId, login domain.Login, email domain.Email, securityStamp string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"UPDATE accounts SET login = $1, email = $2, email_confirmed = FALSE, security_stamp = $3 WHERE id = $4",
			login, email, securityStamp, id)
		if err != nil {
			return mapUniqueViolation(err)
		}
		return requireAffected(result, "identity update")
	})
}

func (s *Storage) ConfirmEmail(id domain.AccountId) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE accounts SET email_confirmed = TRUE WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to confirm email: %w", err)
		}
		return requireAffected(result, "email confirmation")
	})
}

func (s *Storage) DeleteAccount(id domain.AccountId) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM accounts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return requireAffected(result, "account deletion")
	})
}

// =========================================================================
// Internal methods, transaction-agnostic
// =========================================================================

func (s *Storage) saveAccount(q shared_pg.Querier, account domain.Account) error {
	_, err := q.Exec(`
        INSERT INTO accounts(id, login, email, password_hash, email_confirmed, security_stamp)
        VALUES($1, $2, $3, $4, $5, $6)`,
		account.Id, account.Login, account.Email, account.PassHash, account.EmailConfirmed, account.SecurityStamp)
	if err != nil {
		return mapUniqueViolation(err)
	}

	for _, role := range account.Roles {
		if _, err := q.Exec("INSERT INTO account_roles(account_id, role) VALUES($1, $2)", account.Id, role); err != nil {
			return fmt.Errorf("failed to insert role: %w", err)
		}
	}
	return nil
}

// account fetches a single account with its roles aggregated into an array.
func (s *Storage) account(q shared_pg.Querier, where string, arg interface{}) (domain.Account, error) {
	var account domain.Account
	var roles pq.StringArray
	err := q.QueryRow(`
        SELECT a.id, a.login, a.email, a.password_hash, a.email_confirmed, a.security_stamp,
               (a.created_at at time zone 'utc'),
               COALESCE(array_agg(r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
        FROM accounts a
        LEFT JOIN account_roles r ON r.account_id = a.id
        WHERE `+where+`
        GROUP BY a.id`,
		arg,
	).Scan(&account.Id, &account.Login, &account.Email, &account.PassHash,
		&account.EmailConfirmed, &account.SecurityStamp, &account.CreatedAt, &roles)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, internal_errors.NewNotFound("Account not found")
		}
		return domain.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	account.Roles = roles
	return account, nil
}

func (s *Storage) updateField(q shared_pg.Querier, id domain.AccountId, column, value, securityStamp string) error {
	result, err := q.Exec(
		fmt.Sprintf("UPDATE accounts SET %s = $1, security_stamp = $2 WHERE id = $3", column),
		value, securityStamp, id)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return requireAffected(result, column+" update")
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for %s: %w", op, err)
	}
	if affected == 0 {
		return internal_errors.NewNotFound("Account not found")
	}
	return nil
}
