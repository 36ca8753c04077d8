package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"billtrack/internal/model"
	"billtrack/internal/pkg/dbutil"
	appErr "billtrack/internal/pkg/errors"
)

var tokenColumns = []string{"id", "user_id", "ctime", "expires_at"}

type TokenRepo struct {
	db dbutil.Queryer
}

func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) WithTx(tx *sql.Tx) *TokenRepo {
	return &TokenRepo{db: tx}
}

func (r *TokenRepo) Create(ctx context.Context, token *model.AccessToken) error {
	data := map[string]interface{}{
		"id":         token.ID,
		"user_id":    token.UserID,
		"ctime":      token.Ctime,
		"expires_at": token.ExpiresAt,
	}
	sqlStr, args, err := builder.BuildInsert("access_tokens", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TokenRepo) Get(ctx context.Context, tokenID string) (*model.AccessToken, error) {
	where := map[string]interface{}{"id": tokenID}
	sqlStr, args, err := builder.BuildSelect("access_tokens", where, tokenColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var token model.AccessToken
	if err := rows.Scan(&token.ID, &token.UserID, &token.Ctime, &token.ExpiresAt); err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByUser removes every token held by the user, revoking all of the
// user's sessions at once.
func (r *TokenRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	where := map[string]interface{}{"user_id": userID}
	sqlStr, args, err := builder.BuildDelete("access_tokens", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *TokenRepo) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	where := map[string]interface{}{"expires_at <": before}
	sqlStr, args, err := builder.BuildDelete("access_tokens", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
