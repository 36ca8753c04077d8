package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"billtrack/internal/model"
	"billtrack/internal/pkg/dbutil"
	appErr "billtrack/internal/pkg/errors"
)

var userColumns = []string{"id", "name", "email", "password_hash", "ctime", "mtime"}

type UserRepo struct {
	db dbutil.Queryer
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// WithTx returns a copy of the repo bound to the given transaction.
func (r *UserRepo) WithTx(tx *sql.Tx) *UserRepo {
	return &UserRepo{db: tx}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) (int64, error) {
	data := map[string]interface{}{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var id int64
	if err := r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&id); err != nil {
		if dbutil.IsConflict(err) {
			return 0, appErr.ErrConflict
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
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
	var user model.User
	if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users ordered by id descending.
func (r *UserRepo) List(ctx context.Context, limit, offset uint) ([]model.User, error) {
	where := map[string]interface{}{
		"_orderby": "id desc",
		"_limit":   []uint{offset, limit},
	}
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	users := make([]model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Ctime, &user.Mtime); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	sqlStr, args, err := builder.BuildSelect("users", nil, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var total int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepo) Update(ctx context.Context, userID int64, name, email string, mtime int64) error {
	update := map[string]interface{}{
		"name":  name,
		"email": email,
		"mtime": mtime,
	}
	return r.update(ctx, userID, update)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string, mtime int64) error {
	update := map[string]interface{}{
		"password_hash": passwordHash,
		"mtime":         mtime,
	}
	return r.update(ctx, userID, update)
}

func (r *UserRepo) update(ctx context.Context, userID int64, update map[string]interface{}) error {
	where := map[string]interface{}{"id": userID}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, userID int64) error {
	where := map[string]interface{}{"id": userID}
	sqlStr, args, err := builder.BuildDelete("users", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
