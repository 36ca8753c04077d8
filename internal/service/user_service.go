package service

import (
	"context"
	"database/sql"
	"fmt"

	"billtrack/internal/model"
	"billtrack/internal/pkg/password"
	"billtrack/internal/pkg/timeutil"
	"billtrack/internal/repo"
)

type UserService struct {
	db       *sql.DB
	users    *repo.UserRepo
	pageSize int
}

func NewUserService(db *sql.DB, users *repo.UserRepo, pageSize int) *UserService {
	return &UserService{db: db, users: users, pageSize: pageSize}
}

func (s *UserService) List(ctx context.Context, page int) ([]model.User, *Page, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	offset := uint(page-1) * uint(s.pageSize)
	users, err := s.users.List(ctx, uint(s.pageSize), offset)
	if err != nil {
		return nil, nil, err
	}
	return users, newPage(page, s.pageSize, total), nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UserCreateInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) Create(ctx context.Context, in UserCreateInput) (*model.User, error) {
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	id, err := s.users.WithTx(tx).Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	user.ID = id
	return user, nil
}

func (s *UserService) Update(ctx context.Context, userID int64, name, email string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	mtime := timeutil.NowUnix()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.users.WithTx(tx).Update(ctx, userID, name, email, mtime); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	user.Name = name
	user.Email = email
	user.Mtime = mtime
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID int64, plainPassword string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	mtime := timeutil.NowUnix()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.users.WithTx(tx).UpdatePassword(ctx, userID, hash, mtime); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	user.PasswordHash = hash
	user.Mtime = mtime
	return user, nil
}

// Delete removes the user and returns the deleted record so the response
// can echo it back.
func (s *UserService) Delete(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.users.WithTx(tx).Delete(ctx, userID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return user, nil
}
