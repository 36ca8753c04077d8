package service

import (
	"context"
	"database/sql"
	"fmt"

	"billtrack/internal/model"
	"billtrack/internal/pkg/timeutil"
	"billtrack/internal/repo"
)

type BillService struct {
	db       *sql.DB
	bills    *repo.BillRepo
	pageSize int
}

func NewBillService(db *sql.DB, bills *repo.BillRepo, pageSize int) *BillService {
	return &BillService{db: db, bills: bills, pageSize: pageSize}
}

func (s *BillService) List(ctx context.Context, page int) ([]model.Bill, *Page, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.bills.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	offset := uint(page-1) * uint(s.pageSize)
	bills, err := s.bills.List(ctx, uint(s.pageSize), offset)
	if err != nil {
		return nil, nil, err
	}
	return bills, newPage(page, s.pageSize, total), nil
}

func (s *BillService) Get(ctx context.Context, billID int64) (*model.Bill, error) {
	return s.bills.GetByID(ctx, billID)
}

// BillInput holds the validated fields of a create or update request.
// Values reach the service only after the validation layer accepted them.
type BillInput struct {
	Name      string
	BillValue string
	DueDate   string
}

func (s *BillService) Create(ctx context.Context, in BillInput) (*model.Bill, error) {
	now := timeutil.NowUnix()
	bill := &model.Bill{
		Name:      in.Name,
		BillValue: in.BillValue,
		DueDate:   in.DueDate,
		Ctime:     now,
		Mtime:     now,
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	id, err := s.bills.WithTx(tx).Create(ctx, bill)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	bill.ID = id
	return bill, nil
}

func (s *BillService) Update(ctx context.Context, billID int64, in BillInput) (*model.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	bill.Name = in.Name
	bill.BillValue = in.BillValue
	bill.DueDate = in.DueDate
	bill.Mtime = timeutil.NowUnix()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.bills.WithTx(tx).Update(ctx, bill); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return bill, nil
}

func (s *BillService) Delete(ctx context.Context, billID int64) (*model.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.bills.WithTx(tx).Delete(ctx, billID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return bill, nil
}
