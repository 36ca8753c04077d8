package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/didi/gendry/builder"

	"billtrack/internal/model"
	"billtrack/internal/pkg/dbutil"
	appErr "billtrack/internal/pkg/errors"
)

var billColumns = []string{"id", "name", "bill_value", "due_date", "ctime", "mtime"}

type BillRepo struct {
	db dbutil.Queryer
}

func NewBillRepo(db *sql.DB) *BillRepo {
	return &BillRepo{db: db}
}

func (r *BillRepo) WithTx(tx *sql.Tx) *BillRepo {
	return &BillRepo{db: tx}
}

func (r *BillRepo) Create(ctx context.Context, bill *model.Bill) (int64, error) {
	data := map[string]interface{}{
		"name":       bill.Name,
		"bill_value": bill.BillValue,
		"due_date":   bill.DueDate,
		"ctime":      bill.Ctime,
		"mtime":      bill.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("bills", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var id int64
	if err := r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BillRepo) GetByID(ctx context.Context, billID int64) (*model.Bill, error) {
	where := map[string]interface{}{"id": billID}
	sqlStr, args, err := builder.BuildSelect("bills", where, billColumns)
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
	bill, err := scanBill(rows)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (r *BillRepo) List(ctx context.Context, limit, offset uint) ([]model.Bill, error) {
	where := map[string]interface{}{
		"_orderby": "id desc",
		"_limit":   []uint{offset, limit},
	}
	sqlStr, args, err := builder.BuildSelect("bills", where, billColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	bills := make([]model.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}

func (r *BillRepo) Count(ctx context.Context) (int64, error) {
	sqlStr, args, err := builder.BuildSelect("bills", nil, []string{"count(*)"})
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

func (r *BillRepo) Update(ctx context.Context, bill *model.Bill) error {
	where := map[string]interface{}{"id": bill.ID}
	update := map[string]interface{}{
		"name":       bill.Name,
		"bill_value": bill.BillValue,
		"due_date":   bill.DueDate,
		"mtime":      bill.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("bills", where, update)
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

func (r *BillRepo) Delete(ctx context.Context, billID int64) error {
	where := map[string]interface{}{"id": billID}
	sqlStr, args, err := builder.BuildDelete("bills", where)
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

// scanBill normalizes the postgres DATE and NUMERIC columns back to the
// wire formats ("YYYY-MM-DD", two fractional digits).
func scanBill(rows *sql.Rows) (*model.Bill, error) {
	var bill model.Bill
	var dueDate time.Time
	if err := rows.Scan(&bill.ID, &bill.Name, &bill.BillValue, &dueDate, &bill.Ctime, &bill.Mtime); err != nil {
		return nil, err
	}
	bill.DueDate = dueDate.Format("2006-01-02")
	return &bill, nil
}
