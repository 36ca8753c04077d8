package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	appErr "billtrack/internal/pkg/errors"
	"billtrack/internal/repo"
)

var billRows = []string{"id", "name", "bill_value", "due_date", "ctime", "mtime"}

func TestBillServiceCreateCommits(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	bills := NewBillService(conn, repo.NewBillRepo(conn), 40)
	bill, err := bills.Create(context.Background(), BillInput{
		Name:      "Energia",
		BillValue: "150.00",
		DueDate:   "2024-06-10",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), bill.ID)
	require.Equal(t, "150.00", bill.BillValue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillServiceCreateRollsBackOnFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	bills := NewBillService(conn, repo.NewBillRepo(conn), 40)
	_, err = bills.Create(context.Background(), BillInput{
		Name:      "Energia",
		BillValue: "150.00",
		DueDate:   "2024-06-10",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillServiceUpdateCommits(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM bills").
		WillReturnRows(sqlmock.NewRows(billRows).
			AddRow(int64(1), "Energia", "150.00", due, int64(100), int64(100)))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bills").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	bills := NewBillService(conn, repo.NewBillRepo(conn), 40)
	bill, err := bills.Update(context.Background(), 1, BillInput{
		Name:      "Energia Junho",
		BillValue: "175.25",
		DueDate:   "2024-07-10",
	})
	require.NoError(t, err)
	require.Equal(t, "Energia Junho", bill.Name)
	require.Equal(t, "175.25", bill.BillValue)
	require.Equal(t, "2024-07-10", bill.DueDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillServiceDeleteNotFoundSkipsTx(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT .+ FROM bills").
		WillReturnRows(sqlmock.NewRows(billRows))

	bills := NewBillService(conn, repo.NewBillRepo(conn), 40)
	_, err = bills.Delete(context.Background(), 99)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
