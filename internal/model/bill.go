package model

// Bill is a payable obligation. BillValue travels as a string with exactly
// two fractional digits ("150.00") and DueDate as "YYYY-MM-DD"; both
// round-trip unchanged through create and fetch.
type Bill struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BillValue string `json:"bill_value"`
	DueDate   string `json:"due_date"`
	Ctime     int64  `json:"ctime"`
	Mtime     int64  `json:"mtime"`
}
