package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErr "billtrack/internal/pkg/errors"
	"billtrack/internal/pkg/response"
	"billtrack/internal/pkg/validate"
	"billtrack/internal/service"
)

type BillHandler struct {
	bills *service.BillService
}

func NewBillHandler(bills *service.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

func (h *BillHandler) List(c *gin.Context) {
	page := pageParam(c)
	bills, meta, err := h.bills.List(c.Request.Context(), page)
	if err != nil {
		logWarn(c, "bills not listed", err)
		response.Fail(c, http.StatusBadRequest, "Bills not listed!")
		return
	}
	logInfo(c, "bills listed", zap.Int("page", page))
	response.Success(c, http.StatusOK, gin.H{
		"bills":       bills,
		"page":        meta.Page,
		"page_size":   meta.PageSize,
		"total":       meta.Total,
		"total_pages": meta.TotalPages,
	})
}

func (h *BillHandler) Show(c *gin.Context) {
	billID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "Bill not found!")
		return
	}
	bill, err := h.bills.Get(c.Request.Context(), billID)
	if err != nil {
		logWarn(c, "bill not found", err, zap.Int64("bill_id", billID))
		response.Fail(c, http.StatusNotFound, "Bill not found!")
		return
	}
	logInfo(c, "bill viewed", zap.Int64("bill_id", bill.ID))
	response.Success(c, http.StatusOK, gin.H{"bill": bill})
}

type billRequest struct {
	Name      string `json:"name"`
	BillValue string `json:"bill_value"`
	DueDate   string `json:"due_date"`
}

func (r billRequest) fields() map[string]string {
	return map[string]string{
		"name":       r.Name,
		"bill_value": r.BillValue,
		"due_date":   r.DueDate,
	}
}

func (r billRequest) input() service.BillInput {
	return service.BillInput{
		Name:      r.Name,
		BillValue: r.BillValue,
		DueDate:   r.DueDate,
	}
}

func (h *BillHandler) Create(c *gin.Context) {
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validate.BillRules.Apply(req.fields()); errs != nil {
		response.ValidationFail(c, errs)
		return
	}
	bill, err := h.bills.Create(c.Request.Context(), req.input())
	if err != nil {
		logWarn(c, "bill not created", err)
		response.Fail(c, http.StatusBadRequest, "Bill not created!")
		return
	}
	logInfo(c, "bill created", zap.Int64("bill_id", bill.ID))
	response.Success(c, http.StatusCreated, gin.H{
		"bill":    bill,
		"message": "Bill created successfully!",
	})
}

func (h *BillHandler) Update(c *gin.Context) {
	billID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "Bill not found!")
		return
	}
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := validate.BillRules.Apply(req.fields()); errs != nil {
		response.ValidationFail(c, errs)
		return
	}
	bill, err := h.bills.Update(c.Request.Context(), billID, req.input())
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "bill not found", err, zap.Int64("bill_id", billID))
			response.Fail(c, http.StatusNotFound, "Bill not found!")
			return
		}
		logWarn(c, "bill not updated", err, zap.Int64("bill_id", billID))
		response.Fail(c, http.StatusBadRequest, "Bill not updated!")
		return
	}
	logInfo(c, "bill updated", zap.Int64("bill_id", bill.ID))
	response.Success(c, http.StatusOK, gin.H{
		"bill":    bill,
		"message": "Bill updated successfully!",
	})
}

func (h *BillHandler) Delete(c *gin.Context) {
	billID, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusNotFound, "Bill not found!")
		return
	}
	bill, err := h.bills.Delete(c.Request.Context(), billID)
	if err != nil {
		if appErr.IsNotFound(err) {
			logWarn(c, "bill not found", err, zap.Int64("bill_id", billID))
			response.Fail(c, http.StatusNotFound, "Bill not found!")
			return
		}
		logWarn(c, "bill not deleted", err, zap.Int64("bill_id", billID))
		response.Fail(c, http.StatusBadRequest, "Bill not deleted!")
		return
	}
	logInfo(c, "bill deleted", zap.Int64("bill_id", bill.ID))
	response.Success(c, http.StatusOK, gin.H{
		"bill":    bill,
		"message": "Bill deleted successfully!",
	})
}
