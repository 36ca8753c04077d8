package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"billtrack/internal/middleware"
)

func actingUserID(c *gin.Context) int64 {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(int64)
	return userID
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// logInfo records a successful operation with the acting user attached.
func logInfo(c *gin.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Int64("action_user_id", actingUserID(c)))
	logutil.GetLogger(c.Request.Context()).Info(msg, fields...)
}

// logWarn records a failed operation; the error detail goes to the log
// only, never to the caller.
func logWarn(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Int64("action_user_id", actingUserID(c)), zap.Error(err))
	logutil.GetLogger(c.Request.Context()).Warn(msg, fields...)
}
