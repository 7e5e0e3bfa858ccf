package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/metrics"
	"github.com/paothinnapat/sales-tracker/internal/service"
	pkgerrors "github.com/paothinnapat/sales-tracker/pkg/errors"
)

// HandleSubmitSale records a sale submission as ledger rows.
// Responses match the historical wire contract: 200 {message, count},
// 400 {error: "No items to record."}, 500 {error: "Failed to record sales",
// details}.
func HandleSubmitSale(ledger *service.LedgerService, reg *metrics.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SubmitSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Rejected malformed sale submission", zap.Error(err))
			reg.SubmissionsRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items to record."})
			return
		}

		count, err := ledger.RecordSale(c.Request.Context(), &req)
		if err != nil {
			if pkgerrors.IsValidation(err) {
				reg.SubmissionsRejected.Inc()
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reg.SubmissionsFailed.Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to record sales",
				"details": err.Error(),
			})
			return
		}

		reg.SubmissionsRecorded.Inc()
		reg.RowsAppended.Add(float64(count))
		c.JSON(http.StatusOK, gin.H{
			"message": "Sales recorded successfully",
			"count":   count,
		})
	}
}
