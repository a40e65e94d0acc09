package handlers

import (
	"errors"
	"net/http"

	"tutoria/services/scheduling"
	"tutoria/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// respondError translates service errors into HTTP responses. Scheduling
// error kinds map onto stable status codes so clients can branch on them;
// everything else is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case scheduling.IsKind(err, scheduling.KindSlotUnavailable),
		scheduling.IsKind(err, scheduling.KindSlotConflict),
		scheduling.IsKind(err, scheduling.KindInvalidTransition):
		c.JSON(http.StatusConflict, utils.ErrorResponse{
			Message: err.Error(),
			Code:    string(scheduling.ErrKind(err)),
		})
	case scheduling.IsKind(err, scheduling.KindUnauthorized):
		c.JSON(http.StatusForbidden, utils.ErrorResponse{
			Message: err.Error(),
			Code:    string(scheduling.KindUnauthorized),
		})
	case scheduling.IsKind(err, scheduling.KindToggleReconciliation):
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse{
			Message: err.Error(),
			Code:    string(scheduling.KindToggleReconciliation),
		})
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "Resource not found."})
	default:
		zap.L().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
		})
	}
}
