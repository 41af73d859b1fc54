package v1

import (
	"strconv"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.BadRequest("Invalid request body: " + err.Error())
	}
	return nil
}

// actorAndID is the common prologue of protected handlers addressing one resource.
func actorAndID(c *gin.Context, name string) (*domain.Principal, int64, error) {
	actor, err := middleware.CurrentPrincipal(c)
	if err != nil {
		return nil, 0, err
	}
	id, err := parseID(c, name)
	if err != nil {
		return nil, 0, err
	}
	return actor, id, nil
}
