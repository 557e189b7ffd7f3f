package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"gorm.io/gorm"
)

// parseID reads a positive numeric path parameter. Anything else is reported as not found.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusNotFound, services.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the body and answers 400 with field messages when it does not validate.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields := utils.BindingErrors(err); fields != nil {
			utils.RespondValidation(c, http.StatusBadRequest, fields)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return false
	}
	return true
}

// bindJSONFields is bindJSON for PATCH handlers that need to know which top-level keys
// the body carried, so an absent key keeps the stored value and an explicit null clears it.
func bindJSONFields(c *gin.Context, dst interface{}) (map[string]json.RawMessage, bool) {
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		if fields := utils.BindingErrors(err); fields != nil {
			utils.RespondValidation(c, http.StatusBadRequest, fields)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return nil, false
	}

	present := map[string]json.RawMessage{}
	if body, ok := c.Get(gin.BodyBytesKey); ok {
		if err := json.Unmarshal(body.([]byte), &present); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return nil, false
		}
	}
	return present, true
}

func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.RespondValidation(c, http.StatusBadRequest, map[string]string{name: "Enter a whole number."})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		utils.RespondValidation(c, http.StatusBadRequest, map[string]string{name: "Enter true or false."})
		return nil, false
	}
	return &v, true
}

// respondServiceError maps service errors onto the response envelope.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondValidation(c, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, services.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.WithField("path", c.FullPath()).Errorf("request failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func userID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
