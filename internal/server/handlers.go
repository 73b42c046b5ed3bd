package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"iate-log/internal/models"
	"iate-log/internal/service"
)

// maxImageBytes caps an uploaded meal photo.
const maxImageBytes = 10 << 20

type addMealRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (s *MealLogServer) handleListMeals(c *gin.Context) {
	var (
		meals []models.MealRecord
		err   error
	)
	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		meals, err = s.svc.MealsInRange(c.Request.Context(), from, to)
	} else {
		meals, err = s.svc.Meals(c.Request.Context(), c.Query("date"))
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if meals == nil {
		meals = []models.MealRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (s *MealLogServer) handleAddMeal(c *gin.Context) {
	var req addMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}
	meal, err := s.svc.AddMealFromText(c.Request.Context(), req.Description, req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (s *MealLogServer) handleAddMealPhoto(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		writeError(c, fmt.Errorf("%w: image file is required", service.ErrInvalidInput))
		return
	}
	if fh.Size > maxImageBytes {
		writeError(c, fmt.Errorf("%w: image is larger than %d bytes", service.ErrInvalidInput, maxImageBytes))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		writeError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	meal, err := s.svc.AddMealFromImage(c.Request.Context(), data, c.PostForm("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (s *MealLogServer) handleDeleteMeal(c *gin.Context) {
	if err := s.svc.DeleteMeal(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *MealLogServer) handleClearMeals(c *gin.Context) {
	if err := s.svc.ClearMeals(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *MealLogServer) handleGetProfile(c *gin.Context) {
	p, err := s.svc.Profile(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.View(p))
}

func (s *MealLogServer) handleSaveProfile(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}
	p, err := s.svc.SaveProfile(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.View(p))
}

func (s *MealLogServer) handleResetProfile(c *gin.Context) {
	p, err := s.svc.ResetProfile(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.View(p))
}

func (s *MealLogServer) handleSummary(c *gin.Context) {
	report, err := s.svc.Summary(c.Request.Context(), models.Period(c.Param("period")), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
