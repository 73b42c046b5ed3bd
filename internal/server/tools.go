// internal/server/tools.go
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"

	"iate-log/internal/models"
	"iate-log/internal/service"
)

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type LogMealParams struct {
	Description string `json:"description" description:"Description of the meal eaten"`
	Date        string `json:"date,omitempty" description:"Day the meal was eaten (YYYY-MM-DD, defaults to today)"`
}

type LogMealPhotoParams struct {
	Image string `json:"image" description:"Base64 JPEG of the meal, optionally as a data URI"`
	Date  string `json:"date,omitempty" description:"Day the meal was eaten (YYYY-MM-DD, defaults to today)"`
}

type GetMealsParams struct {
	Date      string `json:"date,omitempty" description:"Single day to list (YYYY-MM-DD, defaults to today)"`
	StartDate string `json:"start_date,omitempty" description:"Start date for meal query (YYYY-MM-DD)"`
	EndDate   string `json:"end_date,omitempty" description:"End date for meal query (YYYY-MM-DD)"`
}

type DeleteMealParams struct {
	ID string `json:"id" description:"ID of the meal to delete"`
}

type GetSummaryParams struct {
	Period string `json:"period" description:"day, week, month or year"`
	Date   string `json:"date,omitempty" description:"Reference day (YYYY-MM-DD, defaults to today)"`
}

// extractParams converts the request arguments into target.
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", service.ErrInvalidInput, err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal parameters: %v", service.ErrInvalidInput, err)
	}
	return nil
}

func (s *MealLogServer) registerTools() map[string]toolHandler {
	return map[string]toolHandler{
		"log_meal":       s.handleLogMeal,
		"log_meal_photo": s.handleLogMealPhoto,
		"get_meals":      s.handleGetMeals,
		"delete_meal":    s.handleDeleteMealTool,
		"get_profile":    s.handleGetProfileTool,
		"set_profile":    s.handleSetProfileTool,
		"get_summary":    s.handleGetSummaryTool,
	}
}

func (s *MealLogServer) toolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *MealLogServer) handleMCPInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"server": s.info, "tools": s.toolNames()})
}

// handleMCP routes a single tools/call request to its handler.
func (s *MealLogServer) handleMCP(c *gin.Context) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&request); err != nil {
		writeError(c, fmt.Errorf("%w: invalid JSON: %v", service.ErrInvalidInput, err))
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Unknown tool: %s", request.Name), "kind": service.KindNotFound})
		return
	}

	result, err := handler(c.Request.Context(), &request)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *MealLogServer) handleLogMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	meal, err := s.svc.AddMealFromText(ctx, params.Description, params.Date)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(meal)
}

func (s *MealLogServer) handleLogMealPhoto(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogMealPhotoParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	encoded := params.Image
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: image is not valid base64", service.ErrInvalidInput)
	}
	meal, err := s.svc.AddMealFromImage(ctx, image, params.Date)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(meal)
}

func (s *MealLogServer) handleGetMeals(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetMealsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	var (
		meals []models.MealRecord
		err   error
	)
	if params.StartDate != "" || params.EndDate != "" {
		if params.EndDate == "" {
			params.EndDate = params.StartDate
		}
		if params.StartDate == "" {
			params.StartDate = params.EndDate
		}
		meals, err = s.svc.MealsInRange(ctx, params.StartDate, params.EndDate)
	} else {
		meals, err = s.svc.Meals(ctx, params.Date)
	}
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []models.MealRecord{}
	}
	return s.createJSONResponse(meals)
}

func (s *MealLogServer) handleDeleteMealTool(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DeleteMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if err := s.svc.DeleteMeal(ctx, params.ID); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{"deleted": params.ID})
}

func (s *MealLogServer) handleGetProfileTool(ctx context.Context, _ *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	p, err := s.svc.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(service.View(p))
}

func (s *MealLogServer) handleSetProfileTool(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params service.ProfileInput
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	p, err := s.svc.SaveProfile(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(service.View(p))
}

func (s *MealLogServer) handleGetSummaryTool(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetSummaryParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Period == "" {
		params.Period = string(models.PeriodDay)
	}
	report, err := s.svc.Summary(ctx, models.Period(params.Period), params.Date)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(report)
}
