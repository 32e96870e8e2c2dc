package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/feedback"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

// calculatorSummary is the list-view projection of a definition.
type calculatorSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
}

func summarize(def *domain.CalculatorDefinition) calculatorSummary {
	return calculatorSummary{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Category:    def.Category,
	}
}

func summarizeAll(defs []*domain.CalculatorDefinition) []calculatorSummary {
	out := make([]calculatorSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, summarize(def))
	}
	return out
}

// evaluationResponse wraps the raw result with a display string rounded to
// the calculator's declared precision. Interpretation bands resolve on the
// unrounded value.
type evaluationResponse struct {
	domain.EvaluationResult
	DisplayValue string `json:"display_value"`
}

// handleListCalculators lists the catalog, optionally filtered by category.
func (s *Server) handleListCalculators(c *gin.Context) {
	reg := s.service.Registry()

	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		if !category.IsValid() {
			s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "unknown category: "+raw)
			return
		}
		c.JSON(http.StatusOK, gin.H{"calculators": summarizeAll(reg.GetByCategory(category))})
		return
	}

	c.JSON(http.StatusOK, gin.H{"calculators": summarizeAll(reg.All())})
}

// handleGetCalculator returns one full definition.
func (s *Server) handleGetCalculator(c *gin.Context) {
	def, err := s.service.Registry().GetByID(c.Param("id"))
	if err != nil {
		s.writeEvaluationError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

// handleEvaluate runs one calculation. The calculator id comes from the
// path; an id in the body is ignored.
func (s *Server) handleEvaluate(c *gin.Context) {
	var req domain.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}
	req.CalculatorID = c.Param("id")

	result, err := s.service.Evaluate(c.Request.Context(), req)
	if err != nil {
		s.writeEvaluationError(c, err)
		return
	}

	def, err := s.service.Registry().GetByID(req.CalculatorID)
	if err != nil {
		s.writeEvaluationError(c, err)
		return
	}

	s.recordEvaluation(c, result)

	c.JSON(http.StatusOK, evaluationResponse{
		EvaluationResult: *result,
		DisplayValue:     strconv.FormatFloat(result.Value, 'f', def.ResultPrecision, 64),
	})
}

// recordEvaluation persists an audit record when history storage is
// configured. Persistence failures are logged but never fail the request.
func (s *Server) recordEvaluation(c *gin.Context, result *domain.EvaluationResult) {
	if s.history == nil {
		return
	}

	record := &domain.EvaluationRecord{
		CalculatorID:   result.CalculatorID,
		CorrelationID:  c.GetString("correlation_id"),
		Value:          result.Value,
		Unit:           result.Unit,
		Interpretation: result.Interpretation,
		Warnings:       result.Warnings,
	}
	if err := s.history.Create(c.Request.Context(), record); err != nil {
		s.logger.WithError(err).Warn("failed to record evaluation")
	}
}

// handleEvaluationHistory returns stored audit records for one calculator.
func (s *Server) handleEvaluationHistory(c *gin.Context) {
	if s.history == nil {
		s.writeError(c, http.StatusServiceUnavailable, domain.ErrCodeInternalServer, "evaluation history is not configured")
		return
	}

	calculatorID := c.Param("id")
	if _, err := s.service.Registry().GetByID(calculatorID); err != nil {
		s.writeEvaluationError(c, err)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	records, err := s.history.ListByCalculator(c.Request.Context(), calculatorID, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("failed to list evaluation history")
		s.writeError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer, "failed to list evaluation history")
		return
	}
	if records == nil {
		records = []*domain.EvaluationRecord{}
	}

	count, err := s.history.CountByCalculator(c.Request.Context(), calculatorID)
	if err != nil {
		s.logger.WithError(err).Error("failed to count evaluation history")
		s.writeError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer, "failed to count evaluation history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records, "total": count})
}

// handleListCategories returns the category list with calculator counts.
func (s *Server) handleListCategories(c *gin.Context) {
	reg := s.service.Registry()

	type categoryInfo struct {
		Category domain.Category `json:"category"`
		Count    int             `json:"count"`
	}
	categories := make([]categoryInfo, 0)
	for _, cat := range reg.ListCategories() {
		categories = append(categories, categoryInfo{Category: cat, Count: len(reg.GetByCategory(cat))})
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// handleCategoryCalculators lists one category's calculators.
func (s *Server) handleCategoryCalculators(c *gin.Context) {
	category := domain.Category(c.Param("category"))
	if !category.IsValid() {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "unknown category: "+c.Param("category"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculators": summarizeAll(s.service.Registry().GetByCategory(category))})
}

// handleSearch performs a keyword search over the catalog.
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid limit: "+raw)
			return
		}
		limit = n
	}

	results := s.service.Registry().Search(query, limit)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": summarizeAll(results),
	})
}

// handleListAnalytes returns the unit conversion vocabulary.
func (s *Server) handleListAnalytes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"analytes": units.Conversions()})
}

// handleCacheStats reports evaluation cache counters.
func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Stats())
}

// feedbackRequest is the POST body for calculator feedback.
type feedbackRequest struct {
	ReviewerID     string              `json:"reviewer_id" binding:"required"`
	ComputedValue  float64             `json:"computed_value"`
	Interpretation string              `json:"interpretation"`
	Assessment     feedback.Assessment `json:"assessment" binding:"required"`
	Agreed         bool                `json:"agreed"`
	Notes          string              `json:"notes"`
}

// handleSaveFeedback records a reviewer's assessment of a calculator's
// interpretation bands.
func (s *Server) handleSaveFeedback(c *gin.Context) {
	if s.feedbackStore == nil {
		s.writeError(c, http.StatusServiceUnavailable, domain.ErrCodeInternalServer, "feedback storage is not configured")
		return
	}

	calculatorID := c.Param("id")
	if _, err := s.service.Registry().GetByID(calculatorID); err != nil {
		s.writeEvaluationError(c, err)
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	fb := &feedback.Feedback{
		CalculatorID:   calculatorID,
		ReviewerID:     req.ReviewerID,
		ComputedValue:  req.ComputedValue,
		Interpretation: req.Interpretation,
		Assessment:     req.Assessment,
		Agreed:         req.Agreed,
		Notes:          req.Notes,
	}
	if err := s.feedbackStore.Save(c.Request.Context(), fb); err != nil {
		s.logger.WithError(err).Error("failed to save feedback")
		s.writeError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer, "failed to save feedback")
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// handleListFeedback returns feedback for one calculator.
func (s *Server) handleListFeedback(c *gin.Context) {
	if s.feedbackStore == nil {
		s.writeError(c, http.StatusServiceUnavailable, domain.ErrCodeInternalServer, "feedback storage is not configured")
		return
	}

	calculatorID := c.Param("id")
	if _, err := s.service.Registry().GetByID(calculatorID); err != nil {
		s.writeEvaluationError(c, err)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	entries, err := s.feedbackStore.ListByCalculator(c.Request.Context(), calculatorID, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("failed to list feedback")
		s.writeError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer, "failed to list feedback")
		return
	}
	if entries == nil {
		entries = []*feedback.Feedback{}
	}

	c.JSON(http.StatusOK, gin.H{"feedback": entries})
}

// writeEvaluationError maps domain errors onto HTTP statuses.
func (s *Server) writeEvaluationError(c *gin.Context, err error) {
	code := domain.ErrorCode(err)
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = domain.ErrCodeCalculatorNotFound
		status = http.StatusNotFound
	case code == domain.ErrCodeInternalServer:
		status = http.StatusInternalServerError
		s.logger.WithError(err).Error("evaluation failed")
	}

	s.writeError(c, status, code, err.Error())
}

func (s *Server) writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":          message,
		"code":           code,
		"correlation_id": c.GetString("correlation_id"),
	})
}
