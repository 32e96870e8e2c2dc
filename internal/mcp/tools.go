package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/feedback"
)

// ListCalculatorsParams defines parameters for the list_calculators tool.
type ListCalculatorsParams struct {
	Category string `json:"category,omitempty"`
}

// SearchCalculatorsParams defines parameters for the search_calculators tool.
type SearchCalculatorsParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// EvaluateCalculatorParams defines parameters for the evaluate_calculator tool.
type EvaluateCalculatorParams struct {
	CalculatorID string                       `json:"calculator_id"`
	Values       map[string]string            `json:"values"`
	UnitSystems  map[string]domain.UnitSystem `json:"unit_systems,omitempty"`
}

// InterpretValueParams defines parameters for the interpret_value tool.
type InterpretValueParams struct {
	CalculatorID string  `json:"calculator_id"`
	Value        float64 `json:"value"`
}

// SaveFeedbackParams defines parameters for the save_feedback tool.
type SaveFeedbackParams struct {
	CalculatorID   string  `json:"calculator_id"`
	ReviewerID     string  `json:"reviewer_id"`
	ComputedValue  float64 `json:"computed_value"`
	Interpretation string  `json:"interpretation,omitempty"`
	Assessment     string  `json:"assessment"`
	Agreed         bool    `json:"agreed"`
	Notes          string  `json:"notes,omitempty"`
}

// calculatorSummary is the projection returned by listing tools.
type calculatorSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "list_calculators",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Description: "List the available clinical calculators, optionally filtered by category.",
	}, s.handleListCalculators)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_calculators",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Description: "Search calculators by keyword across name, description, and category.",
	}, s.handleSearchCalculators)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "evaluate_calculator",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Description: "Run a clinical calculator. Values are raw field strings keyed by input id; unit_systems marks which unit system each unit-bearing value was entered in.",
	}, s.handleEvaluateCalculator)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "interpret_value",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Description: "Resolve the interpretation band text for an already-computed metric value.",
	}, s.handleInterpretValue)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "save_feedback",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Description: "Record a reviewer's assessment of a calculator's interpretation bands.",
	}, s.handleSaveFeedback)

	s.logger.WithField("tool_count", 5).Info("Registered MCP tools")
}

// handleListCalculators handles the list_calculators tool invocation.
func (s *Server) handleListCalculators(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.WithField("tool", "list_calculators").Debug("Tool invoked")

	var params ListCalculatorsParams
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return s.createErrorResult("Invalid parameters", err), nil
		}
	}

	reg := s.service.Registry()
	var defs []*domain.CalculatorDefinition
	if params.Category != "" {
		category := domain.Category(params.Category)
		if !category.IsValid() {
			return s.createErrorResult("Unknown category", fmt.Errorf("%q is not a calculator category", params.Category)), nil
		}
		defs = reg.GetByCategory(category)
	} else {
		defs = reg.All()
	}

	summaries := make([]calculatorSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, calculatorSummary{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
		})
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Found %d calculators", len(summaries)),
			},
		},
		Meta: map[string]interface{}{
			"calculators": summaries,
		},
	}, nil
}

// handleSearchCalculators handles the search_calculators tool invocation.
func (s *Server) handleSearchCalculators(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.WithField("tool", "search_calculators").Debug("Tool invoked")

	var params SearchCalculatorsParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return s.createErrorResult("Invalid parameters", err), nil
	}
	if params.Query == "" {
		return s.createErrorResult("Missing required parameter", fmt.Errorf("query is required")), nil
	}

	results := s.service.Registry().Search(params.Query, params.Limit)
	summaries := make([]calculatorSummary, 0, len(results))
	for _, def := range results {
		summaries = append(summaries, calculatorSummary{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
		})
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Search %q matched %d calculators", params.Query, len(summaries)),
			},
		},
		Meta: map[string]interface{}{
			"results": summaries,
		},
	}, nil
}

// handleEvaluateCalculator handles the evaluate_calculator tool invocation.
func (s *Server) handleEvaluateCalculator(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.WithField("tool", "evaluate_calculator").Debug("Tool invoked")

	var params EvaluateCalculatorParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return s.createErrorResult("Invalid parameters", err), nil
	}
	if params.CalculatorID == "" {
		return s.createErrorResult("Missing required parameter", fmt.Errorf("calculator_id is required")), nil
	}

	result, err := s.service.Evaluate(ctx, domain.EvaluationRequest{
		CalculatorID: params.CalculatorID,
		Values:       params.Values,
		UnitSystems:  params.UnitSystems,
	})
	if err != nil {
		return s.createErrorResult("Evaluation failed", err), nil
	}

	def, err := s.service.Registry().GetByID(params.CalculatorID)
	if err != nil {
		return s.createErrorResult("Evaluation failed", err), nil
	}

	display := strconv.FormatFloat(result.Value, 'f', def.ResultPrecision, 64)
	text := fmt.Sprintf("%s: %s %s", def.ResultLabel, display, result.Unit)
	if result.Interpretation != "" {
		text += " — " + result.Interpretation
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		Meta: map[string]interface{}{
			"result":        result,
			"display_value": display,
		},
	}, nil
}

// handleInterpretValue handles the interpret_value tool invocation.
func (s *Server) handleInterpretValue(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.WithField("tool", "interpret_value").Debug("Tool invoked")

	var params InterpretValueParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return s.createErrorResult("Invalid parameters", err), nil
	}
	if params.CalculatorID == "" {
		return s.createErrorResult("Missing required parameter", fmt.Errorf("calculator_id is required")), nil
	}

	interpretation, err := s.service.Interpret(params.CalculatorID, params.Value)
	if err != nil {
		return s.createErrorResult("Interpretation failed", err), nil
	}

	text := interpretation
	if text == "" {
		text = "No interpretation band matched the value"
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		Meta: map[string]interface{}{
			"calculator_id":  params.CalculatorID,
			"value":          params.Value,
			"interpretation": interpretation,
		},
	}, nil
}

// handleSaveFeedback handles the save_feedback tool invocation.
func (s *Server) handleSaveFeedback(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.WithField("tool", "save_feedback").Debug("Tool invoked")

	var params SaveFeedbackParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return s.createErrorResult("Invalid parameters", err), nil
	}
	if params.CalculatorID == "" {
		return s.createErrorResult("Missing required parameter", fmt.Errorf("calculator_id is required")), nil
	}
	if params.ReviewerID == "" {
		return s.createErrorResult("Missing required parameter", fmt.Errorf("reviewer_id is required")), nil
	}
	if _, err := s.service.Registry().GetByID(params.CalculatorID); err != nil {
		return s.createErrorResult("Unknown calculator", err), nil
	}

	fb := &feedback.Feedback{
		CalculatorID:   params.CalculatorID,
		ReviewerID:     params.ReviewerID,
		ComputedValue:  params.ComputedValue,
		Interpretation: params.Interpretation,
		Assessment:     feedback.Assessment(params.Assessment),
		Agreed:         params.Agreed,
		Notes:          params.Notes,
	}
	if err := s.feedbackStore.Save(ctx, fb); err != nil {
		return s.createErrorResult("Failed to save feedback", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Feedback saved for calculator %s", params.CalculatorID),
			},
		},
		Meta: map[string]interface{}{
			"feedback": fb,
		},
	}, nil
}

// createErrorResult builds a tool error result in-band.
func (s *Server) createErrorResult(message string, err error) *mcp.CallToolResult {
	s.logger.WithError(err).Warn(message)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("%s: %v", message, err),
			},
		},
	}
}
