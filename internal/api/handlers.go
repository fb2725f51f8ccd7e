package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/metrics"
	"github.com/socialchef/pantry/internal/middleware"
	"github.com/socialchef/pantry/internal/services/recipe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const maxRequestBodyBytes = 1 << 20

var errBodyNotObject = errors.New("request body must be a JSON object")

type Server struct {
	generator recipe.Generator
}

func NewServer(generator recipe.Generator) *Server {
	return &Server{generator: generator}
}

type RecipeRequest struct {
	IngredientsArr IngredientList `json:"ingredientsArr"`
}

type RecipeResponse struct {
	Content string `json:"content"`
	Success bool   `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func (s *Server) HandleRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rid, _ := middleware.GetRequestID(ctx)
	log := slog.With("request_id", rid, logger.WithTraceContext(ctx))

	log.InfoContext(ctx, "Received recipe request")

	req, err := decodeRecipeRequest(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		s.writeError(w, r, log, err)
		return
	}

	log.InfoContext(ctx, "Ingredients", "ingredients", []string(req.IngredientsArr))

	content, err := s.generator.Generate(ctx, req.IngredientsArr)
	if err != nil {
		s.writeError(w, r, log, err)
		return
	}

	metrics.RecipeRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	writeJSON(w, http.StatusOK, RecipeResponse{
		Content: content,
		Success: true,
	})
}

// decodeRecipeRequest treats an empty body as an empty JSON object.
func decodeRecipeRequest(body io.Reader) (RecipeRequest, error) {
	var req RecipeRequest

	data, err := io.ReadAll(body)
	if err != nil {
		return req, apperrors.NewMalformedRequestError("Failed to read request body", "BODY_READ_FAILED", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return req, nil
	}
	if data[0] != '{' {
		return req, apperrors.NewMalformedRequestError("Invalid request body", "BODY_NOT_OBJECT", errBodyNotObject)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, apperrors.NewMalformedRequestError("Invalid request body", "INVALID_JSON", err)
	}
	return req, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	ctx := r.Context()
	outcome := "provider_error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeMalformedRequest {
		outcome = "malformed_request"
	}
	metrics.RecipeRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	log.ErrorContext(ctx, "Server error", "error", err.Error())
	writeJSON(w, apperrors.StatusCode(err), ErrorResponse{
		Error:   err.Error(),
		Success: false,
	})
}

// HandleNotFound answers every unmatched route or method.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	err := apperrors.NewNotFoundError("Not Found", "ROUTE_NOT_FOUND")
	slog.DebugContext(r.Context(), "Route not found", "method", r.Method, "url", r.URL.RequestURI(), "code", err.Code())

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(err.StatusCode)
	w.Write([]byte(err.Message))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
