package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/socialchef/pantry/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, ingredients []string) (string, error) {
	args := m.Called(ctx, ingredients)
	return args.String(0), args.Error(1)
}

func newTestRouter(gen *MockGenerator) http.Handler {
	return NewRouter(NewServer(gen), "pantry-relay-test")
}

func TestHandleRecipe_Success(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, []string{"egg", "flour", "milk"}).
		Return("# Crêpes\n\n1. Whisk.", nil)

	body, _ := json.Marshal(map[string]any{"ingredientsArr": []string{"egg", "flour", "milk"}})
	req := httptest.NewRequest(http.MethodPost, "/api/recipe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	newTestRouter(gen).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "# Crêpes\n\n1. Whisk.", resp.Content)

	gen.AssertExpectations(t)
}

func TestHandleRecipe_MalformedJSON(t *testing.T) {
	bodies := []string{
		`{"ingredientsArr": [`,
		`not json`,
		`{"ingredientsArr": {"egg": 1}}`,
		`{"ingredientsArr": [["egg"]]}`,
		`null`,
		`[1,2]`,
		`"egg"`,
		`42`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			gen := new(MockGenerator)
			req := httptest.NewRequest(http.MethodPost, "/api/recipe", strings.NewReader(body))
			rr := httptest.NewRecorder()

			newTestRouter(gen).ServeHTTP(rr, req)

			require.Equal(t, http.StatusInternalServerError, rr.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)

			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleRecipe_ProviderFailure(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return("", apperrors.NewRecipeGenerationError("Failed to generate recipe", "PROVIDER_SERVER_ERROR", errors.New("model is overloaded")))

	body := `{"ingredientsArr": ["rice"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/recipe", strings.NewReader(body))
	rr := httptest.NewRecorder()

	newTestRouter(gen).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to generate recipe: model is overloaded", resp.Error)
}

func TestHandleRecipe_EmptyBody(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, []string(nil)).Return("Try buying groceries.", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/recipe", nil)
	rr := httptest.NewRecorder()

	newTestRouter(gen).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	gen.AssertExpectations(t)
}

func TestHandleRecipe_SingleStringIngredients(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, []string{"tomatoes and basil"}).Return("Bruschetta", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/recipe", strings.NewReader(`{"ingredientsArr":"tomatoes and basil"}`))
	rr := httptest.NewRecorder()

	newTestRouter(gen).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	gen.AssertExpectations(t)
}

func TestOptions_AnyPath(t *testing.T) {
	for _, path := range []string{"/api/recipe", "/", "/does/not/exist"} {
		t.Run(path, func(t *testing.T) {
			gen := new(MockGenerator)
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			rr := httptest.NewRecorder()

			newTestRouter(gen).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNoContent, rr.Code)
			assert.Empty(t, rr.Body.String())
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET,POST,OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/recipe"},
		{http.MethodPut, "/api/recipe"},
		{http.MethodDelete, "/api/recipe"},
		{http.MethodGet, "/"},
		{http.MethodPost, "/api/recipes"},
		{http.MethodPost, "/health"},
		{http.MethodPost, "/api/recipe?x=1"},
		{http.MethodPost, "/api/recipe?"},
		{http.MethodPost, "/api/recipe/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			gen := new(MockGenerator)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			newTestRouter(gen).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, "Not Found", rr.Body.String())
			assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestIngredientList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    IngredientList
		wantErr bool
	}{
		{"array", `["egg","flour"]`, IngredientList{"egg", "flour"}, false},
		{"empty array", `[]`, IngredientList{}, false},
		{"single string", `"egg"`, IngredientList{"egg"}, false},
		{"null", `null`, nil, false},
		{"mixed scalars", `["egg", 2, true, null]`, IngredientList{"egg", "2", "true", ""}, false},
		{"object", `{"a":1}`, nil, true},
		{"nested array", `[["egg"]]`, nil, true},
		{"number", `42`, IngredientList{"42"}, false},
		{"zero", `0`, IngredientList{""}, false},
		{"true", `true`, IngredientList{"true"}, false},
		{"false", `false`, IngredientList{""}, false},
		{"empty string", `""`, IngredientList{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got IngredientList
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
