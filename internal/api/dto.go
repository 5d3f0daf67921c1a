package api

import (
	"time"

	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/mealplan"
)

// AddMealRequest is the request body for scheduling a meal.
type AddMealRequest struct {
	Day  string `json:"day" example:"Wednesday" validate:"required"`
	Name string `json:"name" example:"Pasta Carbonara" validate:"required"`
}

// ShoppingListRequest selects the plan weeks to aggregate. An empty list
// means every current and future week.
type ShoppingListRequest struct {
	Weeks []string `json:"weeks" example:"January 8th"`
}

// ShoppingListResponse carries the rendered checklist and any ingredient
// lines that could not be parsed.
type ShoppingListResponse struct {
	Path       string   `json:"path" example:"Shopping List.md" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	LineErrors []string `json:"line_errors,omitempty"`
}

// WeekListResponse wraps the plan's current and future weeks.
type WeekListResponse struct {
	Weeks []mealplan.Week `json:"weeks" validate:"required"`
}

// OpenPlanResponse reports the plan note path after an open request.
type OpenPlanResponse struct {
	Path    string `json:"path" example:"Meal Plan.md" validate:"required"`
	Created bool   `json:"created" example:"false" validate:"required"`
}

// RecipeListItem is a lightweight catalog entry in list responses.
type RecipeListItem struct {
	Path      string    `json:"path" example:"Recipes/Pasta Carbonara.md"`
	Title     string    `json:"title" example:"Pasta Carbonara"`
	Tags      []string  `json:"tags" example:"dinner,italian"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeListResponse wraps paginated recipe listings.
type RecipeListResponse struct {
	Recipes []RecipeListItem `json:"recipes" validate:"required"`
	Total   int              `json:"total" example:"42" validate:"required"`
}

// RecipeDetail is the full recipe response: the catalog entry plus the
// raw note content.
type RecipeDetail struct {
	index.RecipeRow
	Content string `json:"content"`
}

// SearchResult is a single search hit in the API response.
type SearchResult = index.SearchHit

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// AttachmentUploadResponse is returned after a successful photo upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename" example:"carbonara.jpg" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/attachments/carbonara.jpg" validate:"required"`
}
