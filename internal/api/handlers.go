package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/planservice"
	"github.com/mbracken/skillet/internal/sse"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *planservice.Service
	idx    index.RecipeIndex
	broker *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil in tests.
func NewHandler(svc *planservice.Service, idx index.RecipeIndex, broker *sse.Broker) *Handler {
	return &Handler{svc: svc, idx: idx, broker: broker}
}

// recipePath extracts the recipe path from the URL (everything after
// /api/recipes/). Supports encoded slashes from OpenAPI clients.
func recipePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Calendar handles GET /api/calendar.
//
//	@Summary		Get the calendar grid for a month
//	@Tags			plan
//	@Produce		json
//	@Param			month	query		string	false	"Display month (YYYY-MM, defaults to current)"
//	@Success		200		{object}	mealplan.Calendar
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar [get]
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if month := r.URL.Query().Get("month"); month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("month must be formatted as YYYY-MM"))
			return
		}
		ref = parsed
	}
	cal, err := h.svc.Calendar(r.Context(), ref)
	if err != nil {
		slog.Error("calendar failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

// Weeks handles GET /api/plan/weeks.
//
//	@Summary		List the plan's current and future weeks
//	@Tags			plan
//	@Produce		json
//	@Success		200	{object}	WeekListResponse
//	@Security		BearerAuth
//	@Router			/plan/weeks [get]
func (h *Handler) Weeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.svc.Weeks(r.Context())
	if err != nil {
		slog.Error("list weeks failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weeks": weeks,
	})
}

// AddMeal handles POST /api/plan/meals.
//
//	@Summary		Schedule a meal on a day of the current week
//	@Tags			plan
//	@Accept			json
//	@Produce		json
//	@Param			body	body	AddMealRequest	true	"Meal to schedule"
//	@Success		204		"Meal scheduled"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/plan/meals [post]
func (h *Handler) AddMeal(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AddMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.AddMeal(r.Context(), req.Day, req.Name); err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("add meal failed", slog.String("day", req.Day), slog.String("name", req.Name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenPlan handles POST /api/plan/open.
//
//	@Summary		Open the plan note, creating it when absent
//	@Tags			plan
//	@Produce		json
//	@Success		200	{object}	OpenPlanResponse
//	@Security		BearerAuth
//	@Router			/plan/open [post]
func (h *Handler) OpenPlan(w http.ResponseWriter, r *http.Request) {
	path, created, err := h.svc.OpenPlanNote(r.Context())
	if err != nil {
		slog.Error("open plan failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if h.broker != nil {
		h.broker.Publish(sse.Event{Type: "note.open", Data: map[string]string{"path": path}})
	}
	writeJSON(w, http.StatusOK, OpenPlanResponse{Path: path, Created: created})
}

// ShoppingList handles POST /api/shopping-list.
//
//	@Summary		Generate the shopping list for selected weeks
//	@Tags			shopping
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ShoppingListRequest	true	"Weeks to aggregate (empty = all)"
//	@Success		200		{object}	ShoppingListResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/shopping-list [post]
func (h *Handler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ShoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	content, lineErrs, err := h.svc.ShoppingList(r.Context(), req.Weeks)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
		} else {
			slog.Error("shopping list failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	resp := ShoppingListResponse{Path: h.svc.ShoppingNotePath(), Content: content}
	for _, le := range lineErrs {
		resp.LineErrors = append(resp.LineErrors, le.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListRecipes handles GET /api/recipes.
//
//	@Summary		List catalog recipes with optional pagination and tag filter
//	@Tags			recipes
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			tag		query		string	false	"Filter by tag"
//	@Success		200		{object}	RecipeListResponse
//	@Security		BearerAuth
//	@Router			/recipes [get]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	rows, total, err := h.idx.ListRecipes(limit, offset, q.Get("tag"))
	if err != nil {
		slog.Error("list recipes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]RecipeListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, RecipeListItem{
			Path:      row.Path,
			Title:     row.Title,
			Tags:      row.Tags,
			UpdatedAt: row.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recipes": items,
		"total":   total,
	})
}

// GetRecipe handles GET /api/recipes/*.
//
//	@Summary		Get a single recipe by path
//	@Tags			recipes
//	@Produce		json
//	@Param			path	path		string	true	"Recipe path"
//	@Success		200		{object}	RecipeDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{path} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	path := recipePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	row, err := h.idx.GetRecipe(path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get recipe failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	content, err := h.svc.ReadNote(r.Context(), path)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		slog.Error("read recipe failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, RecipeDetail{RecipeRow: *row, Content: content})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across recipes
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	results, err := h.idx.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}
