// Package server exposes study sessions as a JSON HTTP API.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/at-ishikawa/kotoba/internal/export"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

const filteredDatasetFileName = "kosakata_filtered.csv"

// StudyHandler serves the study API over a shared vocabulary store.
type StudyHandler struct {
	store     *vocabulary.Store
	defaults  quiz.Options
	sessions  *SessionStore
	newRandom func() quiz.Random
}

func NewStudyHandler(store *vocabulary.Store, defaults quiz.Options, sessions *SessionStore, seed int64) *StudyHandler {
	return &StudyHandler{
		store:    store,
		defaults: defaults,
		sessions: sessions,
		newRandom: func() quiz.Random {
			return quiz.NewRandom(seed)
		},
	}
}

func (h *StudyHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.ListCategories)

	sessions := e.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.PUT("/:id/options", h.Configure)
	sessions.POST("/:id/answers", h.Answer)
	sessions.POST("/:id/marks", h.Mark)
	sessions.POST("/:id/next", h.Next)
	sessions.POST("/:id/prev", h.Prev)
	sessions.POST("/:id/seek", h.Seek)
	sessions.POST("/:id/reshuffle", h.Reshuffle)
	sessions.POST("/:id/reset", h.ResetScore)
	sessions.GET("/:id/progress", h.Progress)
	sessions.GET("/:id/history", h.History)
	sessions.GET("/:id/dataset", h.Dataset)
}

type optionsRequest struct {
	Categories           []string `json:"categories" validate:"omitempty,dive,required"`
	SearchQuery          *string  `json:"search_query"`
	Shuffle              *bool    `json:"shuffle"`
	Mode                 *string  `json:"mode" validate:"omitempty,oneof=flashcard mcq typed"`
	Direction            *string  `json:"direction" validate:"omitempty,oneof=phonetic-to-target roman-to-target target-to-phonetic"`
	OptionCount          *int     `json:"option_count" validate:"omitempty,min=2,max=6"`
	SimilarityThreshold  *int     `json:"similarity_threshold" validate:"omitempty,min=50,max=100"`
	FlexibleCheck        *bool    `json:"flexible_check"`
	FocusUnmemorizedOnly *bool    `json:"focus_unmemorized_only"`
	AdvanceOnMark        *string  `json:"advance_on_mark" validate:"omitempty,oneof=none wraparound"`
	MarkBonus            *int     `json:"mark_bonus" validate:"omitempty,min=0"`
}

// apply overrides the fields of base that are set in the request.
func (r optionsRequest) apply(base quiz.Options) quiz.Options {
	options := base
	options.Categories = slices.Clone(base.Categories)
	if r.Categories != nil {
		options.Categories = slices.Clone(r.Categories)
	}
	if r.SearchQuery != nil {
		options.SearchQuery = *r.SearchQuery
	}
	if r.Shuffle != nil {
		options.Shuffle = *r.Shuffle
	}
	if r.Mode != nil {
		options.Mode = quiz.Mode(*r.Mode)
	}
	if r.Direction != nil {
		options.Direction = quiz.Direction(*r.Direction)
	}
	if r.OptionCount != nil {
		options.OptionCount = *r.OptionCount
	}
	if r.SimilarityThreshold != nil {
		options.SimilarityThreshold = *r.SimilarityThreshold
	}
	if r.FlexibleCheck != nil {
		options.FlexibleCheck = *r.FlexibleCheck
	}
	if r.FocusUnmemorizedOnly != nil {
		options.FocusUnmemorizedOnly = *r.FocusUnmemorizedOnly
	}
	if r.AdvanceOnMark != nil {
		options.AdvanceOnMark = quiz.AdvanceOnMark(*r.AdvanceOnMark)
	}
	if r.MarkBonus != nil {
		options.MarkBonus = *r.MarkBonus
	}
	return options
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type markRequest struct {
	// EntryID defaults to the current card.
	EntryID *int   `json:"entry_id" validate:"omitempty,min=0"`
	Status  string `json:"status" validate:"required,oneof=memorized not-memorized"`
}

type seekRequest struct {
	Position *int `json:"position" validate:"required,min=0"`
}

type categoryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type categoriesResponse struct {
	Categories []categoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

type sessionResponse struct {
	ID      string       `json:"id"`
	State   quiz.State   `json:"state"`
	Card    *quiz.Card   `json:"card,omitempty"`
	Stats   quiz.Stats   `json:"stats"`
	Options quiz.Options `json:"options"`
}

type configureResponse struct {
	sessionResponse
	Rebuilt bool `json:"rebuilt"`
}

type answerResponse struct {
	Result  quiz.Result     `json:"result"`
	Session sessionResponse `json:"session"`
}

func newSessionResponse(id string, engine *quiz.Engine) sessionResponse {
	response := sessionResponse{
		ID:      id,
		State:   engine.State(),
		Stats:   engine.Stats(),
		Options: engine.Options(),
	}
	if card, err := engine.Current(); err == nil {
		response.Card = &card
	}
	return response
}

// bind decodes and validates a request body.
func bind(c echo.Context, request any) error {
	if err := c.Bind(request); err != nil {
		return err
	}
	return c.Validate(request)
}

// engineError maps engine errors to HTTP errors.
func engineError(err error) error {
	switch {
	case errors.Is(err, quiz.ErrNoResults), errors.Is(err, quiz.ErrExhausted):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, quiz.ErrUnknownEntry), errors.Is(err, quiz.ErrPosition):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return fmt.Errorf("engine > %w", err)
}

// withSession runs fn while holding the lock of the session named in the path.
func (h *StudyHandler) withSession(c echo.Context, fn func(id string, engine *quiz.Engine) error) error {
	id := c.Param("id")
	session, ok := h.sessions.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("session %s not found", id))
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return fn(id, session.engine)
}

// ListCategories returns the dataset categories with their entry counts.
// GET /categories
func (h *StudyHandler) ListCategories(c echo.Context) error {
	counts := h.store.CategoryCounts()
	categories := make([]categoryResponse, 0, len(counts))
	for _, name := range h.store.Categories() {
		categories = append(categories, categoryResponse{Name: name, Count: counts[name]})
	}
	return c.JSON(http.StatusOK, categoriesResponse{
		Categories: categories,
		Total:      h.store.Len(),
	})
}

// CreateSession starts a session with the default options overridden by the request.
// POST /sessions
func (h *StudyHandler) CreateSession(c echo.Context) error {
	var request optionsRequest
	if err := bind(c, &request); err != nil {
		return err
	}
	engine := quiz.NewEngine(h.store, request.apply(h.defaults), h.newRandom())
	id := h.sessions.Create(engine)
	return c.JSON(http.StatusCreated, newSessionResponse(id, engine))
}

// GET /sessions/:id
func (h *StudyHandler) GetSession(c echo.Context) error {
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		return c.JSON(http.StatusOK, newSessionResponse(id, engine))
	})
}

// DELETE /sessions/:id
func (h *StudyHandler) DeleteSession(c echo.Context) error {
	id := c.Param("id")
	if !h.sessions.Delete(id) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("session %s not found", id))
	}
	return c.NoContent(http.StatusNoContent)
}

// Configure changes the options of a session, rebuilding its cards when they differ.
// PUT /sessions/:id/options
func (h *StudyHandler) Configure(c echo.Context) error {
	var request optionsRequest
	if err := bind(c, &request); err != nil {
		return err
	}
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		rebuilt := engine.Configure(request.apply(engine.Options()))
		return c.JSON(http.StatusOK, configureResponse{
			sessionResponse: newSessionResponse(id, engine),
			Rebuilt:         rebuilt,
		})
	})
}

// Answer grades an answer for the current card: a choice in multiple-choice mode, free text otherwise.
// POST /sessions/:id/answers
func (h *StudyHandler) Answer(c echo.Context) error {
	var request answerRequest
	if err := bind(c, &request); err != nil {
		return err
	}
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		submit := engine.SubmitTyped
		if engine.Options().Mode == quiz.ModeMCQ {
			submit = engine.SubmitChoice
		}
		result, err := submit(request.Answer)
		if err != nil {
			return engineError(err)
		}
		return c.JSON(http.StatusOK, answerResponse{
			Result:  result,
			Session: newSessionResponse(id, engine),
		})
	})
}

// POST /sessions/:id/marks
func (h *StudyHandler) Mark(c echo.Context) error {
	var request markRequest
	if err := bind(c, &request); err != nil {
		return err
	}
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		entryID := 0
		if request.EntryID != nil {
			entryID = *request.EntryID
		} else {
			card, err := engine.Current()
			if err != nil {
				return engineError(err)
			}
			entryID = card.ID
		}
		if err := engine.Mark(entryID, quiz.Status(request.Status)); err != nil {
			return engineError(err)
		}
		return c.JSON(http.StatusOK, newSessionResponse(id, engine))
	})
}

// POST /sessions/:id/next
func (h *StudyHandler) Next(c echo.Context) error {
	return h.navigate(c, (*quiz.Engine).Next)
}

// POST /sessions/:id/prev
func (h *StudyHandler) Prev(c echo.Context) error {
	return h.navigate(c, (*quiz.Engine).Prev)
}

// POST /sessions/:id/seek
func (h *StudyHandler) Seek(c echo.Context) error {
	var request seekRequest
	if err := bind(c, &request); err != nil {
		return err
	}
	return h.navigate(c, func(engine *quiz.Engine) error {
		return engine.Seek(*request.Position)
	})
}

func (h *StudyHandler) navigate(c echo.Context, move func(engine *quiz.Engine) error) error {
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		if err := move(engine); err != nil {
			return engineError(err)
		}
		return c.JSON(http.StatusOK, newSessionResponse(id, engine))
	})
}

// POST /sessions/:id/reshuffle
func (h *StudyHandler) Reshuffle(c echo.Context) error {
	return h.navigate(c, func(engine *quiz.Engine) error {
		engine.Reshuffle()
		return nil
	})
}

// POST /sessions/:id/reset
func (h *StudyHandler) ResetScore(c echo.Context) error {
	return h.navigate(c, func(engine *quiz.Engine) error {
		engine.ResetScore()
		return nil
	})
}

// Progress returns the memorization marks as JSON, or as a file with ?format=csv|yaml.
// GET /sessions/:id/progress
func (h *StudyHandler) Progress(c echo.Context) error {
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		rows := engine.ProgressRows()
		return writeTable(c, "progress", rows, func(format export.Format) error {
			return export.WriteProgress(c.Response(), format, rows)
		})
	})
}

// History returns the graded answers, newest first, as JSON or as a file with ?format=csv|yaml.
// GET /sessions/:id/history
func (h *StudyHandler) History(c echo.Context) error {
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		attempts := engine.History()
		return writeTable(c, "history", attempts, func(format export.Format) error {
			return export.WriteHistory(c.Response(), format, attempts)
		})
	})
}

// Dataset downloads the entries matching the session filters as a CSV file.
// GET /sessions/:id/dataset
func (h *StudyHandler) Dataset(c echo.Context) error {
	return h.withSession(c, func(id string, engine *quiz.Engine) error {
		entries := engine.FilteredEntries()
		return writeAttachment(c, export.FormatCSV, filteredDatasetFileName, func() error {
			return export.WriteEntries(c.Response(), export.FormatCSV, entries)
		})
	})
}

func writeTable[T any](c echo.Context, name string, rows []T, write func(format export.Format) error) error {
	format := c.QueryParam("format")
	switch format {
	case "":
		if rows == nil {
			rows = []T{}
		}
		return c.JSON(http.StatusOK, rows)
	case string(export.FormatCSV), string(export.FormatYAML):
		fileName := name + "." + format
		return writeAttachment(c, export.Format(format), fileName, func() error {
			return write(export.Format(format))
		})
	}
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("format must be one of [csv yaml], got %q", format))
}

func writeAttachment(c echo.Context, format export.Format, fileName string, write func() error) error {
	contentType := "text/csv; charset=utf-8"
	if format == export.FormatYAML {
		contentType = "application/yaml; charset=utf-8"
	}
	header := c.Response().Header()
	header.Set(echo.HeaderContentType, contentType)
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	c.Response().WriteHeader(http.StatusOK)
	if err := write(); err != nil {
		return fmt.Errorf("write(%s) > %w", fileName, err)
	}
	return nil
}
