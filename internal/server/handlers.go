package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aleksanderbl29/meal-planner/internal/auth"
	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

// mealRequest is the body of create and update calls. Either week and year
// or a date inside the target week may be given; create defaults to the
// current week.
type mealRequest struct {
	Name  string `json:"name" binding:"required"`
	Week  int    `json:"week"`
	Year  int    `json:"year"`
	Date  string `json:"date"`
	Eaten bool   `json:"eaten"`
}

func (r mealRequest) weekYear(fallback weeks.WeekYear) (weeks.WeekYear, error) {
	if r.Date != "" {
		t, err := time.Parse(constants.DateFormat, r.Date)
		if err != nil {
			return weeks.WeekYear{}, errors.New("date must be YYYY-MM-DD")
		}
		return weeks.FromDate(t), nil
	}
	wy := fallback
	if r.Week != 0 {
		wy.Week = r.Week
	}
	if r.Year != 0 {
		wy.Year = r.Year
	}
	return wy, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Store   string `json:"store"`
	Version string `json:"version"`
	Week    int    `json:"week"`
	Year    int    `json:"year"`
}

func (s *Server) health(c *gin.Context) {
	current := s.planner.CurrentWeek()
	respond(c, http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
		Store:   s.storeName,
		Version: constants.Version,
		Week:    current.Week,
		Year:    current.Year,
	})
}

func (s *Server) listMeals(c *gin.Context) {
	view := planner.View(c.DefaultQuery("view", string(planner.ViewUpcoming)))
	if !view.Valid() {
		respondError(c, http.StatusBadRequest, "view must be one of upcoming, historic, all")
		return
	}
	thisWeekOnly := c.Query("filter") == "thisWeek"

	meals, err := s.planner.List(c.Request.Context(), view, thisWeekOnly)
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, meals)
}

func (s *Server) createMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	wy, err := req.weekYear(s.planner.CurrentWeek())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := s.planner.Create(c.Request.Context(), req.Name, wy.Week, wy.Year)
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, meal)
}

func (s *Server) updateMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	wy, err := req.weekYear(weeks.WeekYear{})
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := s.planner.Edit(c.Request.Context(), models.Meal{
		ID:    c.Param("id"),
		Name:  req.Name,
		Week:  wy.Week,
		Year:  wy.Year,
		Eaten: req.Eaten,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, meal)
}

func (s *Server) deleteMeal(c *gin.Context) {
	id := c.Param("id")
	if err := s.planner.Remove(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id})
}

func (s *Server) markEaten(c *gin.Context) {
	meal, err := s.planner.MarkEaten(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, meal)
}

func (s *Server) promote(c *gin.Context) {
	meal, err := s.planner.Promote(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, meal)
}

func (s *Server) calendar(c *gin.Context) {
	before, err := intQuery(c, "before", constants.DefaultWeeksBefore)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	after, err := intQuery(c, "after", constants.DefaultWeeksAfter)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	cal, err := s.planner.Calendar(c.Request.Context(), before, after)
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, cal)
}

func (s *Server) week(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		respondError(c, http.StatusBadRequest, "year must be between 1 and 9999")
		return
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < constants.MinWeek || week > constants.MaxWeek {
		respondError(c, http.StatusBadRequest, "week must be between 1 and 52")
		return
	}

	w, err := s.planner.WeekRange(c.Request.Context(), week, year)
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, http.StatusOK, w)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > constants.WeeksPerYear {
		return 0, errors.New(name + " must be a number between 0 and 52")
	}
	return n, nil
}

// fail maps planner errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, planner.ErrAuthRequired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrInvalidMeal):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrPersistence):
		respondError(c, http.StatusInternalServerError, "meals could not be saved, try again later")
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
