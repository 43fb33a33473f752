package devserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) dailyTasks(c echo.Context) error {
	tasks, confirmed, err := s.store.DailyTasks(currentUserID(c), s.now())
	if err != nil {
		return err
	}
	return success(c, envelope{"tasks": tasks, "allCompleted": confirmed})
}

func (s *Server) updateTask(c echo.Context) error {
	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := c.Bind(&req); err != nil || req.Completed == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "completed is required")
	}
	tasks, err := s.store.SetCompleted(currentUserID(c), c.Param("id"), *req.Completed, s.now())
	if err != nil {
		return err
	}
	return success(c, envelope{"tasks": tasks})
}

func (s *Server) completeAll(c echo.Context) error {
	u, err := s.store.Complete(currentUserID(c), s.now())
	if err != nil {
		return err
	}
	return success(c, envelope{
		"streak":        u.CurrentStreak,
		"longestStreak": u.LongestStreak,
		"message":       fmt.Sprintf("Great job, %s!", u.Username),
	})
}

func (s *Server) history(c echo.Context) error {
	days, err := s.store.History(currentUserID(c))
	if err != nil {
		return err
	}
	return success(c, envelope{"history": days})
}

func (s *Server) teachers(c echo.Context) error {
	return success(c, envelope{"teachers": s.store.Teachers(s.now())})
}
