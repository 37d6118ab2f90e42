package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"timetracker/pkg/auth"
	"timetracker/pkg/dashboard"
	"timetracker/pkg/timeentry"
)

// server holds what the handlers share. Each request only touches the service and,
// through it, the connection pool.
type server struct {
	svc       *timeentry.Service
	db        *gorm.DB
	origin    string
	jwtSecret []byte
}

func setupRoutes(r *gin.Engine, s *server) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{s.origin},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", s.healthHandler)

	api := r.Group("")
	if len(s.jwtSecret) > 0 {
		api.Use(auth.Middleware(s.jwtSecret))
	}
	api.POST("/time-entries", s.createTimeEntryHandler)
	api.GET("/time-entries", s.listTimeEntriesHandler)
	api.GET("/dashboard.json", s.dashboardJSONHandler)

	// HTML pages are only mounted while the API is unauthenticated.
	if len(s.jwtSecret) == 0 {
		setupWebRoutes(r, s)
	}
}

type createTimeEntryRequest struct {
	Date            string          `json:"date"`
	Project         string          `json:"project"`
	Hours           json.RawMessage `json:"hours"`
	WorkDescription string          `json:"workDescription"`
}

// parseHours maps the raw JSON hours value to the service input: absent or null is nil,
// a number is its value, anything else is NaN so validation reports it as non-numeric.
func parseHours(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var h float64
	if err := json.Unmarshal(raw, &h); err != nil {
		h = math.NaN()
	}
	return &h
}

func (s *server) createTimeEntryHandler(c *gin.Context) {
	var req createTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": timeentry.MsgRequired})
		return
	}
	entry, err := s.svc.Create(c.Request.Context(), timeentry.CreateInput{
		Date:            req.Date,
		Project:         req.Project,
		Hours:           parseHours(req.Hours),
		WorkDescription: req.WorkDescription,
	})
	if err != nil {
		status, msg := createErrorResponse(err)
		c.JSON(status, gin.H{"message": msg})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// createErrorResponse maps a Service.Create error to a status and a message safe to show.
func createErrorResponse(err error) (int, string) {
	var verr *timeentry.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, timeentry.ErrDailyCapExceeded):
		return http.StatusBadRequest, err.Error()
	}
	log.Printf("create time entry: %v", err)
	return http.StatusInternalServerError, "Failed to create time entry."
}

func (s *server) listTimeEntriesHandler(c *gin.Context) {
	entries, err := s.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("list time entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch time entries."})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *server) dashboardJSONHandler(c *gin.Context) {
	entries, err := s.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch time entries."})
		return
	}
	c.JSON(http.StatusOK, dashboard.Build(entries, pageParam(c)))
}

func (s *server) healthHandler(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Printf("health: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}
