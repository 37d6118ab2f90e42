package main

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"timetracker/pkg/dashboard"
	"timetracker/pkg/webform"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"hoursLabel": dashboard.HoursLabel,
		"add":        func(delta, n int) int { return n + delta },
	}).ParseFS(templateFS, "templates/*.tmpl"))
}

func setupWebRoutes(r *gin.Engine, s *server) {
	r.SetHTMLTemplate(loadTemplates())
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	r.GET("/dashboard", s.dashboardPageHandler)
	r.GET("/entry/new", s.newEntryPageHandler)
	r.POST("/entry/new", s.submitEntryHandler)
}

type formPage struct {
	Title    string
	Active   string
	Form     webform.Form
	Errors   webform.FieldErrors
	Notice   string
	Projects []string
}

type dashboardPage struct {
	Title  string
	Active string
	View   dashboard.View
	Notice string
	Error  string
}

func (s *server) dashboardPageHandler(c *gin.Context) {
	page := dashboardPage{Title: "Dashboard", Active: "/dashboard", Notice: createdNotice(c.Query("created"))}
	entries, err := s.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("dashboard page: %v", err)
		page.Error = "Failed to load time entries"
		c.HTML(http.StatusInternalServerError, "dashboard.tmpl", page)
		return
	}
	page.View = dashboard.Build(entries, pageParam(c))
	c.HTML(http.StatusOK, "dashboard.tmpl", page)
}

func (s *server) newEntryPageHandler(c *gin.Context) {
	projects := s.svc.Projects()
	form := webform.Form{Date: time.Now().Format("2006-01-02")}
	if len(projects) > 0 {
		form.Project = projects[0]
	}
	c.HTML(http.StatusOK, "entry_form.tmpl", formPage{
		Title:    "New Time Entry",
		Active:   "/entry/new",
		Form:     form,
		Errors:   webform.FieldErrors{},
		Projects: projects,
	})
}

func (s *server) submitEntryHandler(c *gin.Context) {
	form := webform.Form{
		Date:            c.PostForm("date"),
		Project:         c.PostForm("project"),
		Hours:           c.PostForm("hours"),
		WorkDescription: c.PostForm("workDescription"),
	}
	page := formPage{Title: "New Time Entry", Active: "/entry/new", Form: form, Projects: s.svc.Projects()}

	if page.Errors = webform.Validate(form, page.Projects); len(page.Errors) > 0 {
		c.HTML(http.StatusUnprocessableEntity, "entry_form.tmpl", page)
		return
	}
	entry, err := s.svc.Create(c.Request.Context(), form.Input())
	if err != nil {
		status, msg := createErrorResponse(err)
		page.Notice = msg
		c.HTML(status, "entry_form.tmpl", page)
		return
	}
	q := url.Values{"created": {strconv.Itoa(entry.Hours) + ":" + entry.Project}}
	c.Redirect(http.StatusSeeOther, "/dashboard?"+q.Encode())
}

// createdNotice renders the one-shot success message from the "hours:project" query value.
func createdNotice(v string) string {
	hours, project, ok := strings.Cut(v, ":")
	if !ok || hours == "" || project == "" {
		return ""
	}
	return "Time entry saved successfully! " + hours + " hours logged for " + project
}
