// Package server exposes the ingestion pipeline over HTTP. It is a thin
// shell: all decisions happen in the engine, and handlers translate results
// to status codes.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/ingest"
	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/refs"
)

// Server holds the HTTP front end's collaborators.
type Server struct {
	engine      *ingest.Engine
	refs        *refs.Service
	forms       map[string]*form.Config
	ledgerTable string
	log         zerolog.Logger
}

// Options configures the server.
type Options struct {
	AllowOrigins []string
	LedgerTable  string
}

// New builds a server with the built-in expense form registered.
func New(eng *ingest.Engine, rs *refs.Service, opts Options, log zerolog.Logger) *Server {
	table := opts.LedgerTable
	if table == "" {
		table = "expenses"
	}
	return &Server{
		engine:      eng,
		refs:        rs,
		forms:       map[string]*form.Config{"expense": form.ExpenseForm()},
		ledgerTable: table,
		log:         log.With().Str("component", "server").Logger(),
	}
}

// RegisterForm adds a form config under its name.
func (s *Server) RegisterForm(cfg *form.Config) {
	s.forms[cfg.Name] = cfg
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router(allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowOrigins) > 0 {
		corsCfg.AllowOrigins = allowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.POST("/forms/:form/submissions", s.submitForm)
		api.GET("/expenses", s.listExpenses)
		api.GET("/categories", s.listCategories)
		api.POST("/categories", s.addCategory)
		api.GET("/payment-methods", s.listPaymentMethods)
		api.GET("/people", s.listPeople)
		api.POST("/people", s.addPerson)
		api.GET("/totals", s.totals)
	}
	return r
}

// Run serves on the given port until the listener fails.
func (s *Server) Run(port int, allowOrigins []string) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.Router(allowOrigins).Run(addr)
}

type submissionRequest struct {
	SubmissionID string            `json:"submission_id"`
	Answers      map[string]string `json:"answers" binding:"required"`
}

func (s *Server) submitForm(c *gin.Context) {
	cfg, ok := s.forms[c.Param("form")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown form"})
		return
	}

	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.Ingest(req.Answers, cfg, req.SubmissionID, model.EntryMethodForm)
	if err != nil {
		s.log.Error().Err(err).Msg("ingest failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !result.Accepted {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"submission_id": result.SubmissionID,
			"errors":        result.Errors,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"submission_id": result.SubmissionID,
		"record_id":     result.RecordID,
	})
}

func (s *Server) listExpenses(c *gin.Context) {
	led, err := s.engine.Ledger(s.ledgerTable)
	if err != nil {
		s.fail(c, err)
		return
	}
	expenses, err := led.ReadAll()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.refs.Categories())
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, s.refs.PaymentMethods())
}

func (s *Server) listPeople(c *gin.Context) {
	c.JSON(http.StatusOK, s.refs.People())
}

type addPersonRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	Notes        string `json:"notes"`
}

func (s *Server) addPerson(c *gin.Context) {
	var req addPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.refs.AddPerson(req.Name, req.Relationship, req.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name})
}

type addCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
}

func (s *Server) addCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.refs.AddCategory(req.Name, req.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
