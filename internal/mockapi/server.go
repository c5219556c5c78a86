package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/academy-console/internal/models"
	"github.com/noah-isme/academy-console/pkg/config"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
	"github.com/noah-isme/academy-console/pkg/logger"
	"github.com/noah-isme/academy-console/pkg/metrics"
	corsmiddleware "github.com/noah-isme/academy-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academy-console/pkg/middleware/requestid"
	"github.com/noah-isme/academy-console/pkg/response"
)

// Server is the local fixture backend used for development and integration
// tests. State lives in memory and resets on restart.
type Server struct {
	cfg     config.MockAPIConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
	engine  *gin.Engine

	admin     models.User
	adminHash []byte

	students      *collection[models.Student]
	standards     *collection[models.Standard]
	subjects      *collection[models.Subject]
	batches       *collection[models.Batch]
	announcements *collection[models.Announcement]
	teachers      *collection[models.Teacher]
}

// New seeds fixtures and mounts the routes.
func New(cfg config.MockAPIConfig, log *zap.Logger, m *metrics.Metrics) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		logger:    log,
		metrics:   m,
		admin:     models.User{ID: "u1", Name: "Admin", Email: cfg.AdminEmail, Role: "admin"},
		adminHash: hash,
	}
	s.seed()
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(s.logger))
	r.Use(corsmiddleware.New(s.cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/auth/login", s.login)

	authed := api.Group("")
	authed.Use(s.authRequired())
	authed.GET("/auth/profile", s.profile)
	authed.GET("/dashboard/stats", s.stats)

	registerCRUD(authed, "/students", s.students)
	registerCRUD(authed, "/standards", s.standards)
	registerCRUD(authed, "/subjects", s.subjects)
	registerCRUD(authed, "/batches", s.batches)
	registerCRUD(authed, "/announcements", s.announcements)
	registerCRUD(authed, "/teachers", s.teachers)

	s.engine = r
}

// Handler exposes the router, handy for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured port until the process exits.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Sugar().Infow("mock api starting", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "email and password are required"))
		return
	}
	if req.Email != s.admin.Email {
		response.Error(c, appErrors.New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)); err != nil {
		response.Error(c, appErrors.New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password"))
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   s.admin.ID,
		"name":  s.admin.Name,
		"email": s.admin.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrServer.Code, http.StatusInternalServerError, "failed to issue token"))
		return
	}

	response.Bare(c, http.StatusOK, models.LoginResponse{Token: token, User: s.admin})
}

func (s *Server) profile(c *gin.Context) {
	response.Bare(c, http.StatusOK, s.admin)
}

func (s *Server) stats(c *gin.Context) {
	stats := models.DashboardStats{
		TotalStudents:  s.students.count(),
		TotalTeachers:  s.teachers.count(),
		TotalStandards: s.standards.count(),
		TotalSubjects:  s.subjects.count(),
		TotalBatches:   s.batches.count(),
	}
	for _, b := range s.batches.snapshot() {
		if b.Status == models.BatchStatusActive {
			stats.ActiveBatches++
		}
	}
	response.JSON(c, http.StatusOK, stats)
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrSessionExpired, "session expired"))
			c.Abort()
			return
		}
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			response.Error(c, appErrors.Clone(appErrors.ErrSessionExpired, "session expired"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
