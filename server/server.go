package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"french_vocab_trainer/generator"
	"french_vocab_trainer/history"
)

//go:embed web/index.html
var embeddedStatic embed.FS

const (
	msgMissingKey   = "Falta API Key"
	msgMissingTopic = "Falta el tema"
	msgBadRequest   = "Solicitud inválida"
	msgGeneric      = "Error de conexión/clave"
)

// Generator produces entries for a topic and level.
type Generator interface {
	Generate(ctx context.Context, apiKey, topic string, level generator.Level) ([]generator.Entry, error)
}

// Options tune the HTTP layer.
type Options struct {
	// Timeout bounds one generation call; zero leaves it unbounded.
	Timeout        time.Duration
	AllowedOrigins []string
}

type Server struct {
	cors     gin.HandlerFunc
	gen      Generator
	store    history.Store
	opts     Options
	logger   *zap.Logger
	staticFS fs.FS
}

func New(gen Generator, store history.Store, opts Options, logger *zap.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("generator required")
	}
	if store == nil {
		return nil, errors.New("history store required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}
	var corsHandler gin.HandlerFunc
	if len(opts.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.AllowedOrigins
		// cors.New panics on a bad origin; report it instead.
		if err := corsCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid allowed origins: %w", err)
		}
		corsHandler = cors.New(corsCfg)
	}
	return &Server{
		cors:     corsHandler,
		gen:      gen,
		store:    store,
		opts:     opts,
		logger:   logger.With(zap.String("component", "server")),
		staticFS: sub,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logMiddleware())
	if s.cors != nil {
		r.Use(s.cors)
	}

	r.GET("/", s.handleIndex)
	r.POST("/generar", s.handleGenerate)
	r.GET("/obtener_historial", s.handleHistory)
	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	c.FileFromFS("/", http.FS(s.staticFS))
}

type generateReq struct {
	Topic  string          `json:"tema"`
	Level  generator.Level `json:"nivel"`
	APIKey string          `json:"apiKey"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.APIKey == "" {
		writeError(c, http.StatusUnauthorized, msgMissingKey)
		return
	}
	if req.Topic == "" {
		writeError(c, http.StatusBadRequest, msgMissingTopic)
		return
	}

	ctx := c.Request.Context()
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	entries, err := s.gen.Generate(ctx, req.APIKey, req.Topic, req.Level)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("generation failed", zap.String("topic", req.Topic), zap.Error(err))
		}
		writeError(c, status, msg)
		return
	}

	// Saved before answering; a failed save never changes the response.
	s.store.Prepend(req.Topic, req.Level, entries)
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.LoadAll())
}

// statusFor maps a generation outcome to the caller-facing status and message.
func statusFor(err error) (int, string) {
	if errors.Is(err, generator.ErrMissingAPIKey) {
		return http.StatusUnauthorized, msgMissingKey
	}
	var genErr *generator.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case generator.KindInvalidKey, generator.KindQuota:
			return http.StatusBadRequest, genErr.Message
		}
	}
	return http.StatusInternalServerError, msgGeneric
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if path == "" {
			path = "/"
		}
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
