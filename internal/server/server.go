package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"essayqa/config"
	"essayqa/internal/adapter/encoding"
	"essayqa/internal/adapter/segmenter"
	"essayqa/internal/port"
	"essayqa/internal/usecase"
)

// Server is the HTTP transport over the answer-retrieval core.
type Server struct {
	cfg     *config.Config
	encoder port.Encoder
	answers *usecase.AnswerUseCase
	logger  *log.Logger
	metrics *Metrics
}

// New wires a server around the given encoder. The encoder is injected so
// tests can substitute a deterministic stub.
func New(cfg *config.Config, encoder port.Encoder) *Server {
	m := NewMetrics()
	seg := segmenter.New(cfg.Segmenter.MaxHeadingChars, cfg.Segmenter.DefaultTitle)
	metered := &meteredEncoder{encoder: encoder, metrics: m}

	return &Server{
		cfg:     cfg,
		encoder: metered,
		answers: usecase.NewAnswerUseCase(seg, metered),
		logger:  log.New(log.Writer(), "[HTTP] ", log.LstdFlags),
		metrics: m,
	}
}

// Routes builds the echo instance with all routes and middleware attached.
func (s *Server) Routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified error handler: structured JSON plus one log line per failure.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s: %v", code, req.Method, req.URL.Path, err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]string{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.POST("/answers", s.getAnswers)

	return e
}

// Run starts the server on the configured listen address and blocks.
func (s *Server) Run() error {
	e := s.Routes()

	addr := s.cfg.Server.Listen
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: e,
	}
	if t := s.cfg.Server.RequestTimeout; t > 0 {
		// The core has no timeout semantics of its own; a slow encoder
		// call is bounded here at the transport edge.
		srv.ReadTimeout = time.Duration(t) * time.Second
		srv.WriteTimeout = time.Duration(t) * time.Second
	}

	s.logger.Printf("listening on %s (encoder: %s)", addr, s.encoder.ModelName())
	return e.StartServer(srv)
}

// Run builds the configured encoder and serves until the listener fails.
func Run(cfg *config.Config) error {
	encoder, err := encoding.FromConfig(cfg.Encoder)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	return New(cfg, encoder).Run()
}

// meteredEncoder counts texts handed to the underlying encoder.
type meteredEncoder struct {
	encoder port.Encoder
	metrics *Metrics
}

func (e *meteredEncoder) Encode(texts []string) ([][]float32, error) {
	e.metrics.AddEncoded(len(texts))
	return e.encoder.Encode(texts)
}

func (e *meteredEncoder) Dimension() int    { return e.encoder.Dimension() }
func (e *meteredEncoder) ModelName() string { return e.encoder.ModelName() }
