package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"phone-dialer/pkg/config"
	"phone-dialer/pkg/middleware"
)

type Server struct {
	engine *gin.Engine
	logger *logrus.Logger
}

func New(appEnv config.AppEnv, logger *logrus.Logger) *Server {
	switch appEnv {
	case config.ProductionEnv:
		gin.SetMode(gin.ReleaseMode)
	case config.TestEnv:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.CORS())
	r.SetHTMLTemplate(loadTemplates())

	return &Server{
		engine: r,
		logger: logger,
	}
}

// SetupRoutes registers the form page, its submission and the health check
func (s *Server) SetupRoutes(h *Handlers) {
	r := s.engine

	r.GET("/", h.ShowForm)
	r.POST("/", h.HandleSubmission)
	r.GET("/health", h.HealthCheck)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Serve(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:    address,
		Handler: s.engine,
	}

	s.logger.Infof("rest server starting at: %s", address)
	srvError := make(chan error, 1)
	go func() {
		srvError <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		// graceful shutdown
		s.logger.Info("rest server is shutting down")
		return srv.Shutdown(context.Background())
	case err := <-srvError:
		return err
	}
}
