package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/dashboard"
	"github.com/smashclub/backend/core/note"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/program"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
)

type (
	// Deps are the services the API is built on. It is filled by the dig container.
	Deps struct {
		dig.In

		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		UserSvc        *user.Service
		AthleteSvc     *athlete.Service
		ProgramSvc     *program.Service
		ScheduleSvc    *schedule.Service
		AttendanceSvc  *attendance.Service
		PerformanceSvc *performance.Service
		NoteSvc        *note.Service
		AchievementSvc *achievement.Service
		SettingsSvc    *settings.Service
		ReportSvc      *report.Service
		DashboardSvc   *dashboard.Service
	}

	Server struct {
		app      *echo.Echo
		deps     Deps
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps Deps) *Server {
	s := &Server{
		app:      echo.New(),
		deps:     deps,
		auth:     newAuthenticator(deps.Conf, deps.UserSvc),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{conf.FrontendBaseURL},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	g := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(s.auth.jwtConfig)

	registerUserAPI(g, jwt, s.auth, s.deps)
	registerAthleteAPI(g, jwt, s.deps)
	registerProgramAPI(g, jwt, s.deps)
	registerScheduleAPI(g, jwt, s.deps)
	registerAttendanceAPI(g, jwt, s.deps)
	registerPerformanceAPI(g, jwt, s.deps)
	registerNoteAPI(g, jwt, s.deps)
	registerAchievementAPI(g, jwt, s.deps)
	registerSettingsAPI(g, jwt, s.deps)
	registerReportAPI(g, jwt, s.deps)
	registerDashboardAPI(g, jwt, s.deps)
	registerPublicAPI(g, s.deps)
}

// Start listens on conf.Server.Address. Listen errors are sent to Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown asks the process to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
