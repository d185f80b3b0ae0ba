package app

import (
	"time"

	"github.com/rs/zerolog"

	"ai-conversation-transcriber/internal/config"
	"ai-conversation-transcriber/internal/observability/logging"
)

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New constructs a new Application from the provided configuration and
// initializes the global logger from its observability settings.
func New(cfg *config.Configuration) *Application {
	a := &Application{
		Cfg: cfg,
	}
	a.setupLogger()

	appLogger := a.Logger.With().
		Str("method", "New").
		Logger()

	appLogger.Info().Msg("Conversation transcriber application created")
	return a
}

// setupLogger configures zerolog for the service.
func (a *Application) setupLogger() {
	logCfg := logging.DefaultConfig()
	if a.Cfg != nil {
		if a.Cfg.Observability.LogLevel != "" {
			logCfg.Level = a.Cfg.Observability.LogLevel
		}
		if a.Cfg.Observability.LogFormat != "" {
			logCfg.Format = a.Cfg.Observability.LogFormat
		}
	}
	logging.Init(logCfg)

	service := "ai-conversation-transcriber"
	if a.Cfg != nil && a.Cfg.Service.Name != "" {
		service = a.Cfg.Service.Name
	}

	a.Logger = logging.WithComponent("application").With().
		Str("service", service).
		Logger()

	a.Logger.Info().
		Str("logLevel", zerolog.GlobalLevel().String()).
		Str("logFormat", logCfg.Format).
		Msg("Logger setup completed")
}

// Start performs any startup work required before serving traffic.
func (a *Application) Start() error {
	startLogger := a.Logger.With().
		Str("method", "Start").
		Logger()

	a.StartupTime = time.Now().UTC()
	startLogger.Info().
		Time("startupTime", a.StartupTime).
		Msg("Conversation transcriber starting")

	return nil
}

// Uptime returns the time since Start, or zero before Start.
func (a *Application) Uptime() time.Duration {
	if a.StartupTime.IsZero() {
		return 0
	}
	return time.Since(a.StartupTime)
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	shutdownLogger := a.Logger.With().
		Str("method", "Shutdown").
		Logger()

	shutdownLogger.Info().
		Dur("uptime", a.Uptime()).
		Msg("Conversation transcriber shutting down")
}
