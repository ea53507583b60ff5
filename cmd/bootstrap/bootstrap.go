package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tekhe-dashboard/config"
	"tekhe-dashboard/internal/delivery/cli"
	"tekhe-dashboard/internal/delivery/cli/handler"
	"tekhe-dashboard/internal/delivery/cli/middleware"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/infrastructure/dataset"
	"tekhe-dashboard/internal/infrastructure/metrics"
	"tekhe-dashboard/internal/repository"
	"tekhe-dashboard/internal/service"
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds all dependencies for the application
type App struct {
	Config  *config.Config
	Log     *logrus.Logger
	Metrics *metrics.Recorder
	Root    *cobra.Command

	validator *validator.CustomValidator
	now       func() time.Time
}

// New creates a new App instance from the .env file and environment
func New() (*App, error) {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg, os.Stderr), nil
}

// NewWithConfig creates an App that logs to logOut
func NewWithConfig(cfg *config.Config, logOut io.Writer) *App {
	app := &App{
		Config:    cfg,
		Log:       setupLogger(cfg.Log, logOut),
		validator: validator.NewValidator(),
		now:       time.Now,
	}
	app.Log.Debugf("Configuration loaded: env=%s", cfg.App.Env)

	router := cli.NewRouter(app.wire, middleware.NewActorMiddleware(app.validator), cfg.Dataset.Path)
	app.Root = router.Setup()
	return app
}

// setupLogger configures the logrus logger. Output goes to logOut so that
// stdout carries only the response envelope.
func setupLogger(cfg config.LogConfig, logOut io.Writer) *logrus.Logger {
	log := logrus.New()
	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetOutput(logOut)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// wire loads the dataset and initializes all layers over it
func (app *App) wire(datasetPath string) (*cli.Handlers, error) {
	loader, err := dataset.NewLoader(app.Log, app.validator)
	if err != nil {
		return nil, err
	}
	snapshot, err := loader.LoadFile(datasetPath)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	repos := usecase.Repositories{
		Patients:        repository.NewPatientRepository(snapshot),
		Visits:          repository.NewVisitRepository(snapshot),
		RiskAssessments: repository.NewRiskAssessmentRepository(snapshot),
		Referrals:       repository.NewReferralRepository(snapshot),
		Immunizations:   repository.NewImmunizationRepository(snapshot),
	}
	structures, err := repository.NewStructureRepository(snapshot).FindAll(context.Background())
	if err != nil {
		return nil, err
	}
	directory := entity.NewStructureDirectory(structures)

	// Initialize services
	app.Metrics = metrics.NewRecorder()
	diagnostics := service.TeeDiagnostics(service.NewLogDiagnostics(app.Log), app.Metrics)
	scope := service.NewAccessScopeService(app.Log, directory, diagnostics, app.now)
	timelines := service.NewReferralTimelineService(diagnostics, app.now)
	kpis := service.NewKpiService(app.Log, directory, timelines, app.Config.KPI.Cpn4TargetRatio)
	alerts := service.NewAlertService(app.Log, scope, service.NewLogAlertNotifier(app.Log), diagnostics, app.now)
	quality := service.NewDataQualityService()
	pseudonyms, err := service.NewPseudonymService(app.Log, app.Config.Partner.PseudonymKey)
	if err != nil {
		return nil, err
	}

	// Initialize usecases
	dashboardUsecase := usecase.NewDashboardUsecase(app.Log, repos, scope, kpis, snapshot.Digest, app.now)
	patientUsecase := usecase.NewPatientUsecase(app.Log, repos, directory, scope, timelines, pseudonyms)
	referralUsecase := usecase.NewReferralUsecase(app.Log, repos, scope, timelines)
	alertUsecase := usecase.NewAlertUsecase(app.Log, repos.Patients, repos.RiskAssessments, alerts)
	qualityUsecase := usecase.NewQualityUsecase(app.Log, repos, scope, quality, snapshot.Digest)
	diagnosticsUsecase := usecase.NewDiagnosticsUsecase(app.Log, repos, scope, timelines, app.Metrics, snapshot.Digest, snapshot.LoadedAt)

	// Initialize handlers
	return &cli.Handlers{
		Dashboard:   handler.NewDashboardHandler(dashboardUsecase, app.validator),
		Patient:     handler.NewPatientHandler(patientUsecase, app.validator),
		Referral:    handler.NewReferralHandler(referralUsecase, app.validator),
		Alert:       handler.NewAlertHandler(alertUsecase, app.validator),
		Quality:     handler.NewQualityHandler(qualityUsecase, app.validator),
		Diagnostics: handler.NewDiagnosticsHandler(diagnosticsUsecase),
	}, nil
}

// Run executes the command line and returns the process exit code.
// SIGINT and SIGTERM cancel the command context.
func (app *App) Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Root.SetArgs(args)
	err := app.Root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *response.ExitError
	if errors.As(err, &exit) {
		app.Log.Debugf("Command failed: %s", exit.Message)
		return exit.Code
	}

	// cobra usage errors never reach a handler
	app.Log.Errorf("Command failed: %v", err)
	return response.CodeBadRequest
}
