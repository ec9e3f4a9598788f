package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harbourview/swapctl/internal/config"
	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/rolecheck"
	"github.com/harbourview/swapctl/pkg/core/store"
	"github.com/harbourview/swapctl/pkg/core/workflow"
	"github.com/harbourview/swapctl/pkg/session"
	"github.com/harbourview/swapctl/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg           *config.Config
	client        *swapapi.Client
	facilityStore *store.Store // nil when no facility is configured
	myStore       *store.Store
	workflowCache *workflow.Cache
	roleChecker   *rolecheck.Checker
	prefs         session.Store
	logger        *zap.Logger
	ctx           context.Context
}

var (
	env      string
	facility string
	app      *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "swapctl",
		Short: "swapctl - Manage shift-swap requests",
		Long:  `A CLI tool for managers and staff to create, review and approve shift-swap requests against the scheduling backend.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&facility, "facility", "f", "", "Facility ID (overrides the configured one)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(listSwapsCmd())
	rootCmd.AddCommand(mySwapsCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(createSwapCmd())
	rootCmd.AddCommand(approveSwapCmd())
	rootCmd.AddCommand(finalApproveCmd())
	rootCmd.AddCommand(respondAssignmentCmd())
	rootCmd.AddCommand(respondSwapCmd())
	rootCmd.AddCommand(retryAssignmentCmd())
	rootCmd.AddCommand(cancelSwapCmd())
	rootCmd.AddCommand(updateSwapCmd())
	rootCmd.AddCommand(bulkApproveCmd())
	rootCmd.AddCommand(workflowStatusCmd())
	rootCmd.AddCommand(checkRoleCmd())
	rootCmd.AddCommand(exportReportCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, API client, stores and caches
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting swapctl", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Loading API credentials")
	creds, err := config.LoadCredentialsWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load API credentials: %w", err)
	}
	app.logger.Debug("API credentials loaded successfully")

	app.logger.Info("Initializing swap API client", zap.String("base_url", app.cfg.APIBaseURL))
	app.client, err = swapapi.NewClient(app.ctx, app.cfg, creds, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create swap API client: %w", err)
	}

	prefsPath, err := session.DefaultPath()
	if err != nil {
		app.logger.Warn("Falling back to in-memory session preferences", zap.Error(err))
		app.prefs = session.NewMemoryStore()
	} else {
		app.prefs, err = session.NewFileStore(prefsPath)
		if err != nil {
			app.logger.Warn("Falling back to in-memory session preferences", zap.Error(err))
			app.prefs = session.NewMemoryStore()
		}
	}

	facilityID := resolveFacility()
	notifier := &consoleNotifier{}

	if facilityID != "" {
		app.facilityStore = store.New(app.client, notifier, app.logger, facilityID)
		app.prefs.Set(session.KeyLastFacility, facilityID)
	}
	app.myStore = store.New(app.client, notifier, app.logger, "")
	app.workflowCache = workflow.NewCache(app.client, app.logger)
	app.roleChecker = rolecheck.NewChecker(app.client, app.logger)

	app.logger.Info("swapctl initialized", zap.String("facility_id", facilityID))
	return nil
}

// resolveFacility picks the facility scope: flag, then config, then the
// last one used this session.
func resolveFacility() string {
	if facility != "" {
		return facility
	}
	if app.cfg.FacilityID != "" {
		return app.cfg.FacilityID
	}
	if last, ok := app.prefs.Get(session.KeyLastFacility); ok {
		return last
	}
	return ""
}

// requireFacilityStore guards manager commands that need a facility scope.
func requireFacilityStore() (*store.Store, error) {
	if app.facilityStore == nil {
		return nil, fmt.Errorf("no facility configured - set facilityID in the config or pass --facility")
	}
	return app.facilityStore, nil
}
