package commands

import (
	"Blogicum/internal/api/config"
	"Blogicum/internal/pkg/database"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/repository"
	"Blogicum/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	configDir string
	dbDriver  string
	dbDSN     string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blogadmin",
	Short: "Blogicum administration tool",
	Long: `blogadmin manages the Blogicum database directly: schema migration,
categories, locations and user accounts.

Connection settings come from configs/config.yaml and BLOG_* environment
variables; --driver and --dsn override them.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "Directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "Database driver override (mysql, postgres, sqlite)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", "", "Database DSN override")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log SQL and service events to stderr")
}

// services 命令行可用的服务集合，以管理员身份执行
type services struct {
	db         *gorm.DB
	categories service.CategoryService
	locations  service.LocationService
	users      service.UserService
	viewer     service.Viewer
}

func (s *services) close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func openServices(cmd *cobra.Command) (*services, error) {
	if err := config.LoadConfig(configDir); err != nil {
		return nil, err
	}
	dbCfg := config.Cfg.DB
	if dbDriver != "" {
		dbCfg.Driver = dbDriver
	}
	if dbDSN != "" {
		dbCfg.DSN = dbDSN
	}
	dbCfg.AutoMigrate = false

	l := logger.Discard()
	if verbose {
		l = log.New(log.NewTextHandler(cmd.ErrOrStderr(), &log.HandlerOptions{Level: log.LevelDebug}))
	}

	db, err := database.NewGormDB(&dbCfg, l)
	if err != nil {
		return nil, err
	}

	return &services{
		db:         db,
		categories: service.NewCategoryService(repository.NewCategoryRepository(db), l),
		locations:  service.NewLocationService(repository.NewLocationRepository(db), l),
		users:      service.NewUserService(repository.NewUserRepo(db), nil, nil, l),
		viewer:     service.SystemViewer(),
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
