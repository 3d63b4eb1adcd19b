package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/staff-calendar/internal/application"
	"github.com/example/staff-calendar/internal/calendar"
	"github.com/example/staff-calendar/internal/config"
	"github.com/example/staff-calendar/internal/editor"
	httptransport "github.com/example/staff-calendar/internal/http"
	"github.com/example/staff-calendar/internal/logging"
	"github.com/example/staff-calendar/internal/persistence/sqlite"
)

func main() {
	logger := logging.New(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString

	calendars := application.NewCalendarService(store, cfg.SlotMinutes, cfg.ViewCacheTTL, idGenerator)
	machine := editor.New(cfg.SlotMinutes, idGenerator)
	editors := application.NewEditorService(store, calendars, machine)
	employees := application.NewEmployeeService(store, calendars, idGenerator)

	if err := seedEmployees(context.Background(), employees); err != nil {
		logger.Error("failed to seed employees", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Months:     httptransport.NewMonthHandler(calendars, logger),
		Editor:     httptransport.NewEditorHandler(editors, logger),
		Employees:  httptransport.NewEmployeeHandler(employees, logger),
		Absences:   httptransport.NewAbsenceHandler(calendars, logger),
		Overrides:  httptransport.NewOverrideHandler(calendars, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("calendar API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedEmployees fills an empty database with a default employee list so a
// fresh installation renders usable calendar columns.
func seedEmployees(ctx context.Context, employees *application.EmployeeService) error {
	existing, err := employees.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := make([]calendar.Employee, 0, 3)
	for _, name := range []string{"Mitarbeiter 1", "Mitarbeiter 2", "Mitarbeiter 3"} {
		defaults = append(defaults, calendar.Employee{DisplayName: name, IsActive: true})
	}
	return employees.SaveEmployees(ctx, defaults)
}
