package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/config"
	"github.com/mayurimulay789/posadmin-client/internal/dashboard"
	"github.com/mayurimulay789/posadmin-client/internal/export"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
	"github.com/mayurimulay789/posadmin-client/internal/session"
	"github.com/mayurimulay789/posadmin-client/internal/state"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "posctl",
		Short:   "posctl - restaurant POS administration console",
		Version: Version,
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(employeesCmd())
	rootCmd.AddCommand(customersCmd())
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(attendanceCmd())
	rootCmd.AddCommand(chargesCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app wires config, storage, session, transport and the stores in the same
// order the pieces depend on each other.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	storage *session.Storage
	session *session.Store
	api     *api.Client

	employees  *state.EmployeeStore
	customers  *state.CustomerStore
	expenses   *state.ExpenseStore
	tasks      *state.TaskStore
	attendance *state.AttendanceStore
	charges    *state.ChargeStore
	dashboard  *dashboard.Cache
	export     *export.Service
}

func newApp() (*app, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	storage, err := session.OpenStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	sess := session.NewStore(storage, cfg.PermissionTTL, logger)
	transport := rest.New(cfg.APIBaseURL, cfg.RequestTimeout, sess, logger)
	transport.OnUnauthorized = sess.HandleUnauthorized
	client := api.NewClient(transport)
	sess.Attach(client.Auth, client.Permissions)
	sess.OnExpired = func() {
		logger.Warn("session expired, log in again", "route", cfg.LoginRoute)
	}

	return &app{
		cfg:        cfg,
		log:        logger,
		storage:    storage,
		session:    sess,
		api:        client,
		employees:  state.NewEmployeeStore(client.Employees),
		customers:  state.NewCustomerStore(client.Customers, sess),
		expenses:   state.NewExpenseStore(client.Expenses, sess),
		tasks:      state.NewTaskStore(client.Tasks, sess),
		attendance: state.NewAttendanceStore(client.Attendance, sess),
		charges:    state.NewChargeStore(client.Charges, sess),
		dashboard:  dashboard.NewCache(client.Dashboard, cfg.DashboardTTL),
		export:     export.NewService(client.Attendance, cfg.ExportDir, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.log.Warn("closing session storage", "err", err)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
