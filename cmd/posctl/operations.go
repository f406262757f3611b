package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/metrics"
	"github.com/mayurimulay789/posadmin-client/internal/state"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	var filter domain.ListFilter
	var view string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			resolved := state.TaskMine
			var loadErr error
			switch view {
			case "all":
				resolved = state.TaskAll
				if app.session.User() != nil && app.session.User().Role != domain.RoleMerchant {
					resolved = state.TaskMine
				}
				loadErr = app.tasks.LoadAll(cmd.Context(), filter)
			case "assigned":
				resolved = state.TaskAssigned
				loadErr = app.tasks.LoadAssigned(cmd.Context(), filter)
			case "pending":
				resolved = state.TaskMyPending
				loadErr = app.tasks.LoadMyPending(cmd.Context(), filter)
			case "completed":
				resolved = state.TaskMyCompleted
				loadErr = app.tasks.LoadMyCompleted(cmd.Context(), filter)
			default:
				loadErr = app.tasks.LoadMine(cmd.Context(), filter)
			}
			if loadErr != nil {
				return loadErr
			}
			for _, t := range app.tasks.View(resolved) {
				fmt.Printf("%-28s  %-10s  %-8s  due %s\n", t.TaskName, t.Status, t.Priority, t.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}
	listFlags(list, &filter)
	list.Flags().StringVar(&view, "view", "mine", "View: all, mine, assigned, pending, completed")

	var in api.TaskInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Assign a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.tasks.Create(cmd.Context(), in)
		},
	}
	create.Flags().StringVar(&in.TaskName, "name", "", "Task name")
	create.Flags().StringVar(&in.TaskMessage, "message", "", "Task message")
	create.Flags().StringVar(&in.AssignedTo, "to", "", "Assignee user id")
	create.Flags().StringVar(&in.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	create.Flags().StringVar(&in.Priority, "priority", "normal", "Priority")
	create.Flags().StringVar(&in.Category, "category", "", "Category")

	var message string
	complete := &cobra.Command{
		Use:   "complete [id]",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.tasks.Complete(cmd.Context(), args[0], message)
		},
	}
	complete.Flags().StringVarP(&message, "message", "m", "", "Completion message (required)")

	cmd.AddCommand(list, create, complete)
	return cmd
}

func attendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance records, approvals and export",
	}

	var filter domain.ListFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.attendance.Load(cmd.Context(), filter); err != nil {
				return err
			}
			for _, r := range app.attendance.Records() {
				fmt.Printf("%-24s  %s  %-9s  %-8s  %5.2fh late=%dm\n",
					r.User.FullName, r.Date.Format("2006-01-02"), r.Status, r.ApprovalStatus, r.TotalHours, r.LateMinutes)
			}
			return nil
		},
	}
	listFlags(list, &filter)

	var remarks string
	approve := &cobra.Command{
		Use:   "approve [id]",
		Short: "Approve an attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.attendance.Approve(cmd.Context(), args[0], api.ApprovalInput{
				Status:  domain.ApprovalApproved,
				Remarks: remarks,
			})
		},
	}
	approve.Flags().StringVar(&remarks, "remarks", "", "Optional remarks")

	var rejectRemarks string
	reject := &cobra.Command{
		Use:   "reject [id]",
		Short: "Reject an attendance record (remarks required)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.attendance.Approve(cmd.Context(), args[0], api.ApprovalInput{
				Status:  domain.ApprovalRejected,
				Remarks: rejectRemarks,
			})
		},
	}
	reject.Flags().StringVar(&rejectRemarks, "remarks", "", "Rejection remarks")

	var start, end, format string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export attendance to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var path string
			switch format {
			case "xlsx", "excel":
				path, err = app.export.AttendanceXLSX(cmd.Context(), start, end)
			default:
				path, err = app.export.AttendanceCSV(cmd.Context(), start, end)
			}
			if err != nil {
				return err
			}
			fmt.Printf("exported %s\n", path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	_ = exportCmd.MarkFlagRequired("start")
	_ = exportCmd.MarkFlagRequired("end")

	cmd.AddCommand(list, approve, reject, exportCmd)
	return cmd
}

func chargesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charges",
		Short: "Manage charges",
	}

	var filter domain.ListFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List charges",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.charges.Load(cmd.Context(), filter); err != nil {
				return err
			}
			for _, c := range app.charges.Charges() {
				fmt.Printf("%-24s  %-10s  %8.2f  %-12s  active=%v\n", c.ChargeName, c.ChargeType, c.Value, c.Category, c.Active)
			}
			return nil
		},
	}
	listFlags(list, &filter)

	toggle := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Toggle a charge's active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.charges.ToggleActive(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func dashboardCmd() *cobra.Command {
	var refresh, asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the role dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user := app.session.User()
			if user == nil {
				return fmt.Errorf("not logged in")
			}

			var data *domain.DashboardData
			if refresh {
				data, err = app.dashboard.Refresh(cmd.Context(), user.Role)
			} else {
				data, err = app.dashboard.Load(cmd.Context(), user.Role)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(data)
			}
			fmt.Printf("revenue total=%d today=%d  transactions=%d\n", data.TotalRevenue, data.TodayRevenue, data.TotalTransactions)
			fmt.Printf("employees=%d customers=%d pending tasks=%d pending approvals=%d\n",
				data.EmployeeCount, data.CustomerCount, data.PendingTasks, data.PendingApprovals)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Force a reload")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve local health and metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return metrics.Serve(ctx, app.cfg.MetricsPort, app.log)
		},
	}
}
