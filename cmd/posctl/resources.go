package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mayurimulay789/posadmin-client/internal/api"
	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/state"
)

func listFlags(cmd *cobra.Command, f *domain.ListFilter) {
	cmd.Flags().StringVar(&f.Search, "search", "", "Search term")
	cmd.Flags().StringVar(&f.Status, "status", "", "Status filter")
	cmd.Flags().StringVar(&f.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.Page, "page", 1, "Page")
	cmd.Flags().IntVar(&f.Limit, "limit", 20, "Page size")
}

func employeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employees",
	}

	var filter domain.ListFilter
	var role string
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			filter.Role = domain.Role(role)
			if err := app.employees.Load(cmd.Context(), filter); err != nil {
				return err
			}
			for _, e := range app.employees.Employees() {
				fmt.Printf("%-24s  %-28s  %-10s  active=%v\n", e.FullName, e.Email, e.Role, e.IsActive)
			}
			page := app.employees.Page()
			fmt.Printf("page %d/%d (%d total)\n", page.Current, page.Pages, page.Total)
			return nil
		},
	}
	listFlags(list, &filter)
	list.Flags().StringVar(&role, "role", "", "Role filter")

	var in api.EmployeeInput
	var createRole string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			in.Role = domain.Role(createRole)
			return app.employees.Create(cmd.Context(), in)
		},
	}
	create.Flags().StringVar(&in.FullName, "name", "", "Full name")
	create.Flags().StringVar(&in.Email, "email", "", "Email")
	create.Flags().StringVar(&in.Password, "password", "", "Initial password")
	create.Flags().StringVar(&createRole, "role", string(domain.RoleStaff), "Role")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.employees.Delete(cmd.Context(), args[0])
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Toggle an employee's active status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.employees.ToggleStatus(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, create, del, toggle)
	return cmd
}

func customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers",
	}

	var filter domain.ListFilter
	var view string
	var membership string
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var loadErr error
			resolved := state.CustomerAll
			switch view {
			case "mine":
				resolved = state.CustomerMine
				loadErr = app.customers.LoadMine(cmd.Context(), filter)
			case "membership":
				resolved = state.CustomerMembership
				loadErr = app.customers.LoadByMembership(cmd.Context(), membership, filter)
			case "search":
				resolved = state.CustomerSearch
				loadErr = app.customers.Search(cmd.Context(), filter.Search, filter)
			default:
				loadErr = app.customers.Load(cmd.Context(), filter)
			}
			if loadErr != nil {
				return loadErr
			}
			for _, c := range app.customers.View(resolved) {
				fmt.Printf("%-24s  %-28s  %-14s  member=%s\n", c.Name, c.Email, c.Phone, c.MembershipID)
			}
			return nil
		},
	}
	listFlags(list, &filter)
	list.Flags().StringVar(&view, "view", "all", "View: all, mine, membership, search")
	list.Flags().StringVar(&membership, "membership", "", "Membership id for the membership view")

	var in api.CustomerInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.customers.Create(cmd.Context(), in)
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "Customer name")
	create.Flags().StringVar(&in.Email, "email", "", "Email")
	create.Flags().StringVar(&in.Phone, "phone", "", "Phone")
	create.Flags().StringVar(&in.MembershipID, "membership", "", "Membership id")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.customers.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
	}

	var filter domain.ListFilter
	var mine bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if mine {
				if err := app.expenses.LoadMine(cmd.Context(), filter); err != nil {
					return err
				}
				for _, e := range app.expenses.Mine() {
					fmt.Printf("%-28s  %10.2f  %-10s  %s\n", e.Title, e.Amount, e.PaymentMethod, e.Date.Format("2006-01-02"))
				}
				return nil
			}
			if err := app.expenses.Load(cmd.Context(), filter); err != nil {
				return err
			}
			for _, e := range app.expenses.All() {
				editable := ""
				if app.expenses.CanModify(e) {
					editable = " (editable)"
				}
				fmt.Printf("%-28s  %10.2f  %-10s  %s%s\n", e.Title, e.Amount, e.PaymentMethod, e.Date.Format("2006-01-02"), editable)
			}
			return nil
		},
	}
	listFlags(list, &filter)
	list.Flags().BoolVar(&mine, "mine", false, "Only my expenses")

	var in api.ExpenseInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.expenses.Create(cmd.Context(), in)
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "Title")
	add.Flags().Float64Var(&in.Amount, "amount", 0, "Amount")
	add.Flags().StringVar(&in.Description, "description", "", "Description")
	add.Flags().StringVar(&in.PaymentMethod, "method", "cash", "Payment method")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.expenses.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}
