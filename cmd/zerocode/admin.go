package main

import (
	"fmt"
	"io"

	"github.com/gdai/zerocode/client"
	"github.com/spf13/cobra"
)

func newAdminCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage every application (admin accounts only)",
	}
	cmd.AddCommand(newAdminGetCmd(o))
	cmd.AddCommand(newAdminListCmd(o))
	cmd.AddCommand(newAdminUpdateCmd(o))
	cmd.AddCommand(newAdminDeleteCmd(o))
	return cmd
}

func newAdminGetCmd(o *rootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the full record of any application",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.AdminGetAppByID(cmd.Context(), client.AdminGetAppByIDParams{ID: client.Long(id)})
			if err != nil {
				return fmt.Errorf("admin get app: %w", err)
			}
			return emit(cmd, o, "admin get app", resp, printApp)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAdminListCmd(o *rootOptions) *cobra.Command {
	var pageNum, pageSize int
	var q client.AppAdminQueryRequest
	var userID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			q.UserID = client.Long(userID)
			resp, err := c.AdminListAppByPage(cmd.Context(), client.AdminListAppByPageParams{
				PageNum:              pageNum,
				PageSize:             pageSize,
				AppAdminQueryRequest: q,
			})
			if err != nil {
				return fmt.Errorf("admin list apps: %w", err)
			}
			return emit(cmd, o, "admin list apps", resp, printApps)
		},
	}

	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "size", 10, "Page size")
	cmd.Flags().StringVar(&q.AppName, "name", "", "Filter by application name")
	cmd.Flags().StringVar(&q.CodeGenType, "type", "", "Filter by generation mode")
	cmd.Flags().StringVar(&q.DeployKey, "deploy-key", "", "Filter by deploy key")
	cmd.Flags().Int64Var(&userID, "user-id", 0, "Filter by owner")
	cmd.Flags().StringVar(&q.SortField, "sort-field", "", "Sort field")
	cmd.Flags().StringVar(&q.SortOrder, "sort-order", "", "Sort order: ascend or descend")
	return cmd
}

func newAdminUpdateCmd(o *rootOptions) *cobra.Command {
	var id int64
	var name, cover string
	var prio int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the name, cover or priority of any application",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			req := client.AppAdminUpdateRequest{ID: client.Long(id), AppName: name, Cover: cover}
			if cmd.Flags().Changed("priority") {
				req.Priority = &prio
			}
			resp, err := c.AdminUpdateApp(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("admin update app: %w", err)
			}
			return emit(cmd, o, "admin update app", resp, func(w io.Writer, _ bool) {
				fmt.Fprintf(w, "App updated: %d\n", id)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&cover, "cover", "", "Cover image URL")
	cmd.Flags().IntVar(&prio, "priority", 0, "Priority; above 0 marks the app as featured")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAdminDeleteCmd(o *rootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete any application",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.AdminDeleteApp(cmd.Context(), client.DeleteRequest{ID: client.Long(id)})
			if err != nil {
				return fmt.Errorf("admin delete app: %w", err)
			}
			return emit(cmd, o, "admin delete app", resp, func(w io.Writer, _ bool) {
				fmt.Fprintf(w, "App deleted: %d\n", id)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
