package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newAppCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Create, generate, deploy and browse your applications",
	}
	cmd.AddCommand(newAppAddCmd(o))
	cmd.AddCommand(newAppUpdateCmd(o))
	cmd.AddCommand(newAppDeleteCmd(o))
	cmd.AddCommand(newAppGetCmd(o))
	cmd.AddCommand(newAppListCmd(o, false))
	cmd.AddCommand(newAppListCmd(o, true))
	cmd.AddCommand(newAppDeployCmd(o))
	cmd.AddCommand(newAppChatCmd(o))
	cmd.AddCommand(newAppPreviewURLCmd(o))
	return cmd
}

func newAppAddCmd(o *rootOptions) *cobra.Command {
	var name, prompt, codeGenType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an application from an initial prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.AddApp(cmd.Context(), client.AppAddRequest{
				AppName:     name,
				InitPrompt:  prompt,
				CodeGenType: codeGenType,
			})
			if err != nil {
				return fmt.Errorf("add app: %w", err)
			}
			return emit(cmd, o, "add app", resp, func(w io.Writer, id client.Long) {
				fmt.Fprintf(w, "App created: %s\n", id)
			})
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "Initial prompt (required)")
	cmd.Flags().StringVar(&name, "name", "", "Application name (optional)")
	cmd.Flags().StringVar(&codeGenType, "type", "", "Generation mode: html or multiFile (optional)")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newAppUpdateCmd(o *rootOptions) *cobra.Command {
	var id int64
	var name string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename one of your applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.UpdateApp(cmd.Context(), client.AppUpdateRequest{ID: client.Long(id), AppName: name})
			if err != nil {
				return fmt.Errorf("update app: %w", err)
			}
			return emit(cmd, o, "update app", resp, func(w io.Writer, _ bool) {
				fmt.Fprintf(w, "App updated: %d\n", id)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "New name (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAppDeleteCmd(o *rootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one of your applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.DeleteApp(cmd.Context(), client.DeleteRequest{ID: client.Long(id)})
			if err != nil {
				return fmt.Errorf("delete app: %w", err)
			}
			return emit(cmd, o, "delete app", resp, func(w io.Writer, _ bool) {
				fmt.Fprintf(w, "App deleted: %d\n", id)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAppGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the application the backend resolves for the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.GetAppVOByID(cmd.Context())
			if err != nil {
				return fmt.Errorf("get app: %w", err)
			}
			return emit(cmd, o, "get app", resp, appVOPrinter(cfg))
		},
	}
}

// newAppListCmd builds "list" (own apps) or "featured".
func newAppListCmd(o *rootOptions, featured bool) *cobra.Command {
	var pageNum, pageSize int
	var name, sortField, sortOrder string

	use, short, op := "list", "List your applications", "list apps"
	if featured {
		use, short, op = "featured", "List featured applications", "list featured apps"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			params := client.ListAppVOByPageParams{
				PageNum:  pageNum,
				PageSize: pageSize,
				AppQueryRequest: client.AppQueryRequest{
					PageRequest: client.PageRequest{SortField: sortField, SortOrder: sortOrder},
					AppName:     name,
				},
			}
			list := c.ListMyAppVOByPage
			if featured {
				list = c.ListFeaturedAppVOByPage
			}
			resp, err := list(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			return emit(cmd, o, op, resp, printApps)
		},
	}

	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "size", 10, "Page size (the backend caps it at 20)")
	cmd.Flags().StringVar(&name, "name", "", "Filter by application name")
	cmd.Flags().StringVar(&sortField, "sort-field", "", "Sort field")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "Sort order: ascend or descend")
	return cmd
}

func newAppDeployCmd(o *rootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy an application and print its public URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			resp, err := c.DeployApp(cmd.Context(), client.AppDeployRequest{AppID: client.Long(id)})
			if err != nil {
				return fmt.Errorf("deploy app: %w", err)
			}
			return emit(cmd, o, "deploy app", resp, func(w io.Writer, url string) {
				fmt.Fprintf(w, "Deployed: %s\n", url)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAppChatCmd(o *rootOptions) *cobra.Command {
	var id int64
	var message string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a message and stream the generated code to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			stream, err := c.ChatToGenCode(cmd.Context(), client.ChatToGenCodeParams{
				AppID:   client.Long(id),
				Message: message,
			})
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}
			defer func() { _ = stream.Close() }()

			out := cmd.OutOrStdout()
			n := 0
			for ev, err := range stream.Events() {
				if err != nil {
					return fmt.Errorf("chat: %w", err)
				}
				n++
				if o.json {
					if err := printJSON(out, ev); err != nil {
						return err
					}
					continue
				}
				if ev.Event == "" || ev.Event == "message" {
					fmt.Fprint(out, ev.Data)
				}
			}
			if !o.json {
				fmt.Fprintln(out)
			}
			log.Debug().Int64("app_id", id).Int("events", n).Dur("elapsed", time.Since(start)).Msg("chat completed")
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	cmd.Flags().StringVar(&message, "message", "", "Message to the generator (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newAppPreviewURLCmd(o *rootOptions) *cobra.Command {
	var id int64
	var codeGenType string

	cmd := &cobra.Command{
		Use:   "preview-url",
		Short: "Print where the generated code of an application is served",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := client.CodeGenTypeByValue(codeGenType); !ok {
				return fmt.Errorf("preview-url: unknown --type %q (want html or multiFile)", codeGenType)
			}
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.PreviewURL(codeGenType, id))
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Application ID (required)")
	cmd.Flags().StringVar(&codeGenType, "type", string(client.CodeGenHTML), "Generation mode: html or multiFile")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
