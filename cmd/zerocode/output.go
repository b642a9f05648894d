package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/gdai/zerocode/client"
	"github.com/gdai/zerocode/config"
	"github.com/gdai/zerocode/datefmt"
	"github.com/spf13/cobra"
)

// BusinessError is a response whose envelope code is not zero.
type BusinessError struct {
	Op      string
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: backend returned code %d: %s", e.Op, e.Code, e.Message)
}

func businessError(op string, code int, msg string) error {
	return &BusinessError{Op: op, Code: code, Message: msg}
}

// emit prints resp raw in --json mode, otherwise through human. A non-zero
// envelope code fails the command in both modes.
func emit[T any](cmd *cobra.Command, o *rootOptions, op string, resp *client.BaseResponse[T], human func(w io.Writer, data T)) error {
	if o.json {
		if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	}
	if !resp.OK() {
		return businessError(op, resp.Code, resp.Message)
	}
	if !o.json {
		human(cmd.OutOrStdout(), resp.Data)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printApps(w io.Writer, page client.Page[client.AppVO]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tOWNER\tDEPLOY KEY\tCREATED")
	for _, a := range page.Records {
		owner := "-"
		if a.User != nil {
			owner = a.User.UserName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, dash(a.AppName), dash(a.CodeGenType), dash(owner), dash(a.DeployKey),
			datefmt.FormatDateTime(a.CreateTime))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "page %d/%d, %d total\n", page.PageNumber, page.TotalPage, page.TotalRow)
}

// appVOPrinter renders one app; a deployed app also gets its public URL.
func appVOPrinter(cfg *config.Config) func(io.Writer, client.AppVO) {
	return func(w io.Writer, a client.AppVO) { printAppVO(w, a, cfg) }
}

func printAppVO(w io.Writer, a client.AppVO, cfg *config.Config) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", a.ID)
	fmt.Fprintf(tw, "Name\t%s\n", dash(a.AppName))
	fmt.Fprintf(tw, "Type\t%s\n", codeGenLabel(a.CodeGenType))
	fmt.Fprintf(tw, "Prompt\t%s\n", dash(a.InitPrompt))
	fmt.Fprintf(tw, "Deploy key\t%s\n", dash(a.DeployKey))
	if a.DeployKey != "" && cfg != nil {
		fmt.Fprintf(tw, "URL\t%s\n", cfg.DeployedURL(a.DeployKey))
	}
	fmt.Fprintf(tw, "Deployed\t%s\n", datefmt.FormatDateTime(a.DeployedTime))
	fmt.Fprintf(tw, "Priority\t%s\n", priority(a.Priority))
	if a.User != nil {
		fmt.Fprintf(tw, "Owner\t%s (%s)\n", dash(a.User.UserName), a.User.ID)
	}
	fmt.Fprintf(tw, "Created\t%s\n", datefmt.FormatDateTime(a.CreateTime))
	_ = tw.Flush()
}

func printApp(w io.Writer, a client.App) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", a.ID)
	fmt.Fprintf(tw, "Name\t%s\n", dash(a.AppName))
	fmt.Fprintf(tw, "Type\t%s\n", codeGenLabel(a.CodeGenType))
	fmt.Fprintf(tw, "Cover\t%s\n", dash(a.Cover))
	fmt.Fprintf(tw, "Prompt\t%s\n", dash(a.InitPrompt))
	fmt.Fprintf(tw, "Deploy key\t%s\n", dash(a.DeployKey))
	fmt.Fprintf(tw, "Deployed\t%s\n", datefmt.FormatDateTime(a.DeployedTime))
	fmt.Fprintf(tw, "Priority\t%s\n", priority(a.Priority))
	fmt.Fprintf(tw, "Owner id\t%s\n", a.UserID)
	fmt.Fprintf(tw, "Created\t%s\n", datefmt.FormatDateTime(a.CreateTime))
	fmt.Fprintf(tw, "Edited\t%s\n", datefmt.FormatDateTime(a.EditTime))
	_ = tw.Flush()
}

func printUser(w io.Writer, u client.LoginUserVO) {
	fmt.Fprintf(w, "%s %s (%s) role=%s since %s\n",
		u.ID, dash(u.UserAccount), dash(u.UserName), dash(u.UserRole), datefmt.FormatDate(u.CreateTime))
}

func codeGenLabel(v string) string {
	if t, ok := client.CodeGenTypeByValue(v); ok {
		return fmt.Sprintf("%s (%s)", v, t.Text())
	}
	return dash(v)
}

func priority(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
