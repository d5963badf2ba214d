package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/waypoint/internal/cli/formatter"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts that own roadmaps",
	}
	cmd.AddCommand(
		newAccountAddCmd(app),
		newAccountListCmd(app),
	)
	return cmd
}

func newAccountAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Accounts.Create(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s %s\n", formatter.Bold(a.Name), formatter.Dim(a.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAccountListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := app.Accounts.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAccountList(accounts, app.now()))
			return nil
		},
	}
}

// resolveOwnerID accepts a full account ID, an email, or a unique ID prefix.
// Blank and unknown input are returned as given for the roadmap service to
// reject.
func resolveOwnerID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	accounts, err := app.Accounts.List(ctx)
	if err != nil {
		return "", err
	}

	for _, a := range accounts {
		if a.ID == input || strings.EqualFold(a.Email, input) {
			return a.ID, nil
		}
	}

	var matches []string
	for _, a := range accounts {
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}
	switch len(matches) {
	case 0:
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("account ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
