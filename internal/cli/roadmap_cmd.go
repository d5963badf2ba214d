package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/repository"
)

func newRoadmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roadmap",
		Aliases: []string{"roadmaps"},
		Short:   "Browse stored roadmaps",
	}
	cmd.AddCommand(
		newRoadmapListCmd(app),
		newRoadmapShowCmd(app),
	)
	return cmd
}

func newRoadmapListCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an account's roadmaps, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			curricula, err := app.Roadmaps.ListByOwner(ctx, ownerID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoadmapList(curricula, app.now()))
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Account ID, email, or unique ID prefix")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newRoadmapShowCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a roadmap",
		Long:  "Show a roadmap by full ID. With --owner, a unique ID prefix from `roadmap list` also works.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveRoadmap(cmd.Context(), app, args[0], owner)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoadmap(c))
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Account to search for ID prefixes")
	return cmd
}

func resolveRoadmap(ctx context.Context, app *App, input, owner string) (*domain.Curriculum, error) {
	c, err := app.Roadmaps.GetByID(ctx, input)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) || owner == "" {
		return nil, err
	}

	ownerID, err := resolveOwnerID(ctx, app, owner)
	if err != nil {
		return nil, err
	}
	curricula, err := app.Roadmaps.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Curriculum
	for _, c := range curricula {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("roadmap not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("roadmap ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
