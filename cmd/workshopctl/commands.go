package main

import (
	"context"
	"fmt"
	"strings"

	"workshop-service/internal/app"
	"workshop-service/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newSyncCommand(opts *RootOptions) *cobra.Command {
	var publish bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile stored job cards with the Drive folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Scheduler.Run(ctx)
				if err != nil {
					return err
				}
				if publish {
					if _, err := a.Publisher.PublishMasterGrid(ctx); err != nil {
						return err
					}
					if _, err := a.Publisher.PublishProjects(ctx); err != nil {
						return err
					}
				}
				text := fmt.Sprintf("discovered %d, updated %d, failed %d, inactivated %d",
					report.Discovered, len(report.Updated), len(report.Failed), len(report.Inactivated))
				for _, f := range report.Failed {
					text += fmt.Sprintf("\n  failed %s (%s): %s", f.DriveID, f.Project, f.Error)
				}
				for _, f := range report.FailedFolders {
					text += fmt.Sprintf("\n  folder %s (%s) not listed: %s", f.FolderID, f.Project, f.Error)
				}
				return writeResult(cmd.OutOrStdout(), opts, report, text)
			})
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "republish both sheets after the sync pass")
	return cmd
}

func newPublishGridCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "publish-grid",
		Short: "Rewrite the master sheet from the stored job cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				rows, err := a.Publisher.PublishMasterGrid(ctx)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), opts, map[string]int{"rows": rows},
					fmt.Sprintf("master sheet: %d job cards", rows))
			})
		},
	}
}

func newPublishProjectsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "publish-projects",
		Short: "Rewrite the projects sheet with per-project progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				rows, err := a.Publisher.PublishProjects(ctx)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), opts, map[string]int{"projects": rows},
					fmt.Sprintf("projects sheet: %d projects", rows))
			})
		},
	}
}

type accessReport struct {
	Database  string   `json:"database"`
	Projects  []string `json:"projects"`
	SheetTabs []string `json:"sheetTabs"`
}

func newCheckAccessCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-access",
		Short: "Verify database, Drive folder and master spreadsheet access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				report := accessReport{Database: "up"}
				if err := a.JobCards.Ping(ctx); err != nil {
					return fmt.Errorf("database: %w", err)
				}

				projects, err := a.Documents.ListFolder(ctx, a.Config.ProjectsFolderID, entity.FolderFilter{})
				if err != nil {
					return fmt.Errorf("projects folder: %w", err)
				}
				for _, p := range projects {
					report.Projects = append(report.Projects, p.Name)
				}

				report.SheetTabs, err = a.Sheets.SheetTitles(ctx)
				if err != nil {
					return fmt.Errorf("master spreadsheet: %w", err)
				}

				text := fmt.Sprintf("database: %s\nprojects: %s\nsheet tabs: %s",
					report.Database,
					strings.Join(report.Projects, ", "),
					strings.Join(report.SheetTabs, ", "))
				return writeResult(cmd.OutOrStdout(), opts, report, text)
			})
		},
	}
}
