package fedcompute

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fedcompute-project/fedcompute/pkg/jobs"
	"github.com/fedcompute-project/fedcompute/pkg/util/templates"
)

var jobsExample = templates.Examples(`
		# List every job in the federation
		fedcompute jobs list

		# List one project's job history
		fedcompute jobs list --project logit-trial

		# Trigger a job with a fresh idempotency key
		fedcompute jobs trigger --project logit-trial

		# Re-trigger with an explicit key; the registry deduplicates on it
		fedcompute jobs trigger --project logit-trial --job-id 78faf114-6a45-457e-825c-40fd2fad768f`)

var (
	jobsProject string
	jobsJobID   string
)

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsTriggerCmd)

	jobsListCmd.Flags().StringVar(&jobsProject, "project", "", `project whose jobs to list; empty lists all projects.`)

	jobsTriggerCmd.Flags().StringVar(&jobsProject, "project", "", `project to run a job for.`)
	jobsTriggerCmd.Flags().StringVar(&jobsJobID, "job-id", "",
		`idempotency key for the job; an invalid or missing key is replaced with a fresh one.`)
}

var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Short:   "Trigger and inspect computation jobs",
	Example: jobsExample,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List computation jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		list, err := jobs.NewDispatcher(api.centralSession()).List(cmd.Context(), jobsProject)
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(list))
		for _, j := range list {
			rows = append(rows, table.Row{
				j.ID, j.ProjectName, j.Operation, j.Status, j.StartedAt, j.EndedAt,
			})
		}
		return outputList(
			table.Row{"Job ID", "Project", "Operation", "Status", "Started", "Ended"},
			rows, list)
	},
}

var jobsTriggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Trigger a computation job",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		jobID, err := jobs.NewDispatcher(api.centralSession()).Trigger(cmd.Context(), jobsProject, jobsJobID)
		if err != nil {
			return err
		}
		fmt.Println(jobID)
		return nil
	},
}
