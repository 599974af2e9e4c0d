package fedcompute

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fedcompute-project/fedcompute/pkg/catalog"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/util/templates"
)

var enrollExample = templates.Examples(`
		# Show a project's enrolled participants
		fedcompute enroll list --project logit-trial

		# Enroll a participant in a project
		fedcompute enroll apply --project logit-trial --participant site-a

		# Withdraw a participant from a project
		fedcompute enroll apply --project logit-trial --participant site-a --operation Withdraw`)

var (
	enrollProject     string
	enrollParticipant string
	enrollOperation   string
)

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	enrollCmd.AddCommand(enrollListCmd)
	enrollCmd.AddCommand(enrollApplyCmd)

	enrollListCmd.Flags().StringVar(&enrollProject, "project", "", `project to inspect.`)

	enrollApplyCmd.Flags().StringVar(&enrollProject, "project", "", `project to enroll in.`)
	enrollApplyCmd.Flags().StringVar(&enrollParticipant, "participant", "", `participant to enroll.`)
	enrollApplyCmd.Flags().StringVar(&enrollOperation, "operation", model.EnrollmentOperationEnroll,
		`enrollment operation tag, forwarded verbatim to the registry.`)
}

var enrollCmd = &cobra.Command{
	Use:     "enroll",
	Short:   "Manage project enrollment",
	Example: enrollExample,
}

var enrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's participants",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		list, err := catalog.NewEnrollment(api.centralSession()).ProjectParticipants(cmd.Context(), enrollProject)
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(list))
		for _, e := range list {
			rows = append(rows, table.Row{e.ProjectName, e.Participant, e.Enabled})
		}
		return outputList(table.Row{"Project", "Participant", "Enabled"}, rows, list)
	},
}

var enrollApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an enrollment operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		return catalog.NewEnrollment(api.centralSession()).
			Enroll(cmd.Context(), enrollProject, enrollParticipant, enrollOperation)
	},
}
