package fedcompute

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fedcompute-project/fedcompute/pkg/catalog"
	"github.com/fedcompute-project/fedcompute/pkg/util/templates"
)

var projectsExample = templates.Examples(`
		# List every computation project in the federation
		fedcompute projects list

		# Propose a new broadcast project
		fedcompute projects propose --name logit-trial \
			--schema patients-v2 --type logistic-regression \
			--formula "outcome ~ age + treatment"

		# Trigger computation-type discovery on the registry
		fedcompute projects register-types`)

var (
	proposeOpts       catalog.ProposeRequest
	projectNameFilter string
)

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsProposeCmd)
	projectsCmd.AddCommand(projectsRegisterTypesCmd)

	projectsListCmd.Flags().StringVar(&projectNameFilter, "name", "", `filter by project name.`)

	projectsProposeCmd.Flags().StringVar(&proposeOpts.Name, "name", "", `project name, unique within the registry.`)
	projectsProposeCmd.Flags().StringVar(&proposeOpts.Description, "description", "", `human-readable description.`)
	projectsProposeCmd.Flags().StringVar(&proposeOpts.SchemaName, "schema", "", `model schema the project computes over.`)
	projectsProposeCmd.Flags().StringVar(&proposeOpts.ComputationType, "type", "", `computation type tag.`)
	projectsProposeCmd.Flags().StringVar(&proposeOpts.Formula, "formula", "", `declarative computation formula.`)
}

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Short:   "Manage the shared computation project catalog",
	Example: projectsExample,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List computation projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		list, err := catalog.NewProjects(api.centralSession()).List(cmd.Context(), projectNameFilter)
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(list))
		for _, p := range list {
			rows = append(rows, table.Row{
				p.Name, p.Description, p.ComputationType, p.Formula, p.Enabled,
			})
		}
		return outputList(
			table.Row{"Name", "Description", "Type", "Formula", "Enabled"},
			rows, list)
	},
}

var projectsProposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Propose a computation project to the federation",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		return catalog.NewProjects(api.centralSession()).Propose(cmd.Context(), proposeOpts)
	},
}

var projectsRegisterTypesCmd = &cobra.Command{
	Use:   "register-types",
	Short: "Trigger computation-type discovery on the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		return catalog.NewProjects(api.centralSession()).RegisterComputationTypes(cmd.Context())
	},
}
