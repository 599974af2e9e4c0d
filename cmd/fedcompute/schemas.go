package fedcompute

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fedcompute-project/fedcompute/pkg/catalog"
	"github.com/fedcompute-project/fedcompute/pkg/util/templates"
)

var schemasExample = templates.Examples(`
		# List registered model schemas
		fedcompute schemas list

		# Register a schema from a JSON document
		fedcompute schemas register --name patients-v2 --file ./patients.json`)

var (
	schemaNameFilter string
	schemaName       string
	schemaDesc       string
	schemaFile       string
)

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	schemasCmd.AddCommand(schemasListCmd)
	schemasCmd.AddCommand(schemasRegisterCmd)

	schemasListCmd.Flags().StringVar(&schemaNameFilter, "name", "", `filter by schema name.`)

	schemasRegisterCmd.Flags().StringVar(&schemaName, "name", "", `schema name, unique within the registry.`)
	schemasRegisterCmd.Flags().StringVar(&schemaDesc, "description", "", `description; defaults to the schema name.`)
	schemasRegisterCmd.Flags().StringVar(&schemaFile, "file", "", `path to the JSON schema document.`)
}

var schemasCmd = &cobra.Command{
	Use:     "schemas",
	Short:   "Manage the shared model schema catalog",
	Example: schemasExample,
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List model schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		list, err := catalog.NewSchemas(api.centralSession()).List(cmd.Context(), schemaNameFilter)
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(list))
		for _, s := range list {
			rows = append(rows, table.Row{s.Name, s.Description, s.Version})
		}
		return outputList(table.Row{"Name", "Description", "Version"}, rows, list)
	},
}

var schemasRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a model schema with the federation",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		schemaJSON, err := os.ReadFile(schemaFile)
		if err != nil {
			return err
		}
		return catalog.NewSchemas(api.centralSession()).Register(cmd.Context(), schemaName, schemaDesc, string(schemaJSON))
	},
}
