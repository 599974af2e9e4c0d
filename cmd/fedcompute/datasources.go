package fedcompute

import (
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fedcompute-project/fedcompute/pkg/datasource"
	"github.com/fedcompute-project/fedcompute/pkg/util/templates"
)

var datasourcesExample = templates.Examples(`
		# List this participant's cataloged data sources
		fedcompute datasources list

		# Stage a CSV file and catalog it under a schema
		fedcompute datasources create --name trial-cohort \
			--schema patients-v2 --file ./cohort.csv`)

var (
	dsName   string
	dsDesc   string
	dsType   string
	dsSchema string
	dsFile   string
)

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	datasourcesCmd.AddCommand(datasourcesListCmd)
	datasourcesCmd.AddCommand(datasourcesCreateCmd)

	datasourcesCreateCmd.Flags().StringVar(&dsName, "name", "", `data source name.`)
	datasourcesCreateCmd.Flags().StringVar(&dsDesc, "description", "", `description; defaults to the name.`)
	datasourcesCreateCmd.Flags().StringVar(&dsType, "type", "csv", `data source type; only csv is supported.`)
	datasourcesCreateCmd.Flags().StringVar(&dsSchema, "schema", "", `model schema the data conforms to.`)
	datasourcesCreateCmd.Flags().StringVar(&dsFile, "file", "", `path to the raw data file.`)
}

var datasourcesCmd = &cobra.Command{
	Use:     "datasources",
	Short:   "Manage this participant's data catalog",
	Example: datasourcesExample,
}

var datasourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged data sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		stager, err := api.stager(cmd.Context())
		if err != nil {
			return err
		}
		svc := datasource.NewService(api.localSession(), stager, api.cfg.Storage.DataDir)
		list, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(list))
		for _, d := range list {
			rows = append(rows, table.Row{d.Name, d.Description, d.Type, d.SchemaName, d.AccessInfo})
		}
		return outputList(
			table.Row{"Name", "Description", "Type", "Schema", "Access Info"},
			rows, list)
	},
}

var datasourcesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Stage and catalog a new data source",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		file, err := os.Open(dsFile)
		if err != nil {
			return err
		}
		defer file.Close()

		stager, err := api.stager(cmd.Context())
		if err != nil {
			return err
		}
		svc := datasource.NewService(api.localSession(), stager, api.cfg.Storage.DataDir)
		return svc.Create(cmd.Context(), datasource.CreateRequest{
			Name:        dsName,
			Description: dsDesc,
			Type:        dsType,
			SchemaName:  dsSchema,
			File:        file,
			FileName:    filepath.Base(dsFile),
		})
	},
}
