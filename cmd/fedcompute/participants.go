package fedcompute

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fedcompute-project/fedcompute/pkg/participants"
	"github.com/fedcompute-project/fedcompute/pkg/util/templates"
)

var participantsLong = templates.LongDesc(`
		List the federation's trusted participants, or register the central
		registry as a trusted peer of this participant.
`)

var participantsExample = templates.Examples(`
		# List participants known to the central registry
		fedcompute participants list

		# Register the central registry using this participant's client identity
		fedcompute participants register --name central \
			--client-id 11111111-2222-3333-4444-555555555555 \
			--client-secret <secret> --tenant-id contoso \
			--url https://central.example.com`)

var registerOpts participants.RegisterRequest

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	participantsCmd.AddCommand(participantsListCmd)
	participantsCmd.AddCommand(participantsRegisterCmd)

	participantsRegisterCmd.Flags().StringVar(&registerOpts.Name, "name", "", `display name of the peer being registered.`)
	participantsRegisterCmd.Flags().StringVar(&registerOpts.ClientID, "client-id", "", `OAuth client id of the peer.`)
	participantsRegisterCmd.Flags().StringVar(&registerOpts.ClientSecret, "client-secret", "", `OAuth client secret of the peer.`)
	participantsRegisterCmd.Flags().StringVar(&registerOpts.TenantID, "tenant-id", "", `tenant the peer authenticates under.`)
	participantsRegisterCmd.Flags().StringVar(&registerOpts.URL, "url", "", `base URL of the peer's API.`)
}

var participantsCmd = &cobra.Command{
	Use:     "participants",
	Short:   "Manage trusted participants",
	Long:    participantsLong,
	Example: participantsExample,
}

var participantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List participants",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		svc := participants.NewService(api.centralSession(), api.localSession())
		list, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(list))
		for _, p := range list {
			rows = append(rows, table.Row{
				p.ID, p.Name, p.TenantID, p.URL, p.Enabled, p.ValidFrom, p.ValidTo,
			})
		}
		return outputList(
			table.Row{"ID", "Name", "Tenant", "URL", "Enabled", "Valid From", "Valid To"},
			rows, list)
	},
}

var participantsRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the central registry as a trusted peer",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIContext()
		if err != nil {
			return err
		}
		defer api.close()

		svc := participants.NewService(api.centralSession(), api.localSession())
		return svc.Register(cmd.Context(), registerOpts)
	},
}
