package fedcompute

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	subjectID    string
	outputFormat string
)

func init() { //nolint:gochecknoinits // Using init in cobra command is idomatic
	RootCmd.AddCommand(participantsCmd)
	RootCmd.AddCommand(projectsCmd)
	RootCmd.AddCommand(schemasCmd)
	RootCmd.AddCommand(enrollCmd)
	RootCmd.AddCommand(jobsCmd)
	RootCmd.AddCommand(datasourcesCmd)

	RootCmd.PersistentFlags().StringVar(
		&configPath, "config", ".",
		`Directory holding the fedcompute.yaml configuration file.`,
	)
	RootCmd.PersistentFlags().StringVar(
		&subjectID, "subject", "",
		`Subject identity acting on this session; tokens are cached per (subject, resource).`,
	)
	RootCmd.PersistentFlags().StringVar(
		&outputFormat, "output", "text",
		`The output format for listings (json or text)`,
	)
}

var RootCmd = &cobra.Command{
	Use:   "fedcompute",
	Short: "Federated computation coordination",
	Long:  `Coordinate computation projects, schemas, participants and jobs across a federation.`,
}

func Execute(version string) {
	RootCmd.Version = version

	setVersion()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setVersion() {
	template := fmt.Sprintf("Fedcompute Version: %s\n", RootCmd.Version)
	RootCmd.SetVersionTemplate(template)
}
