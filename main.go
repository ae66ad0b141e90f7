package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liferay-faces/archetype-portal/cmd"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "portal",
		Short:   "Liferay Faces archetype portal",
		Long:    `Lists the latest Liferay Faces archetypes per suite and major version, with their Maven and Gradle build snippets.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("🚀 Archetype portal v" + version)
			fmt.Println("Run 'portal --help' for available commands")
		},
	}

	rootCmd.AddCommand(cmd.ServeCmd(version))
	rootCmd.AddCommand(cmd.ListCmd())
	rootCmd.AddCommand(cmd.ShowCmd())
	rootCmd.AddCommand(cmd.ConfigCmd())
	rootCmd.AddCommand(cmd.OpenAPICmd(version))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
