package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liferay-faces/archetype-portal/openapi"
)

func OpenAPICmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate the OpenAPI document of the portal API",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			asYAML, _ := cmd.Flags().GetBool("yaml")

			api := openapi.PortalAPI(version)

			if output != "" {
				if err := openapi.GenerateSpecToFile(api, output); err != nil {
					return err
				}
				fmt.Printf("✅ OpenAPI spec written to %s (%d operations)\n", output, openapi.GetRouteCount(api))
				return nil
			}

			var (
				spec []byte
				err  error
			)
			if asYAML {
				spec, err = openapi.GenerateSpecYAML(api)
			} else {
				spec, err = openapi.GenerateSpec(api)
			}
			if err != nil {
				return fmt.Errorf("failed to generate OpenAPI spec: %w", err)
			}

			_, err = os.Stdout.Write(spec)
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write to file (.json or .yaml)")
	cmd.Flags().Bool("yaml", false, "Print YAML instead of JSON")

	return cmd
}
