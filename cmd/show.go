package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
)

func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [suite]",
		Short: "Show the build snippet and generate command of an archetype",
		Long:  "Pick an archetype and print its dependency block and mvn archetype:generate command",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	addConfigFlag(cmd)
	cmd.Flags().String("build", "", "Build tool (maven, gradle)")
	cmd.Flags().String("liferay", "", "Liferay version")
	cmd.Flags().String("jsf", "", "JSF version")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, newLogger(cfg.LogLevel))
	if err != nil {
		return err
	}

	svc.Init(context.Background(), cfg.Parameters)
	c := svc.Catalog()

	var suite string
	if len(args) > 0 {
		suite = args[0]
	} else if suite, err = promptSuite(c.Suites); err != nil {
		return err
	}

	build, _ := cmd.Flags().GetString("build")
	if build == "" {
		if build, err = promptBuild(c.Builds); err != nil {
			return err
		}
	}
	if !validBuild(c.Builds, build) {
		return fmt.Errorf("unknown build '%s'", build)
	}

	liferay, _ := cmd.Flags().GetString("liferay")
	jsf, _ := cmd.Flags().GetString("jsf")

	matches := c.Matching(catalog.Filter{Suite: suite, Liferay: liferay, JSF: jsf})
	switch len(matches) {
	case 0:
		return fmt.Errorf("no archetype found for suite '%s'", suite)
	case 1:
		renderArchetype(os.Stdout, matches[0], build)
		return nil
	}

	archetype, err := promptArchetype(matches)
	if err != nil {
		return err
	}
	renderArchetype(os.Stdout, archetype, build)
	return nil
}

func promptSuite(suites []catalog.Suite) (string, error) {
	if len(suites) == 0 {
		return "", fmt.Errorf("the catalog has no suites")
	}

	options := make([]string, len(suites))
	for i, s := range suites {
		options[i] = suiteLabel(s)
	}

	var index int
	prompt := &survey.Select{
		Message: "Choose a component suite:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return "", err
	}
	return suites[index].Key, nil
}

func promptBuild(builds []catalog.Build) (string, error) {
	options := make([]string, len(builds))
	for i, b := range builds {
		options[i] = b.Label
	}

	var index int
	prompt := &survey.Select{
		Message: "Choose a build tool:",
		Options: options,
		Default: options[0],
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return "", err
	}
	return builds[index].ID, nil
}

func promptArchetype(archetypes []catalog.Archetype) (catalog.Archetype, error) {
	options := make([]string, len(archetypes))
	for i, a := range archetypes {
		options[i] = archetypeLabel(a)
	}

	var index int
	prompt := &survey.Select{
		Message: "Choose a version:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return catalog.Archetype{}, err
	}
	return archetypes[index], nil
}

func archetypeLabel(a catalog.Archetype) string {
	return fmt.Sprintf("%s (Liferay %s, JSF %s)", a.Version, dash(a.LiferayVersion), dash(a.JSFVersion))
}

func validBuild(builds []catalog.Build, id string) bool {
	for _, b := range builds {
		if b.ID == id {
			return true
		}
	}
	return false
}

// renderArchetype prints the snippet for build followed by the generate command
func renderArchetype(w io.Writer, a catalog.Archetype, build string) {
	fmt.Fprintf(w, "📦 %s %s\n", a.Suite, archetypeLabel(a))

	if build == "gradle" {
		fmt.Fprintln(w, "\n📝 build.gradle")
		fmt.Fprint(w, a.GradleDependencies)
	} else {
		fmt.Fprintln(w, "\n📝 pom.xml")
		fmt.Fprint(w, a.MavenDependencies)
	}

	fmt.Fprintln(w, "\n🔧 Generate")
	fmt.Fprintln(w, strings.ReplaceAll(a.GenerateCommand, "<br />", "\n"))
}
