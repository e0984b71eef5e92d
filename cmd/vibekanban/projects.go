package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	appconfig "github.com/vibekanban/desktop/common/config"
)

var projectDescription string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, release, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		projects, err := c.GetProjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			pterm.Info.Println("No projects yet. Create one with: vibekanban projects create NAME")
			return nil
		}

		data := pterm.TableData{{"ID", "Name", "Description", "Created"}}
		for _, p := range projects {
			desc := ""
			if p.Description != nil {
				desc = *p.Description
			}
			data = append(data, []string{p.ID, p.Name, desc, p.CreatedAt})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, release, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		var desc *string
		if cmd.Flags().Changed("description") {
			desc = &projectDescription
		}
		p, err := c.CreateProject(cmd.Context(), args[0], desc)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Created project %s (%s)", p.Name, p.ID)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, release, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		msg, err := c.InitializeDeployment(cmd.Context())
		if err != nil {
			return err
		}
		pterm.Success.Println(msg)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		pterm.Printfln("%s %s", appconfig.BinaryName, appconfig.Version)
		if appconfig.CommitSHA != "" {
			pterm.Printfln("commit %s", appconfig.CommitSHA)
		}
		if appconfig.BuildTime != "" {
			pterm.Printfln("built %s", appconfig.BuildTime)
		}
	},
}

func init() {
	projectsCreateCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
	projectsCmd.AddCommand(projectsCreateCmd)
	rootCmd.AddCommand(projectsCmd, initCmd, versionCmd)
}
