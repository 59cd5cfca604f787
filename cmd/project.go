package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-tagstore/pkg/project"
	"github.com/mattsolo1/grove-tagstore/pkg/service"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
)

func NewProjectCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect and create framework projects",
	}

	cmd.AddCommand(newProjectShowCmd(svc))
	cmd.AddCommand(newProjectInitCmd(svc))

	return cmd
}

func newProjectShowCmd(svc **service.Service) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the project metadata and node counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			p, ok, err := s.LoadProject()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no project at %s; create one with 'tagstore project init'", s.Config.ProjectKey)
			}

			if format != "" {
				f, err := transport.ParseFormat(format)
				if err != nil {
					return err
				}
				return project.Write(cmd.OutOrStdout(), p, s.Schema(), f)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", p.MetaName)
			fmt.Fprintf(out, "Author:  %s\n", p.MetaAuthor)
			fmt.Fprintf(out, "Version: %s\n", p.Version)
			for _, b := range s.Schema().Bindings() {
				fmt.Fprintf(out, "%s: %d\n", b.Field, len(p.Nodes(b.Field)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Print the whole document (json, yaml)")

	return cmd
}

func newProjectInitCmd(svc **service.Service) *cobra.Command {
	var name, author, version string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			p, err := s.InitProject(name, author, version)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q (version %s) at %s\n", p.MetaName, p.Version, s.Config.ProjectKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&author, "author", "", "Project author")
	cmd.Flags().StringVar(&version, "version", "", "Project version (default 1.0)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
