package main

import (
	"github.com/spf13/cobra"

	archivo "github.com/archivo/archivo/sdk/go"
)

func newLibraryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"biblioteca"},
		Short:   "Manage dimensional libraries",
	}

	var name, plane, description, architecture string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a dimensional library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.client().CreateLibrary(cmd.Context(), archivo.LibraryInput{
				Name:         name,
				Plane:        plane,
				Description:  optional(cmd, "description", description),
				Architecture: optional(cmd, "architecture", architecture),
			})
			if err != nil {
				return err
			}
			return c.print(lib)
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "library name")
	createCmd.Flags().StringVar(&plane, "plane", "", "plane of existence")
	createCmd.Flags().StringVar(&description, "description", "", "description")
	createCmd.Flags().StringVar(&architecture, "architecture", "", "dominant architecture")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("plane")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			libs, err := c.client().ListLibraries(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(libs)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.client().GetLibrary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(lib)
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd)
	return cmd
}
