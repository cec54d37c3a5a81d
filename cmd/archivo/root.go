package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	archivo "github.com/archivo/archivo/sdk/go"
)

const defaultServer = "http://localhost:8080"

// cli carries the state shared by every subcommand
type cli struct {
	out    io.Writer
	server string
}

func (c *cli) client() *archivo.Client {
	return archivo.NewClient(archivo.Config{BaseURL: c.server})
}

// print writes v as indented JSON
func (c *cli) print(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	server := os.Getenv("ARCHIVO_SERVER")
	if server == "" {
		server = defaultServer
	}

	rootCmd := &cobra.Command{
		Use:           "archivo",
		Short:         "Client for the Archivo of dimensional libraries and lost books",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&c.server, "server", server, "Archivo server URL (env ARCHIVO_SERVER)")

	rootCmd.AddCommand(newLibraryCmd(c))
	rootCmd.AddCommand(newBookCmd(c))
	rootCmd.AddCommand(newEventsCmd(c))

	return rootCmd
}

// optional returns nil for flags the user did not set
func optional(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
