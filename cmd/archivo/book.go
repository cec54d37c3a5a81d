package main

import (
	"github.com/spf13/cobra"

	archivo "github.com/archivo/archivo/sdk/go"
)

func newBookCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "book",
		Aliases: []string{"libro"},
		Short:   "Manage lost books",
	}

	var title, library, author, cover string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a lost book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := c.client().CreateBook(cmd.Context(), archivo.BookInput{
				Title:            title,
				Author:           optional(cmd, "author", author),
				CoverDescription: optional(cmd, "cover", cover),
				OriginLibraryID:  library,
			})
			if err != nil {
				return err
			}
			return c.print(book)
		},
	}
	createCmd.Flags().StringVar(&title, "title", "", "book title")
	createCmd.Flags().StringVar(&library, "library", "", "origin library id")
	createCmd.Flags().StringVar(&author, "author", "", "apparent author")
	createCmd.Flags().StringVar(&cover, "cover", "", "cover description")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("library")

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally from one origin library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := c.client().ListBooks(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return c.print(books)
		},
	}
	listCmd.Flags().StringVar(&filter, "library", "", "only books from this origin library")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := c.client().GetBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(book)
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd)
	return cmd
}
