package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pizzabot/pkg/render"
	"github.com/goliatone/go-pizzabot/pkg/store"
)

func newShowCmd(_ *rootFlags) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <order-file>",
		Short: "Validate a saved order and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := store.NewFile(args[0])
			rec, err := file.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if raw {
				data, err := store.Encode(rec, file.Format())
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			renderer, err := render.NewOrderRenderer(nil)
			if err != nil {
				return err
			}
			summary, err := renderer.Summary(rec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, summary)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the normalized file content instead of the summary")
	return cmd
}
