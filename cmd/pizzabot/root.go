package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	order := newOrderCmd(flags)

	root := &cobra.Command{
		Use:   "pizzabot",
		Short: "Take a pizza order in the terminal",
		Long:  "pizzabot walks a customer through a pizza order, lets them review and\ncorrect it, saves the confirmed order and reads the summary back.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		RunE:          order.RunE,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML config file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file (ignored when missing)")

	// order is the default command; its flags are available on the root too.
	root.Flags().AddFlagSet(order.Flags())

	root.AddCommand(order)
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newSchemaCmd())
	return root
}
