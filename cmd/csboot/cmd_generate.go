package main

import (
	"github.com/spf13/cobra"

	"csboot/internal/generator"
)

func newModelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model <file>",
		Short: "Generate the TypeScript client model for each class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.OutOrStdout(), args[0], generator.TargetModel)
		},
	}
}

func newCrudCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "crud <file>",
		Short: "Generate the service, service interface and controller for each class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.OutOrStdout(), args[0], generator.CRUDTargets...)
		},
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var targetNames []string

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate the selected targets for each class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := generator.ParseTargets(targetNames)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				targets = generator.AllTargets
			}
			return a.generate(cmd.OutOrStdout(), args[0], targets...)
		},
	}

	cmd.Flags().StringSliceVar(&targetNames, "targets", nil, "targets to generate: model, service, interface, controller, go, crud (default all)")

	return cmd
}
