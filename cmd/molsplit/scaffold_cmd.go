package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/molsplit/scaffold"
)

func newScaffoldCmd(a *app) *cobra.Command {
	var (
		chirality bool
		largest   bool
	)
	cmd := &cobra.Command{
		Use:   "scaffold <smiles>...",
		Short: "Print the scaffold key of each SMILES (empty for acyclic molecules)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []scaffold.Option{scaffold.WithChirality(chirality)}
			if largest {
				opts = append(opts, scaffold.WithLargestFragment())
			}
			out := cmd.OutOrStdout()
			for _, smi := range args {
				key, err := scaffold.MurckoKey(smi, opts...)
				if err != nil {
					return err
				}
				a.log.Debug("scaffold key", zap.String("smiles", smi), zap.String("key", key))
				fmt.Fprintf(out, "%s\t%s\n", smi, key)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&chirality, "chirality", false, "include chirality in keys")
	cmd.Flags().BoolVar(&largest, "largest-fragment", false, "drop all but the largest fragment first")

	return cmd
}
