package cmd

import (
	"context"
	"fmt"

	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/spf13/cobra"
)

var cycleTokenID int

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Advance a token to its actor's next variant",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := mustBuildServices(config.GetConfig(), false)
		defer svc.close()

		result, err := svc.cycler.Cycle(context.Background(), cycleTokenID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Skipped {
			_, _ = fmt.Fprintf(out, "Actor %d has no variants, nothing to do\n", result.ActorID)
			return nil
		}

		_, _ = fmt.Fprintf(out, "Token %d: variant %d -> %d, image %s, size %s\n",
			result.TokenID, result.PreviousIndex, result.Index, result.Variant.ImagePath, result.Variant.Size)
		if !result.IndexPersisted {
			_, _ = fmt.Fprintln(out, "Warning: the new index was not saved")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.Flags().IntVar(&cycleTokenID, "token", 0, "token id to cycle")
	_ = cycleCmd.MarkFlagRequired("token")
}
