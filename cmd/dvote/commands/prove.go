package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"dvotenative/internal/boundary"
)

func proveCmd() *cobra.Command {
	var (
		provingKey string
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "prove [witness.json|-]",
		Short: "Generate a Groth16 proof from a full circom witness",
		Long:  `Generate a Groth16 proof from a full circom witness.

The input is the complete witness vector computed for the circuit, as a JSON
array of decimal field elements starting with 1, or an object with a
"witness" array. Named input signals such as {"a": "3"} are not accepted:
run the circuit's witness calculator first and pass its output here.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readFileArgOrStdin(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				return b.GenerateZkProof(ctx, provingKey, inputs)
			})
		},
	}
	cmd.Flags().StringVar(&provingKey, "proving-key", "", "snarkjs proving key (JSON)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up if the proof has not started within this time")
	_ = cmd.MarkFlagRequired("proving-key")
	return cmd
}
