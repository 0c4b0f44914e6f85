package commands

import (
	"github.com/spf13/cobra"

	"dvotenative/internal/boundary"
)

func digestCmd() *cobra.Command {
	var isHex bool
	cmd := &cobra.Command{
		Use:   "digest [claim|-]",
		Short: "Poseidon digest of a claim",
		Long:  "Poseidon digest of a claim. The claim is UTF-8 text, or hex bytes with --hex; without an argument it is read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := readArgOrStdin(cmd.InOrStdin(), args, 0)
			if err != nil {
				return err
			}
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				if isHex {
					return b.DigestHexClaim(claim)
				}
				return b.DigestStringClaim(claim)
			})
		},
	}
	cmd.Flags().BoolVar(&isHex, "hex", false, "the claim is hex encoded")
	return cmd
}
