package commands

import (
	"github.com/spf13/cobra"

	"dvotenative/internal/boundary"
)

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [message|-]",
		Short: "Encrypt a message under a passphrase (base64 output)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readArgOrStdin(cmd.InOrStdin(), args, 0)
			if err != nil {
				return err
			}
			pass, err := getPassphrase(true)
			if err != nil {
				return err
			}
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				return b.EncryptSymmetric(msg, pass)
			})
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [ciphertext|-]",
		Short: "Decrypt a base64 ciphertext",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := readArgOrStdin(cmd.InOrStdin(), args, 0)
			if err != nil {
				return err
			}
			pass, err := getPassphrase(false)
			if err != nil {
				return err
			}
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				return b.DecryptSymmetric(ct, pass)
			})
		},
	}
}
