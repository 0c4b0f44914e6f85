package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dvotenative/internal/boundary"
)

func signCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message with the Ethereum personal-message convention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				k, err := readSecret("Private key: ")
				if err != nil {
					return err
				}
				key = k
			}
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				return b.SignMessage(args[0], key)
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "hex private key (prompted when omitted)")
	return cmd
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <signature> <message> <public-key|address>",
		Short: "Check a signature",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := appCtx.Bridge
			b.ClearError()
			if b.IsValid(args[0], args[1], args[2]) {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			if err := b.LastError(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "invalid")
			return errors.New("signature does not match")
		},
	}
}

func recoverCmd() *cobra.Command {
	var uncompressed bool
	cmd := &cobra.Command{
		Use:   "recover <signature> <message>",
		Short: "Recover the public key that signed a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				if uncompressed {
					return b.RecoverSignerUncompressed(args[0], args[1])
				}
				return b.RecoverSigner(args[0], args[1])
			})
		},
	}
	cmd.Flags().BoolVar(&uncompressed, "uncompressed", false, "print the 65-byte form")
	return cmd
}
