package commands

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"dvotenative/internal/boundary"
	"dvotenative/internal/domain"
)

func addressCmd() *cobra.Command {
	var qrPath string
	cmd := &cobra.Command{
		Use:   "address <hex-private-key>",
		Short: "Print the EIP-55 address of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withScope(func(b *boundary.Bridge, sc *boundary.Scope) error {
				addr, err := text(sc, b.ComputeAddress(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), addr)
				if qrPath == "" {
					return nil
				}
				if err := qrcode.WriteFile(addr, qrcode.Medium, 256, qrPath); err != nil {
					return fmt.Errorf("write QR code: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "QR code written to %s\n", qrPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "also write the address as a PNG QR code to this file")
	return cmd
}

func pubkeyCmd() *cobra.Command {
	var uncompressed bool
	cmd := &cobra.Command{
		Use:   "pubkey <hex-private-key>",
		Short: "Print the public key of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				if uncompressed {
					return b.ComputePublicKeyUncompressed(args[0])
				}
				return b.ComputePublicKey(args[0])
			})
		},
	}
	cmd.Flags().BoolVar(&uncompressed, "uncompressed", false, "print the 65-byte form")
	return cmd
}

func privkeyCmd() *cobra.Command {
	var (
		mnemonic string
		hdPath   string
	)
	cmd := &cobra.Command{
		Use:   "privkey",
		Short: "Derive a private key from a mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mnemonic == "" {
				m, err := readSecret("Mnemonic: ")
				if err != nil {
					return err
				}
				mnemonic = m
			}
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				return b.ComputePrivateKey(mnemonic, hdPath)
			})
		},
	}
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP39 phrase (prompted when omitted)")
	cmd.Flags().StringVar(&hdPath, "path", domain.DefaultHDPath, "BIP32 derivation path")
	return cmd
}

func mnemonicCmd() *cobra.Command {
	var words int
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a new BIP39 mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, func(b *boundary.Bridge) boundary.Handle {
				return b.GenerateMnemonic(words)
			})
		},
	}
	cmd.Flags().IntVar(&words, "words", 24, "number of words (12, 15, 18, 21 or 24)")
	return cmd
}
