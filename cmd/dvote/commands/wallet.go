package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dvotenative/internal/domain"
)

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage passphrase-protected wallets",
	}
	cmd.AddCommand(walletCreateCmd(), walletImportCmd(), walletListCmd(), walletShowCmd(), walletUnlockCmd())
	return cmd
}

func printWallet(w io.Writer, info domain.WalletInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func walletCreateCmd() *cobra.Command {
	var (
		words  int
		hdPath string
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Generate a mnemonic and store it encrypted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := appCtx.Wallets()
			if err != nil {
				return err
			}
			pass, err := getPassphrase(true)
			if err != nil {
				return err
			}
			info, m, err := ws.CreateWallet(args[0], words, hdPath, pass)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet created.\nAddress: %s\nMnemonic (write it down): %s\n", info.Address, m)
			return nil
		},
	}
	cmd.Flags().IntVar(&words, "words", 24, "mnemonic length")
	cmd.Flags().StringVar(&hdPath, "path", domain.DefaultHDPath, "BIP32 derivation path of the wallet address")
	return cmd
}

func walletImportCmd() *cobra.Command {
	var (
		mnemonic string
		hdPath   string
	)
	cmd := &cobra.Command{
		Use:   "import <name>",
		Short: "Store an existing mnemonic encrypted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := appCtx.Wallets()
			if err != nil {
				return err
			}
			if mnemonic == "" {
				if mnemonic, err = readSecret("Mnemonic: "); err != nil {
					return err
				}
			}
			pass, err := getPassphrase(true)
			if err != nil {
				return err
			}
			info, err := ws.ImportWallet(args[0], domain.Mnemonic(mnemonic), hdPath, pass)
			if err != nil {
				return err
			}
			return printWallet(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP39 phrase (prompted when omitted)")
	cmd.Flags().StringVar(&hdPath, "path", domain.DefaultHDPath, "BIP32 derivation path of the wallet address")
	return cmd
}

func walletListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := appCtx.Wallets()
			if err != nil {
				return err
			}
			list, err := ws.ListWallets()
			if err != nil {
				return err
			}
			for _, w := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", w.Name, w.Address, w.HDPath)
			}
			return nil
		},
	}
}

func walletShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a wallet's public details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := appCtx.Wallets()
			if err != nil {
				return err
			}
			info, err := ws.ShowWallet(args[0])
			if err != nil {
				return err
			}
			return printWallet(cmd.OutOrStdout(), info)
		},
	}
}

func walletUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <name>",
		Short: "Decrypt and print a wallet's mnemonic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := appCtx.Wallets()
			if err != nil {
				return err
			}
			pass, err := getPassphrase(false)
			if err != nil {
				return err
			}
			m, err := ws.UnlockWallet(args[0], pass)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		},
	}
}
