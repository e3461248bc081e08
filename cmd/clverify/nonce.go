package main

import (
	"github.com/privacybydesign/clverify"
	"github.com/privacybydesign/clverify/keystore"
	"github.com/spf13/cobra"
)

func newNonceCmd() *cobra.Command {
	var bits uint
	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Print a fresh base 10 nonce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := *clverify.DefaultSystemParameters
			params.NonceBits = bits
			nonce, err := clverify.NewVerifier(keystore.NewMemory(), clverify.WithParameters(&params)).GenerateNonce()
			if err != nil {
				return err
			}
			cmd.Println(nonce.String())
			return nil
		},
	}
	cmd.Flags().UintVar(&bits, "bits", clverify.DefaultSystemParameters.NonceBits, "size of the nonce in bits")
	return cmd
}
