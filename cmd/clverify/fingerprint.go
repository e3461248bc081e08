package main

import (
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/spf13/cobra"
)

func newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint FILE...",
		Short: "Print the fingerprints of public key files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, filename := range args {
				pk, err := clkeys.NewPublicKeyFromFile(filename)
				if err != nil {
					return err
				}
				fp, err := pk.Fingerprint()
				if err != nil {
					return err
				}
				if len(args) > 1 {
					cmd.Printf("%s  %s\n", fp, filename)
				} else {
					cmd.Println(fp)
				}
			}
			return nil
		},
	}
}
