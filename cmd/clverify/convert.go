package main

import (
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a public key between XML and JSON",
		Long: `Read the public key in IN and write it to OUT. Files ending in .json are
JSON, other files XML.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := clkeys.NewPublicKeyFromFile(args[0])
			if err != nil {
				return err
			}
			_, err = pk.WriteToFile(args[1], force)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite OUT if it exists")
	return cmd
}
