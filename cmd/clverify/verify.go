package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify"
	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/keystore"
	"github.com/spf13/cobra"
)

type verifyOptions struct {
	keys     string
	proof    string
	request  string
	revealed string
	nonce    string
	format   string
	fast     bool
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a presentation proof",
		Long: `Verify a presentation proof against the keys in a directory laid out as
<keys>/<issuer_id>/<name>/<version>/{PublicKey.xml,PublicKey.json,attributes.json}.
Prints "valid" and exits with status 0, or prints "invalid" and exits with status 1.
Other failures exit with status 2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.keys, "keys", "", "directory of issuer public keys")
	flags.StringVar(&opts.proof, "proof", "", "file containing the proof")
	flags.StringVar(&opts.request, "request", "", "JSON file containing the proof request (optional)")
	flags.StringVar(&opts.revealed, "revealed", "", "JSON file mapping revealed attribute names to their values (optional)")
	flags.StringVar(&opts.nonce, "nonce", "", "base 10 nonce sent to the prover")
	flags.StringVar(&opts.format, "format", "json", "encoding of the proof file: json or cbor")
	flags.BoolVar(&opts.fast, "fast-exp", false, "precompute exponentiation tables for the key generators")
	_ = cmd.MarkFlagRequired("keys")
	_ = cmd.MarkFlagRequired("proof")
	_ = cmd.MarkFlagRequired("nonce")
	return cmd
}

func readJSONFile(filename string, v interface{}) error {
	bts, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(bts, v); err != nil {
		return errors.WrapPrefix(err, filename, 0)
	}
	return nil
}

func (opts *verifyOptions) readProof() (*clverify.FullProof, error) {
	bts, err := ioutil.ReadFile(opts.proof)
	if err != nil {
		return nil, err
	}
	var proof *clverify.FullProof
	switch opts.format {
	case "json":
		proof, err = clverify.DecodeFullProofJSON(bts)
	case "cbor":
		proof, err = clverify.DecodeFullProofCBOR(bts)
	default:
		return nil, errors.Errorf("unknown proof format %q", opts.format)
	}
	if err != nil {
		return nil, errors.WrapPrefix(err, opts.proof, 0)
	}
	return proof, nil
}

func (opts *verifyOptions) run(cmd *cobra.Command) error {
	nonce, err := big.FromDecimal(opts.nonce)
	if err != nil {
		return errors.WrapPrefix(err, "nonce", 0)
	}
	proof, err := opts.readProof()
	if err != nil {
		return err
	}

	var input *clverify.ProofInput
	if opts.request != "" {
		input = &clverify.ProofInput{}
		if err = readJSONFile(opts.request, input); err != nil {
			return err
		}
	}
	revealed := map[string]*big.Int{}
	if opts.revealed != "" {
		if err = readJSONFile(opts.revealed, &revealed); err != nil {
			return err
		}
	}

	var dirOpts []keystore.DirectoryOption
	if opts.fast {
		dirOpts = append(dirOpts, keystore.WithFastExponentiation())
	}
	keys, err := keystore.NewDirectory(opts.keys, dirOpts...)
	if err != nil {
		return err
	}

	ok, err := clverify.NewVerifier(keys).Verify(input, proof, revealed, nonce)
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("invalid")
		return errInvalid
	}
	cmd.Println("valid")
	return nil
}
