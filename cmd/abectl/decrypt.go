package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openabe-go/abe-core/abe"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/policyparser"
	"github.com/openabe-go/abe-core/wire"
)

var (
	decryptPolicy   string
	decryptMPKLabel string
	decryptSKLabel  string
	decryptIn       string
	decryptOut      string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Open a sealed file with a previously derived user secret key",
	RunE: func(cmd *cobra.Command, args []string) error {
		cliCfg, err := loadCLIConfig(cmd)
		if err != nil {
			return err
		}
		cfg, err := cliCfg.abeConfig()
		if err != nil {
			return err
		}
		store, err := cliCfg.openKeystore()
		if err != nil {
			return err
		}
		defer store.Close()

		mpkBytes, err := store.Get(decryptMPKLabel)
		if err != nil {
			return err
		}
		mpk, err := abe.DecodeMPK(mpkBytes)
		if err != nil {
			return err
		}
		skBytes, err := store.Get(decryptSKLabel)
		if err != nil {
			return err
		}
		sk, err := abe.DecodeSK(skBytes)
		if err != nil {
			return err
		}

		ctBytes, err := os.ReadFile(decryptIn)
		if err != nil {
			return err
		}
		ct, err := wire.DecodeContainer(ctBytes)
		if err != nil {
			return err
		}

		// CP_WATERS decryption needs the same policy tree the
		// ciphertext was sealed under; KP_GPSW's re-encryption check
		// needs the same attribute set, which the ciphertext already
		// carries in its "attrs" entry.
		var tree *policy.Node
		var attrs *policy.AttributeList
		switch cfg.Scheme {
		case abe.CPWaters:
			if decryptPolicy == "" {
				return errors.New("--policy is required for scheme CP_WATERS")
			}
			tree, err = policyparser.Parse(decryptPolicy)
			if err != nil {
				return err
			}
		case abe.KPGPSW:
			raw, found := ct.Get("attrs")
			if !found {
				return errors.New("ciphertext is missing its attrs entry")
			}
			var names []string
			if len(raw) > 0 {
				names = strings.Split(string(raw), "\n")
			}
			attrs, err = policy.NewAttributeList(names...)
			if err != nil {
				return err
			}
		}

		plaintext, err := abe.Decrypt(cfg, mpk, sk, tree, attrs, ct)
		if err != nil {
			return err
		}
		if err := os.WriteFile(decryptOut, plaintext, 0o600); err != nil {
			return err
		}

		slog.Info("opened payload", "bytes", len(plaintext), "out", decryptOut)
		return nil
	},
}

func init() {
	decryptCmd.Flags().StringVar(&decryptPolicy, "policy", "", "Policy expression the ciphertext was sealed under (CP_WATERS)")
	decryptCmd.Flags().StringVar(&decryptMPKLabel, "mpk-label", "mpk", "Keystore label the master public key was stored under")
	decryptCmd.Flags().StringVar(&decryptSKLabel, "sk-label", "sk", "Keystore label the user secret key was stored under")
	decryptCmd.Flags().StringVar(&decryptIn, "in", "", "Path to the sealed ciphertext container")
	decryptCmd.Flags().StringVar(&decryptOut, "out", "", "Path to write the recovered plaintext")
	rootCmd.AddCommand(decryptCmd)
}
