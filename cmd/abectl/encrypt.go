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
)

var (
	encryptAttrs    string
	encryptPolicy   string
	encryptMPKLabel string
	encryptIn       string
	encryptOut      string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Seal a file under a policy tree (CP_WATERS) or an attribute set (KP_GPSW)",
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

		mpkBytes, err := store.Get(encryptMPKLabel)
		if err != nil {
			return err
		}
		mpk, err := abe.DecodeMPK(mpkBytes)
		if err != nil {
			return err
		}

		rng, err := newSeededDRBG()
		if err != nil {
			return err
		}

		var attrs *policy.AttributeList
		var tree *policy.Node
		switch cfg.Scheme {
		case abe.CPWaters:
			if encryptPolicy == "" {
				return errors.New("--policy is required for scheme CP_WATERS")
			}
			tree, err = policyparser.Parse(encryptPolicy)
			if err != nil {
				return err
			}
		case abe.KPGPSW:
			if encryptAttrs == "" {
				return errors.New("--attrs is required for scheme KP_GPSW")
			}
			attrs, err = policy.NewAttributeList(strings.Split(encryptAttrs, ",")...)
			if err != nil {
				return err
			}
		default:
			return errors.New("unknown scheme: " + string(cfg.Scheme))
		}

		plaintext, err := os.ReadFile(encryptIn)
		if err != nil {
			return err
		}

		ct, err := abe.Encrypt(cfg, rng, mpk, tree, attrs, plaintext)
		if err != nil {
			return err
		}
		ctBytes, err := ct.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(encryptOut, ctBytes, 0o600); err != nil {
			return err
		}

		slog.Info("sealed payload", "bytes", len(ctBytes), "out", encryptOut)
		return nil
	},
}

func init() {
	encryptCmd.Flags().StringVar(&encryptAttrs, "attrs", "", "Comma-separated attribute set (KP_GPSW)")
	encryptCmd.Flags().StringVar(&encryptPolicy, "policy", "", "Policy expression (CP_WATERS)")
	encryptCmd.Flags().StringVar(&encryptMPKLabel, "mpk-label", "mpk", "Keystore label the master public key was stored under")
	encryptCmd.Flags().StringVar(&encryptIn, "in", "", "Path to the plaintext input file")
	encryptCmd.Flags().StringVar(&encryptOut, "out", "", "Path to write the sealed ciphertext container")
	rootCmd.AddCommand(encryptCmd)
}
