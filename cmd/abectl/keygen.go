package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openabe-go/abe-core/abe"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/policyparser"
)

var (
	keygenAttrs    string
	keygenPolicy   string
	keygenMPKLabel string
	keygenMSKLabel string
	keygenSKLabel  string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Derive a user secret key bound to an attribute set (CP_WATERS) or a policy tree (KP_GPSW)",
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

		mpkBytes, err := store.Get(keygenMPKLabel)
		if err != nil {
			return err
		}
		mpk, err := abe.DecodeMPK(mpkBytes)
		if err != nil {
			return err
		}
		mskBytes, err := store.Get(keygenMSKLabel)
		if err != nil {
			return err
		}
		msk, err := abe.DecodeMSK(mskBytes)
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
			if keygenAttrs == "" {
				return errors.New("--attrs is required for scheme CP_WATERS")
			}
			attrs, err = policy.NewAttributeList(strings.Split(keygenAttrs, ",")...)
			if err != nil {
				return err
			}
		case abe.KPGPSW:
			if keygenPolicy == "" {
				return errors.New("--policy is required for scheme KP_GPSW")
			}
			tree, err = policyparser.Parse(keygenPolicy)
			if err != nil {
				return err
			}
		default:
			return errors.New("unknown scheme: " + string(cfg.Scheme))
		}

		sk, err := abe.KeyGen(cfg, rng, mpk, msk, attrs, tree)
		if err != nil {
			return err
		}
		skBytes, err := abe.EncodeSK(sk)
		if err != nil {
			return err
		}
		if err := store.Put(keygenSKLabel, skBytes); err != nil {
			return err
		}

		slog.Info("derived user secret key", "sk_label", keygenSKLabel)
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringVar(&keygenAttrs, "attrs", "", "Comma-separated attribute set (CP_WATERS)")
	keygenCmd.Flags().StringVar(&keygenPolicy, "policy", "", "Policy expression, e.g. \"(a and b) or 2 of (c, d, e)\" (KP_GPSW)")
	keygenCmd.Flags().StringVar(&keygenMPKLabel, "mpk-label", "mpk", "Keystore label the master public key was stored under")
	keygenCmd.Flags().StringVar(&keygenMSKLabel, "msk-label", "msk", "Keystore label the master secret key was stored under")
	keygenCmd.Flags().StringVar(&keygenSKLabel, "sk-label", "sk", "Keystore label to store the derived secret key under")
	rootCmd.AddCommand(keygenCmd)
}
