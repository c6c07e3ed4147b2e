// Package main is the abectl CLI: a thin cobra/viper front end over
// the abe facade, exercising Setup/KeyGen/Encrypt/Decrypt from the
// command line the way a reader of this repository expects, mirroring
// the teacher's per-role subcommand layout (manufacturing/owner/
// rendezvous) with one subcommand per library entry point instead.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"

	"github.com/openabe-go/abe-core/abe"
	"github.com/openabe-go/abe-core/keystore"
	"github.com/openabe-go/abe-core/pairing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "abectl",
	Short: "Command-line front end for the abe-core attribute-based encryption library",
	Long: `abectl drives the abe-core library end to end: generate a master
keypair, derive user secret keys over an attribute set or policy, and
seal or open payloads under a policy or attribute set.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().Bool("debug", false, "Print debug logging")
	rootCmd.PersistentFlags().String("curve", string(pairing.BLS12_381), "Pairing curve (BLS12_381 or BN254)")
	rootCmd.PersistentFlags().String("scheme", string(abe.CPWaters), "KEM scheme (CP_WATERS or KP_GPSW)")
	rootCmd.PersistentFlags().String("cca", string(abe.CCAOn), "CCA transform (on or off)")
	rootCmd.PersistentFlags().String("encoding", "legacy", "Wire body encoding (legacy or standard)")
	rootCmd.PersistentFlags().String("keystore", "", "Path to the keystore's sqlite database")
}

// cliConfig is the typed decode target for the four library
// configuration keys plus the keystore path, filled from viper the
// same way the teacher's FDOServerConfig is.
type cliConfig struct {
	Curve    string `mapstructure:"curve"`
	Scheme   string `mapstructure:"scheme"`
	CCA      string `mapstructure:"cca"`
	Encoding string `mapstructure:"encoding"`
	Keystore string `mapstructure:"keystore"`
}

// loadCLIConfig binds the invoked command's flags into viper and
// decodes them into a cliConfig, the same BindPFlags-then-Get pattern
// the teacher's per-role subcommands use in their LoadConfig helpers.
func loadCLIConfig(cmd *cobra.Command) (cliConfig, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return cliConfig{}, err
	}
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return cliConfig{}, err
	}

	cfg := cliConfig{
		Curve:    viper.GetString("curve"),
		Scheme:   viper.GetString("scheme"),
		CCA:      viper.GetString("cca"),
		Encoding: viper.GetString("encoding"),
		Keystore: viper.GetString("keystore"),
	}
	if cfg.Keystore == "" {
		return cfg, errors.New("missing required keystore path (--keystore)")
	}
	if viper.GetBool("debug") {
		logLevel.Set(slog.LevelDebug)
	}
	return cfg, nil
}

// abeConfig translates the flag-level strings into abe.Config. Only
// the encoding value is checked here; curve and scheme are passed
// through for the abe package to reject, and any cca value other than
// "off" runs the CCA transform.
func (c cliConfig) abeConfig() (abe.Config, error) {
	cfg := abe.Config{
		Curve:  pairing.CurveID(c.Curve),
		Scheme: abe.Scheme(c.Scheme),
		CCA:    abe.CCAMode(c.CCA),
	}
	switch c.Encoding {
	case "", "legacy":
		cfg.Encoding = abe.LegacyCompact
	case "standard":
		cfg.Encoding = abe.StandardFramed
	default:
		return abe.Config{}, errors.New("unknown encoding: " + c.Encoding + " (must be 'legacy' or 'standard')")
	}
	return cfg, nil
}

func (c cliConfig) openKeystore() (*keystore.Store, error) {
	return keystore.Open(c.Keystore)
}
