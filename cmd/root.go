package cmd

import (
	"context"
	"strings"

	"sjsage522/pricecompare/config"

	"github.com/spf13/cobra"
)

const appName = "pricecompare"

// AppFlags holds the persistent flags shared by every command
type AppFlags struct {
	Mode         string
	DocumentsDir string
	Headless     bool
}

var (
	Flags AppFlags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Compare a product's price across Amazon, Flipkart, Myntra and Meesho",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&Flags.Mode, "mode", config.FetchModeAuto,
		"fetch mode: auto, file, http, chrome or selenium")
	rootCmd.PersistentFlags().StringVar(&Flags.DocumentsDir, "documents-dir", ".",
		"directory holding saved search pages for file mode")
	rootCmd.PersistentFlags().BoolVar(&Flags.Headless, "headless", true,
		"run browser sessions without a window")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the environment and lets explicitly set flags override it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.LoadConfig()

	flags := cmd.Flags()
	if flags.Changed("mode") {
		c.FetchMode = strings.ToLower(Flags.Mode)
		if !envSet("MATCH_POLICY") {
			c.MatchPolicy = config.DefaultMatchPolicy(c.FetchMode)
		}
	}
	if flags.Changed("documents-dir") {
		c.DocumentsDir = Flags.DocumentsDir
	}
	if flags.Changed("headless") {
		c.Headless = Flags.Headless
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
