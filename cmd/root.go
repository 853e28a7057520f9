package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tcx",
	Short: "tcx — a TOON codec and timezone/recurrence truth engine",
	Long:  "tcx encodes and decodes the TOON text format and expands RRULEs, timezone conversions, relative-time expressions, and calendar availability — all as pure, deterministic operations over explicit inputs.",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tcx/config.yaml)")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(rruleCmd)
	rootCmd.AddCommand(tzCmd)
	rootCmd.AddCommand(durationCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(relativeCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(timelineCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		dir := filepath.Join(home, ".tcx")
		_ = os.MkdirAll(dir, 0o755)
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}
	viper.SetDefault("timezone", "UTC")
	viper.SetDefault("quiet", false)
	viper.SetEnvPrefix("TCX")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// defaultZone returns flagValue if set, else the configured default zone.
func defaultZone(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString("timezone")
}

// readInput returns the contents of path, or of stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
