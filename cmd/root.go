package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matt-g-everett/ledtween/stream"
)

var rootCmd = &cobra.Command{
	Use:   "ledtween",
	Short: "Tween-driven LED strip animator",
	Long:  "ledtween animates fixtures on an LED strip with eased property tweens and streams the frames over MQTT.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .ledtween.yaml)")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ledtween")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LEDTWEEN")
	viper.SetEnvKeyReplacer(stream.EnvKeyReplacer)
	viper.AutomaticEnv()

	// No config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}
