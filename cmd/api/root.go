package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"petdoc-id/internal/platform/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "petdoc-api",
	Short:        "PetDoc ID registration and document service",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (yaml); env PETDOC_* overrides it")

	rootCmd.AddCommand(serveCmd, hashPasswordCmd, parseCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(viper.New(), cfgFile)
}
