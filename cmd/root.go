package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "startup-board",
	Short: "A small web application for listing and registering startups",
	Run: func(cmd *cobra.Command, args []string) {
		serveCmd.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env", "", "env file path (eg: /etc/startup-board/.env)")
	if err := viper.BindPFlag("env_file_path", rootCmd.PersistentFlags().Lookup("env")); err != nil {
		return
	}
}
