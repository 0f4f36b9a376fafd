package main

import (
	"fmt"
	"os"

	"github.com/Tofuswang/journey/internal/config"
	"github.com/spf13/cobra"
)

// @title           使用者旅程地圖 API
// @version         1.0
// @description     Submit, search, chart and export six-stage user journey maps.
// @contact.name    Tofus
// @contact.email   terry.f.wang@gmail.com
// @license.name    CC-BY 4.0
// @license.url     https://creativecommons.org/licenses/by/4.0/
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "journeymap",
		Short: "User journey map service",
		Long: `journeymap collects six-stage user journey maps, lists and searches
them, draws their emotion charts and exports them as CSV.

Run without a subcommand to start the web server.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	loadConfig := func() (config.Config, error) {
		return config.Load(envFile)
	}

	serveCmd := newServeCmd(loadConfig)
	rootCmd.AddCommand(serveCmd, newExportCmd(loadConfig))
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	return rootCmd
}
