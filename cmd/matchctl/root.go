package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"courier/internal/config"
	"courier/internal/logger"
	"courier/internal/maps"
	"courier/internal/marketplace"
	"courier/internal/modules/distance"
	"courier/internal/modules/matching"
	"courier/internal/modules/pricing"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Inspect delivery matches, fees and orders of a marketplace backend",
	Long: `matchctl loads orders, travelers and partners from a marketplace API and
computes the same matching views the API serves: the trips-and-orders board,
traveler matches, the match-selection screen and delivery fee quotes.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.matchctl.yaml)")
	rootCmd.PersistentFlags().String("api-url", "http://localhost:8080", "marketplace API base URL")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "API request timeout")
	rootCmd.PersistentFlags().String("maps-api-key", "", "Google Maps API key; empty uses synthetic distances")
	rootCmd.PersistentFlags().String("fee-table", "", "fee table file (yaml or json)")
	rootCmd.PersistentFlags().String("currency", "ETB", "currency for fee quotes")
	rootCmd.PersistentFlags().Int("distance-concurrency", 5, "parallel distance queries")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level")

	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(boardCmd, matchesCmd, selectCmd, feeCmd, trackCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".matchctl")
	}
	viper.SetEnvPrefix("matchctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *marketplace.Client {
	return marketplace.NewClient(marketplace.Config{
		BaseURL: viper.GetString("api-url"),
		Timeout: viper.GetDuration("timeout"),
	})
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetString("log-level"))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newPricing() (*pricing.Service, error) {
	cfg := config.PricingConfig{Currency: viper.GetString("currency")}
	if path := viper.GetString("fee-table"); path != "" {
		rates, err := config.LoadFeeTable(path)
		if err != nil {
			return nil, err
		}
		cfg.Rates = rates
	}
	return pricing.NewService(cfg), nil
}

func newMatching(log *zap.Logger) (*matching.Service, error) {
	fees, err := newPricing()
	if err != nil {
		return nil, err
	}
	client := newClient()

	var provider distance.Provider
	if key := viper.GetString("maps-api-key"); key != "" {
		svc, err := maps.NewDistanceService(key)
		if err != nil {
			log.Warn("maps client unavailable; using synthetic distances", zap.Error(err))
		} else {
			provider = svc
		}
	}
	est := distance.NewEstimator(provider,
		distance.WithConcurrency(viper.GetInt("distance-concurrency")),
		distance.WithLogger(log))

	svc := matching.NewService(
		matching.Sources{Orders: client.Orders(), Travelers: client.Travelers(), Partners: client.Partners()},
		est, fees, config.MatchingConfig{}, log)
	return svc, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
