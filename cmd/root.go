package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mubarak-24/football-matches/internal/utils"
	"github.com/mubarak-24/football-matches/pkg/config"
	"github.com/mubarak-24/football-matches/pkg/storage"
)

var cfgFile string

const (
	LOGO = `	  __            _      _ _                 _   
	 / _| ___   ___ | |_ __| (_) __ _  ___  ___| |_ 
	| |_ / _ \ / _ \| __/ _` + "`" + ` | |/ _` + "`" + ` |/ _ \/ __| __|
	|  _| (_) | (_) | || (_| | | (_| |  __/\__ \ |_ 
	|_|  \___/ \___/ \__\__,_|_|\__, |\___||___/\__|
	                            |___/               

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "footdigest",
	Short: "A daily football digest: results, fixtures and filtered news by email.",
	Long: LOGO + `footdigest pulls fixtures and results from API-Football into SQLite,
ranks finished matches by an entertainment heuristic, filters football news
feeds down to the headlines worth reading, and emails it all as one digest.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.footdigest.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("dbpath", "", "", "Path to the SQLite DB file (default is ~/.config/footdigest/football.sqlite)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Secrets live in .env in the original deployment; keep honoring it.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".footdigest")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.footdigest.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// loadConfig materializes the effective configuration, with the --dbpath
// flag taking precedence over file and environment.
func loadConfig() config.Config {
	cfg := config.Load(viper.GetViper())
	if p, _ := rootCmd.PersistentFlags().GetString("dbpath"); p != "" {
		cfg.DBPath = p
	}
	return cfg
}

// openDB resolves the database path, makes sure its directory exists and
// opens (bootstrapping the schema if needed).
func openDB(cfg config.Config) (*storage.DB, error) {
	path, err := utils.GetAbsDBPath(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return storage.Open(path)
}
