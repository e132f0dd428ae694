// Command fluentpg, go-fluent-pg için küçük bir tanılama aracıdır.
//
// İki alt komut sunar:
//
//	fluentpg check          — ortam değişkenlerinden bağlantıyı kurup doğrular
//	fluentpg exec "<sql>"   — raw SQL script'i çalıştırıp sonucu JSON yazar
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	fluentpg "github.com/biyonik/go-fluent-pg"
)

var debug bool

func main() {
	rootCmd := &cobra.Command{
		Use:     "fluentpg",
		Short:   "Diagnostics for go-fluent-pg database connections",
		Version: fluentpg.Version,
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "log executed queries to stderr")
	rootCmd.AddCommand(checkCmd(), execCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openFromEnv, ortak açılış yoludur: .env + ortam değişkenleri, istenirse debug logger.
func openFromEnv() (*fluentpg.DB, error) {
	var opts []fluentpg.Option
	if debug {
		opts = append(opts, fluentpg.WithDebug())
	}
	return fluentpg.OpenFromEnv(opts...)
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load configuration from the environment and verify the connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openFromEnv()
			if err != nil {
				color.Red("✗ could not open connection: %v", err)
				return err
			}
			defer db.Close()

			cfg := db.Config()
			fmt.Println("Configuration:")
			fmt.Printf("  host:     %s\n", cfg.Host)
			fmt.Printf("  port:     %d\n", cfg.Port)
			fmt.Printf("  user:     %s\n", cfg.User)
			fmt.Printf("  database: %s\n", cfg.Database)
			fmt.Printf("  sslmode:  %s\n", cfg.SSLMode)

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				color.Red("✗ ping failed: %v", err)
				return err
			}
			color.Green("✓ connection OK")
			return nil
		},
	}
}

func execCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "exec [script]",
		Short: "Run a raw SQL script and print the structured result as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var script string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				script = string(data)
			case len(args) == 1:
				script = args[0]
			default:
				return fmt.Errorf("either a script argument or --file is required")
			}

			db, err := openFromEnv()
			if err != nil {
				return err
			}
			defer db.Close()

			result := db.Raw(cmd.Context(), script)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))

			if result.Status == fluentpg.StatusError {
				color.Red("✗ script failed: %s", result.Message)
				os.Exit(1)
			}
			color.Green("✓ script executed")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the script from a file")
	return cmd
}
