package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atlantispak/packplan/pkg/config"
	"github.com/atlantispak/packplan/pkg/version"
)

var app config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "packplan",
	Short: "Production Schedule Optimizer",
	Long: `Packplan - Production Scheduling for Packaging Plants

Assign. Sequence. Minimize waste.`,
	Version: version.Current,
	// Run: nil (Forces help output).
	Run: nil,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent Flags
	rootCmd.PersistentFlags().StringVar(&app.OutputDir, "output-dir", "./packplan-out", "Directory for schedule and report artifacts")
	rootCmd.PersistentFlags().StringVar(&app.ScheduleURL, "schedule-url", "", "Remote schedule sink (e.g. s3://bucket/key)")
	rootCmd.PersistentFlags().StringVar(&app.RulesFile, "rules", "", "Path to eligibility rules (YAML)")
	rootCmd.PersistentFlags().StringVar(&app.SlackWebhook, "slack-webhook", "", "Slack Webhook URL")
	rootCmd.PersistentFlags().StringVar(&app.SlackChannel, "slack-channel", "", "Slack channel override")
	rootCmd.PersistentFlags().StringVar(&app.OtelEndpoint, "otel-endpoint", "", "OTLP/HTTP collector endpoint")
	rootCmd.PersistentFlags().Int64Var(&app.Seed, "seed", 0, "PRNG seed for the genetic search (0 = fixed default)")
	rootCmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&app.JsonLogs, "json", false, "Enable JSON Logging (Machine Mode)")

	// Bind Flags to Viper (Precedence: Flag > Env > Config > Default)
	viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	viper.BindPFlag("schedule_url", rootCmd.PersistentFlags().Lookup("schedule-url"))
	viper.BindPFlag("rules_file", rootCmd.PersistentFlags().Lookup("rules"))
	viper.BindPFlag("slack_webhook", rootCmd.PersistentFlags().Lookup("slack-webhook"))
	viper.BindPFlag("slack_channel", rootCmd.PersistentFlags().Lookup("slack-channel"))
	viper.BindPFlag("otel_endpoint", rootCmd.PersistentFlags().Lookup("otel-endpoint"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "help" || cmd.Name() == "optimize" {
			checkUpdate()
		}

		// Load configuration values, prioritizing Viper sources (Env/Flag/Config).
		app.OutputDir = viper.GetString("output_dir")
		app.ScheduleURL = viper.GetString("schedule_url")
		app.RulesFile = viper.GetString("rules_file")
		app.SlackWebhook = viper.GetString("slack_webhook")
		app.SlackChannel = viper.GetString("slack_channel")
		app.OtelEndpoint = viper.GetString("otel_endpoint")
		app.Seed = viper.GetInt64("seed")
		app.Verbose = viper.GetBool("verbose")
		app.JsonLogs = viper.GetBool("json_logs")
	}

	rootCmd.AddCommand(ExportCmd)
	rootCmd.AddCommand(ViewCmd)
}

func initConfig() {
	viper.SetConfigName("packplan") // name of config file (without extension)
	viper.SetConfigType("yaml")     // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath(".")        // optionally look for config in the working directory
	viper.AddConfigPath("$HOME/.packplan")

	viper.SetEnvPrefix("PACKPLAN")
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully.
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("PACKPLAN %s", version.Current)))
	fmt.Println("Production schedule optimization for packaging plants.")

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	fmt.Println(titleStyle.Render("COMMANDS"))
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
		}
	}
	fmt.Println("")

	fmt.Println(titleStyle.Render("EXAMPLES"))
	fmt.Println("  packplan optimize --task orders.json            # Interactive Mode (TUI)")
	fmt.Println("  packplan optimize --task orders.json --headless # CI/CD Mode (No TUI)")
	fmt.Println("")

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Println(flagStyle.Render(output))
	})
	fmt.Println("")
}
