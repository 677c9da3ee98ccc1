package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TianweiOwenLi/TaggyTime/cmd/taggytime/commands"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "taggytime",
	Short: "TaggyTime - minute-resolution calendar and task scheduling",
	Long: `TaggyTime tracks calendars and tasks at minute resolution. Load .ics
calendars, register tasks with workloads and due times, and see how much
of your remaining free time each task would consume.`,
}

func main() {
	rootCmd.AddCommand(commands.AddCalCmd)
	rootCmd.AddCommand(commands.RmCalCmd)
	rootCmd.AddCommand(commands.CalsCmd)
	rootCmd.AddCommand(commands.EventsCmd)
	rootCmd.AddCommand(commands.NowCmd)
	rootCmd.AddCommand(commands.TzCmd)
	rootCmd.AddCommand(commands.SetTzCmd)
	rootCmd.AddCommand(commands.AddTaskCmd)
	rootCmd.AddCommand(commands.RmTaskCmd)
	rootCmd.AddCommand(commands.SetProgressCmd)
	rootCmd.AddCommand(commands.ImpactCmd)
	rootCmd.AddCommand(commands.TruncateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "environment file (default is $HOME/.taggytime/env.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))
}

func initConfig() {
	viper.SetEnvPrefix("taggy")
	viper.AutomaticEnv()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
