package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/SaiNageswarS/go-mvc-boot/config"
	"github.com/SaiNageswarS/go-mvc-boot/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// swapped in tests
var serveFn = Serve

func NewRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mvc-boot",
		Short:         "Demo application and tooling for go-mvc-boot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveFn(ctx, configPath)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "INI config file")

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "List the demo routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tCALLBACK")
			for _, r := range demoBuilder().Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Method, r.Path, describeCallback(r.Callback))
			}
			return tw.Flush()
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse [Controller@action]",
		Short: "Resolve a Controller@action target against the demo registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := demoBuilder().App()
			if err != nil {
				return err
			}
			target, err := app.Target(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "controller: %s\nmethod:     %s\n", target.Controller, target.Method())
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, routesCmd, parseCmd)
	return rootCmd
}

func main() {
	if err := NewRoot().ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Serve loads configuration, builds the demo server and blocks until ctx ends.
func Serve(ctx context.Context, configPath string) error {
	cfg := config.DefaultBootConfig()
	if configPath != "" {
		if err := config.LoadConfig(configPath, &cfg); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	srv, err := demoBuilder().FromConfig(&cfg).Build()
	if err != nil {
		return err
	}

	logger.Info("Demo ready", zap.String("addr", srv.Addr()), zap.String("root", cfg.ControllerRoot))
	return srv.Serve(ctx)
}

func describeCallback(cb any) string {
	if s, ok := cb.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", cb)
}
