// Command fairctl prints a one-shot text snapshot of the fair dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/meharaz2020/fair-dashboard/internal/adapters/primary/render"
	"github.com/meharaz2020/fair-dashboard/internal/adapters/secondary/postgres"
	"github.com/meharaz2020/fair-dashboard/internal/config"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	"github.com/meharaz2020/fair-dashboard/internal/core/services"
	"github.com/meharaz2020/fair-dashboard/internal/infrastructure/logging"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(lipgloss.Color("#4F5D75")).
	Padding(0, 2)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "fairctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fairctl", flag.ContinueOnError)
	modeFlag := fs.String("mode", "", "time-series mode: 5min or hourly (default from DASHBOARD_DEFAULT_MODE)")
	height := fs.Int("height", 10, "height of the ASCII chart in rows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mode := domain.Mode(cfg.Dashboard.DefaultMode)
	if *modeFlag != "" {
		mode = domain.Mode(*modeFlag)
	}
	if !mode.IsValid() {
		return fmt.Errorf("invalid mode %q: must be one of 5min, hourly", mode)
	}

	logger := logging.NewLogger(logging.Config{
		Level:       "warn",
		Format:      "text",
		Output:      os.Stderr,
		ServiceName: "fairctl",
		Environment: cfg.App.Environment,
	})

	connector, err := postgres.NewConnector(cfg.Database.URL, cfg.Database.ConnectTimeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := services.NewDashboardService(postgres.NewFairRepository(connector), nil, cfg.Dashboard.RefreshInterval, logger)

	snapshot, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}

	series, err := svc.TimeSeries(ctx, mode)
	if err != nil {
		return err
	}

	logger.Debug("snapshot loaded", slog.Int("attributes", len(snapshot.Table)))

	fmt.Fprintln(out, titleStyle.Render(cfg.Dashboard.Title))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.Table("", snapshot.Table))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.Pies(snapshot.Pies))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.ASCIIChart(*series, *height))
	return nil
}
