// Package scheduler implements the periodic storefront refresh command.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/storescope/cmd/common"
)

const signalChannelBufferSize = 1

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Periodically refresh persisted storefront profiles",
		Long: `The scheduler re-fetches every storefront stored in the database on a
cron schedule, keeping persisted profiles and reports current. It requires
database persistence to be enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	pipeline := common.BuildPipeline(deps)
	defer pipeline.Close()

	if pipeline.Repo == nil {
		return fmt.Errorf("scheduler requires database persistence; enable database.enabled")
	}

	log := deps.Logger.WithComponent("scheduler")
	spec := deps.Config.Scheduler.Cron

	c := cron.New()
	_, err = c.AddFunc(spec, func() {
		ctx := context.Background()
		if refreshErr := pipeline.Service.RefreshAll(ctx); refreshErr != nil {
			log.Error("Scheduled refresh failed", "error", refreshErr)
			return
		}
		log.Info("Scheduled refresh completed")
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	log.Info("Starting scheduler", "cron", spec)
	c.Start()

	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info("Stopping scheduler", "signal", sig.String())
	<-c.Stop().Done()
	return nil
}
