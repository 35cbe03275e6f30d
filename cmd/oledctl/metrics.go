package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/logic"
	"github.com/nkatzz/oledgo/internal/metrics"
)

func serveMetricsCmd() *cobra.Command {
	var addrFlag string

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Drive the online loop over an example stream while exposing its statistics as Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			examplesPath, _ := cmd.Flags().GetString("examples")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			examples, err := learner.LoadExamples(examplesPath)
			if err != nil {
				return fmt.Errorf("load examples: %w", err)
			}

			metrics.Register()
			log := newLogger()
			l := newDemoLearner(cfg, log)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			httpSrv := &http.Server{Addr: addrFlag, Handler: mux}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				fmt.Printf("serving metrics on %s/metrics\n", addrFlag)
				errCh <- httpSrv.ListenAndServe()
			}()

			go runAndReport(ctx, l, examples, log)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			}
		},
	}
	addStreamFlags(cmd)
	cmd.Flags().StringVar(&addrFlag, "addr", ":9090", "listen address for the /metrics endpoint")
	return cmd
}

// runAndReport steps the learner through every example once, updating
// Prometheus metrics after each step, then idles (holding the last values)
// until ctx is cancelled so the server stays up for scraping.
func runAndReport(ctx context.Context, l *learner.Learner, examples []*learner.Example, log *logrus.Logger) {
	var prevFP, prevFN int64
	for _, ex := range examples {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := l.Step(ctx, ex); err != nil {
			log.WithError(err).WithField("example", ex.ID).Error("serve-metrics: step failed, aborting run")
			return
		}
		metrics.StepLatencySeconds.Observe(time.Since(start).Seconds())
		metrics.ExamplesProcessed.Inc()

		stats := l.Stats()
		if stats.FP > prevFP || stats.FN > prevFN {
			metrics.Mistakes.Inc()
		}
		prevFP, prevFN = stats.FP, stats.FN
		metrics.CumulativeTruePositives.Set(float64(stats.TP))
		metrics.CumulativeFalsePositives.Set(float64(stats.FP))
		metrics.CumulativeFalseNegatives.Set(float64(stats.FN))
		metrics.TheoryTopClauseCount.WithLabelValues(logic.HeadInitiatedAt).Set(float64(len(l.Theory().Initiation)))
		metrics.TheoryTopClauseCount.WithLabelValues(logic.HeadTerminatedAt).Set(float64(len(l.Theory().Termination)))
	}
	<-ctx.Done()
}
