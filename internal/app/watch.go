package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/dataset"
	"github.com/blackwell-systems/gradstat/internal/output"
	"github.com/blackwell-systems/gradstat/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the dataset loaded and reload it when the file changes",
	Long: `Load the dataset once, then watch the file and reload on every
change. Each reload builds the new dataset completely before swapping
it in, so queries never observe a half-loaded state; a failed reload
keeps the previous dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDataPath()
		if err != nil {
			return err
		}
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		fmt.Printf("watching %s (%d records loaded)\n", path, engine.Dataset().Len())

		w, err := watcher.New(path, engine)
		if err != nil {
			return err
		}
		w.OnReload = func(report *dataset.LoadReport, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed, keeping previous dataset: %v\n", err)
				return
			}
			output.RenderLoadReport(os.Stdout, report, nil)
		}

		if err := w.Start(); err != nil {
			return err
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received signal %v, shutting down\n", sig)

		return w.Stop()
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
