package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/soocke/screen-recorder-go/app"
	"github.com/soocke/screen-recorder-go/config"
	"github.com/soocke/screen-recorder-go/debug"
	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/capture"
)

var version = "dev"

const debugInterval = 10 * time.Second

type rootFlags struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "screen-recorder",
		Short:         "Record a screen region with microphone and system audio",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), f)
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVar(&f.debug, "debug", false, "debug logging and runtime stats")

	root.AddCommand(
		&cobra.Command{
			Use:   "gui",
			Short: "Open the control window (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runGUI(cmd.Context(), f)
			},
		},
		newRecordCmd(f),
		newDevicesCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// setup loads the config and logger shared by all recording commands.
func setup(ctx context.Context, f *rootFlags) (*config.Config, *slog.Logger) {
	cfg, err := config.Load(f.configPath)
	if f.debug {
		cfg.Debug = true
	}
	logger := NewLogger(levelFor(cfg.Debug))
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", f.configPath, "error", err)
	}
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, debugInterval, logger)
		debug.StartMemLogger(ctx, debugInterval, logger)
	}
	return cfg, logger
}

func runGUI(ctx context.Context, f *rootFlags) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cfg, logger := setup(ctx, f)
	c := app.BuildContainer(cfg, f.configPath, logger)
	app.NewApp("Screen Recorder", 560, 520, c).Start()
	return nil
}

func newRecordCmd(f *rootFlags) *cobra.Command {
	var (
		duration    time.Duration
		region      string
		fps         float64
		codec       string
		audioSource string
		output      string
		noCountdown bool
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record without a window until --duration or Ctrl+C",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cfg, logger := setup(ctx, f)

			flags := cmd.Flags()
			if flags.Changed("region") {
				r, err := capture.ParseRegion(region)
				if err != nil {
					return err
				}
				cfg.SetRegion(r)
			}
			if flags.Changed("fps") {
				cfg.FPS = fps
			}
			if flags.Changed("codec") {
				cfg.Codec = codec
			}
			if flags.Changed("audio") {
				cfg.AudioSource = audioSource
			}
			if flags.Changed("output") {
				cfg.OutputDir = output
			}
			if noCountdown {
				cfg.ShowCountdown = false
			}
			_ = cfg.Validate()

			c := app.BuildContainer(cfg, f.configPath, logger)
			c.CheckEncoder()
			opts, err := c.Options()
			if err != nil {
				return err
			}
			h := &app.Headless{
				Recorder:  c.Controller,
				Logger:    logger,
				Duration:  duration,
				Countdown: c.CountdownSeconds(),
			}
			res, err := h.Run(ctx, opts)
			if err != nil {
				if res.TempDir != "" {
					logger.Error("recording not saved, temporary files kept", "temp", res.TempDir, "error", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s, %s)\n",
				res.OutputPath, humanize.Bytes(uint64(max(res.Size, 0))), res.Duration.Round(time.Second))
			if res.VideoErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: capture stopped early: %v\n", res.VideoErr)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.DurationVar(&duration, "duration", 0, "stop after this long (0 waits for Ctrl+C)")
	fl.StringVar(&region, "region", "", `capture region "x,y,w,h" or "WxH+X+Y" (default: config, else full screen)`)
	fl.Float64Var(&fps, "fps", 30, "target frame rate")
	fl.StringVar(&codec, "codec", "MJPG", "video codec: MJPG, XVID, MP4V or H264")
	fl.StringVar(&audioSource, "audio", "Microphone", "audio source: None, Microphone, SystemAudio or Both")
	fl.StringVar(&output, "output", "", "output folder")
	fl.BoolVar(&noCountdown, "no-countdown", false, "start immediately")
	return cmd
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio capture devices usable as mic_device or system_device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			devices, err := audio.ListDevices()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DEFAULT\tKIND\tNAME\tID")
			for _, d := range devices {
				def := ""
				if d.Default {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def, d.Kind, d.Name, d.ID)
			}
			return w.Flush()
		},
	}
}
