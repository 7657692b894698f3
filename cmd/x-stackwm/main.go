package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ItsNotGoodName/x-stackwm/internal/app"
	"github.com/ItsNotGoodName/x-stackwm/internal/build"
	"github.com/ItsNotGoodName/x-stackwm/internal/bus"
	"github.com/ItsNotGoodName/x-stackwm/internal/config"
	"github.com/ItsNotGoodName/x-stackwm/internal/core"
	"github.com/ItsNotGoodName/x-stackwm/internal/status"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/ItsNotGoodName/x-stackwm/internal/xwm"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jezek/xgb"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const name = "x-stackwm"

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"status host to listen on"`
	Port   int    `doc:"status port to listen on, 0 disables the status server" default:"8080"`
	Config string `doc:"config file" default:".x-stackwm.yaml"`
}

func main() {
	godotenv.Load()

	var opts *Options
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		opts = options

		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			return serve(ctx, options)
		})
	})

	cli.Root().Use = name
	cli.Root().Version = build.Current.String()
	cli.Root().AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the normalized configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts.Config)
			if err != nil {
				return err
			}
			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}
			cfg, _ = config.Normalize(cfg)
			pp.Println(cfg)
			return nil
		},
	})

	cli.Run()
}

func openStore(path string) (config.Store, error) {
	configFilePath, err := filepath.Abs(path)
	if err != nil {
		return config.Store{}, err
	}
	return config.NewStore(config.NewDriver(configFilePath))
}

func serve(ctx context.Context, options *Options) error {
	configFilePath, err := filepath.Abs(options.Config)
	if err != nil {
		return err
	}

	store, err := config.NewStore(config.NewDriver(configFilePath))
	if err != nil {
		return err
	}

	if err := config.NormalizeStore(&store); err != nil {
		return err
	}

	cfg, err := store.GetConfig()
	if err != nil {
		return err
	}

	policy, err := app.Policy(cfg)
	if err != nil {
		return err
	}

	xOptions, err := app.Options(name, cfg)
	if err != nil {
		return err
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	x, err := xwm.Open(conn, xOptions)
	if err != nil {
		return err
	}
	defer x.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	b := bus.New()
	statusStore := status.NewStore(status.NewMetrics(reg))
	defer statusStore.Subscribe(b)()

	desktop := wm.NewDesktop(x, x, b, policy, x.Heads())
	loop := xwm.NewLoop(x, desktop, xwm.DefaultBindings())
	watcher := config.NewWatcher(configFilePath)

	services := app.Services{
		Loop:     loop,
		Watcher:  watcher,
		Reloader: app.NewReloader(&store, watcher.Changes(), loop),
	}
	if options.Port != 0 {
		services.Status = status.NewServer(
			core.Address(options.Host, options.Port),
			status.NewRouter(statusStore, reg, build.Current.Version),
		)
	}

	return app.NewSupervisor(services).Serve(ctx)
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
