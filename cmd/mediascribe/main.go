package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/mediascribe/internal/auth"
	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/httpapi"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/processor"
	"github.com/nguyentantai21042004/mediascribe/internal/watcher"
)

const usage = `Usage: mediascribe [-config config.yaml] <command> [flags]

Commands:
  serve     run the HTTP API
  watch     process media dropped into paths.input
  analyze   analyze one file or URL and print the transcript
  token     issue an API bearer token
`

func main() {
	fs := flag.NewFlagSet("mediascribe", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "serve":
		err = runServe(ctx, cfg, log)
	case "watch":
		err = runWatch(ctx, cfg, log)
	case "analyze":
		err = runAnalyze(ctx, cfg, log, args)
	case "token":
		err = runToken(cfg, args)
	default:
		fs.Usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%s failed: %v", cmd, err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var jwtService *auth.JWTService
	if cfg.Auth.Secret != "" {
		jwtService = auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.ExpireHours)
	} else {
		log.Warn(ctx, "auth.secret not set; API is unauthenticated")
	}

	srv := httpapi.New(cfg, httpapi.Deps{
		Processor: a.processor,
		Intake:    a.intake,
		Archive:   a.archive,
		Exporter:  a.exporter,
		Metrics:   a.metrics,
		JWT:       jwtService,
		Logger:    log,
	})
	return srv.Run(ctx)
}

func runWatch(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if err := ensureDirectories(cfg); err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Media transcription inbox")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Max concurrent analyses: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Press Ctrl+C to stop")

	w, err := watcher.New(cfg.Paths.Input, a.processor.Process, log, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		ScanExisting:  true,
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	err = w.Start(ctx)
	log.Info(ctx, "Inbox watcher stopped")
	return err
}

func runAnalyze(ctx context.Context, cfg *config.Config, log logger.Logger, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	file := fs.String("file", "", "local audio or video file")
	link := fs.String("url", "", "direct link to an audio or video file")
	language := fs.String("language", cfg.Gemini.Language, "output language")
	title := fs.String("title", "", "archive title (defaults to the file name)")
	folder := fs.String("folder", "", "archive folder id")
	save := fs.Bool("save", true, "save the result to the archive")
	format := fs.String("format", "txt", "output format: txt, pdf, doc or docx")
	fs.Parse(args)

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var d media.Descriptor
	switch {
	case *file != "":
		d, err = a.intake.FromFile(ctx, *file)
	case *link != "":
		d, err = a.intake.FromURL(ctx, *link)
	default:
		return fmt.Errorf("analyze needs -file or -url")
	}
	if err != nil {
		return err
	}

	resp, err := a.processor.Analyze(ctx, processor.Request{
		Media:    d,
		Language: *language,
		Title:    *title,
		FolderID: *folder,
		Save:     *save,
	})
	if err != nil && !errors.Is(err, processor.ErrNotArchived) {
		return err
	}
	if err != nil {
		log.Warn(ctx, "%v", err)
	}
	if resp.Outcome.Degraded() {
		log.Warn(ctx, "Model reply was %s; printing fallback result", resp.Outcome.Kind)
	}

	doc := export.Document{Title: *title, Result: resp.Outcome.Result}
	if doc.Title == "" {
		doc.Title = d.Name
	}
	if resp.Record != nil {
		doc.Date = resp.Record.Date
		log.Info(ctx, "Archived as %s", resp.Record.ID)
	}
	return a.exporter.Render(ctx, os.Stdout, f, doc)
}

func runToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "operator", "token subject")
	fs.Parse(args)

	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth.secret (or AUTH_SECRET) must be set to issue tokens")
	}
	token, err := auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.ExpireHours).Generate(*subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
