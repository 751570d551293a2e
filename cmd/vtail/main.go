package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/vtail/internal/config"
	"github.com/TimelordUK/vtail/internal/source"
	"github.com/TimelordUK/vtail/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vtail: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "Config file (default "+config.GetConfigPath()+")")
	vendorFlag := flag.Bool("vendor", false, "Start with vendor frames collapsed")
	noWrapFlag := flag.Bool("nowrap", false, "Start with line wrapping disabled")
	linesFlag := flag.Int("n", -1, "Number of trailing lines to load")
	maxFlag := flag.Int("max", 0, "Maximum lines kept in memory")
	logFlag := flag.String("log", os.Getenv("VTAIL_LOG"), "Write debug log to file")
	writeConfigFlag := flag.Bool("write-config", false, "Write the effective config and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vtail [flags] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 && !*writeConfigFlag {
		flag.Usage()
		os.Exit(2)
	}

	if *logFlag != "" {
		f, err := tea.LogToFile(*logFlag, "vtail")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var cfg *config.Config
	var err error
	if *configFlag != "" {
		cfg, err = config.LoadFrom(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if *vendorFlag {
		cfg.Display.HideVendor = true
	}
	if *noWrapFlag {
		cfg.Display.WrapLines = false
	}
	if *linesFlag >= 0 {
		cfg.Tail.Lines = *linesFlag
	}
	if *maxFlag > 0 {
		cfg.Tail.MaxLines = *maxFlag
	}

	if *writeConfigFlag {
		return writeConfig(cfg, *configFlag)
	}

	feed, err := source.NewFileSource(flag.Arg(0))
	if err != nil {
		return err
	}

	model, err := ui.NewModel(feed, cfg)
	if err != nil {
		feed.Close()
		return err
	}
	defer model.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func writeConfig(cfg *config.Config, path string) error {
	if path == "" {
		path = config.GetConfigPath()
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	} else if err := config.SaveTo(cfg, path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Println(path)
	return nil
}
