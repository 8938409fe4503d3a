// Paintmix — CLI для работы с палитрой смешанных красок.
//
// Использование:
//
//	./paintmix import -file snapshot.yaml
//	./paintmix import -s3 palettes/
//	./paintmix snapshots
//	./paintmix duplicates
//	./paintmix match -color "#87CEEB" -limit 5
//	./paintmix match -image swatch.jpg
//	./paintmix rename -from 天蓝 -to 湖蓝
//
// Общие флаги (-config, -debug, -json) идут перед подкомандой.
// config.yaml ищется рядом с бинарником, затем в текущей директории.
// Без конфига используются дефолты.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ilkoid/paintmix/pkg/app"
	"github.com/ilkoid/paintmix/pkg/config"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// Version — версия утилиты (заполняется при сборке)
var Version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config.yaml (default: next to binary or ./config.yaml)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format")
		showVersion = flag.Bool("version", false, "Show version")
	)
	flag.Usage = printHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("paintmix version %s\n", Version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		printHelp()
		os.Exit(2)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", flag.Arg(0))
		printHelp()
		os.Exit(2)
	}

	// 1. Конфиг
	finder := &app.StandaloneConfigPathFinder{ConfigFlag: *configPath}
	cfg, cfgPath, err := app.InitializeConfig(finder, *configPath != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.App.Debug = true
	}

	// 2. Логгер
	if err := utils.InitLogger(cfg.App.LogDir, cfg.App.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()
	utils.Info("paintmix started", "command", flag.Arg(0), "config", cfgPath, "version", Version)

	// 3. Ctrl+C отменяет долгие операции (импорт из S3)
	ctx, stop := utils.SetupGracefulShutdown()
	defer stop()

	if err := run(ctx, cmd, flag.Args()[1:], *jsonOutput, cfg); err != nil {
		utils.Error("command failed", "command", flag.Arg(0), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		utils.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd command, args []string, jsonOut bool, cfg *config.AppConfig) error {
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	exec := cmd.setup(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	comps, err := app.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.Close()

	out := newPrinter(os.Stdout, comps.Renderer, jsonOut)
	return exec(ctx, comps, out)
}

// printHelp выводит справку
func printHelp() {
	fmt.Fprintln(os.Stderr, "Paintmix — дубликаты рецептур, подбор цвета и переименование пигментов")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  paintmix [flags] <command> [command flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config string  Path to config.yaml")
	fmt.Fprintln(os.Stderr, "  -debug          Enable debug logging")
	fmt.Fprintln(os.Stderr, "  -json           Output in JSON format")
	fmt.Fprintln(os.Stderr, "  -version        Show version")
}
