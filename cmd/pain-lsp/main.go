package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"pain/internal/config"
	"pain/internal/lsp"
	"pain/internal/prof"
	"pain/internal/version"
)

var log = commonlog.GetLogger("pain.cli")

var rootCmd = &cobra.Command{
	Use:   "pain-lsp",
	Short: "Language server and checker for Pain",
	Long: `pain-lsp speaks the Language Server Protocol over stdio and reports
diagnostics, completions and hover for Pain source files.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	// settings is the resolved configuration shared by all commands.
	settings config.Config
	profiler *prof.Session
)

// main registers subcommands and persistent flags, then executes the root
// command. A command error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to "+config.FileName+" (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().Int("verbosity", -1, "log verbosity: 0 warnings, 1 notices, 2 info, 3 debug (default from config)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to file")

	err := rootCmd.Execute()
	stopProfiling()
	if err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

// exitError ends the process with code without printing anything more.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	mode, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}

	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(path, ".")
	if err != nil {
		return err
	}
	if v, _ := flags.GetInt("verbosity"); v >= 0 {
		cfg.Log.Verbosity = v
	}
	if file, _ := flags.GetString("log-file"); file != "" {
		cfg.Log.File = file
	}
	settings = cfg

	// stdout занят протоколом, поэтому логи только в stderr или файл
	if cfg.Log.File != "" {
		commonlog.Configure(cfg.Log.Verbosity, &cfg.Log.File)
	} else {
		commonlog.Configure(cfg.Log.Verbosity, nil)
	}
	log.Debugf("configuration: %+v", cfg)

	var popts prof.Options
	popts.CPU, _ = flags.GetString("cpuprofile")
	popts.Mem, _ = flags.GetString("memprofile")
	popts.Trace, _ = flags.GetString("trace")
	if popts.Enabled() {
		if profiler, err = prof.Start(popts); err != nil {
			return err
		}
	}
	return nil
}

func stopProfiling() {
	if profiler == nil {
		return
	}
	if err := profiler.Stop(); err != nil {
		log.Errorf("profiling: %v", err)
	}
	profiler = nil
}

// serverOptions maps the configuration onto the language server.
func serverOptions(cfg config.Config) lsp.ServerOptions {
	return lsp.ServerOptions{
		Backend: backendOptions(cfg),
		Workers: cfg.Server.Workers,
		Version: version.Version,
	}
}

func backendOptions(cfg config.Config) lsp.Options {
	return lsp.Options{
		MaxDocumentSize: cfg.Documents.MaxSize,
		MaxCacheEntries: cfg.Cache.MaxEntries,
		Completion: lsp.CompletionOptions{
			MaxDetailed:         cfg.Completion.MaxDetailed,
			MaxBuiltins:         cfg.Completion.MaxBuiltins,
			BuiltinDetailCutoff: cfg.Completion.BuiltinDetailCutoff,
		},
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
