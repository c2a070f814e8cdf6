package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pain/internal/diagfmt"
	"pain/internal/lsp"
)

const sourceExt = ".pain"

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.pain|directory>...",
	Short: "Report diagnostics for Pain source files",
	Long: `Runs the same analysis the language server publishes over files, or over
every *.pain file below a directory, and prints the diagnostics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack)")
	checkCmd.Flags().Bool("timings", false, "show per-phase analysis timings")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Int("max-diagnostics", 0, "maximum number of diagnostics in json/msgpack output (0=all)")
}

// runCheck analyzes every input, prints the reports in input order and fails
// when any error (or, with --warnings-as-errors, any warning) was found.
func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	formatName, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return err
	}
	showTimings, _ := flags.GetBool("timings")
	noWarnings, _ := flags.GetBool("no-warnings")
	warningsAsErrors, _ := flags.GetBool("warnings-as-errors")
	fullPath, _ := flags.GetBool("fullpath")
	jobs, _ := flags.GetInt("jobs")
	maxDiagnostics, _ := flags.GetInt("max-diagnostics")

	files, err := collectSources(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", sourceExt)
	}

	reports, err := checkFiles(files, backendOptions(settings), jobs)
	if err != nil {
		return err
	}
	if noWarnings {
		for i := range reports {
			reports[i].Diagnostics = slices.DeleteFunc(reports[i].Diagnostics, func(d lsp.Diagnostic) bool {
				return d.Severity == lsp.SeverityWarning
			})
		}
	}

	pathMode := diagfmt.PathModeAsIs
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	switch format {
	case diagfmt.FormatPretty:
		err = diagfmt.Pretty(out, reports, diagfmt.PrettyOpts{Color: !color.NoColor, PathMode: pathMode, Context: true})
	case diagfmt.FormatShort:
		err = diagfmt.Short(out, reports, pathMode)
	case diagfmt.FormatJSON, diagfmt.FormatMsgpack:
		opts := diagfmt.JSONOpts{PathMode: pathMode, Max: maxDiagnostics, IncludeTimings: showTimings, Indent: true}
		if format == diagfmt.FormatJSON {
			err = diagfmt.JSON(out, reports, opts)
		} else {
			err = diagfmt.Msgpack(out, reports, opts)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write diagnostics: %w", err)
	}
	if showTimings && (format == diagfmt.FormatPretty || format == diagfmt.FormatShort) {
		printTimings(cmd, reports)
	}

	errs, warns := diagfmt.Count(reports)
	log.Infof("checked %d files: %d errors, %d warnings", len(reports), errs, warns)
	if errs > 0 || (warningsAsErrors && warns > 0) {
		return exitError{code: 1}
	}
	return nil
}

// checkFiles analyzes files on a bounded worker group. Reports keep the
// order of files.
func checkFiles(files []string, opts lsp.Options, jobs int) ([]diagfmt.FileReport, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	backend := lsp.NewBackend(nil, opts)
	maxSize := backend.Documents().MaxSize()
	reports := make([]diagfmt.FileReport, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			// #nosec G304 -- paths come from the command line
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if len(data) > maxSize {
				return fmt.Errorf("%s: %d bytes: %w", path, len(data), lsp.ErrDocumentTooLarge)
			}
			text := string(data)
			diags, timer := backend.AnalyzeTimed(text)
			report := timer.Report()
			reports[i] = diagfmt.FileReport{Path: path, Text: text, Diagnostics: diags, Timings: &report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// collectSources expands directories into their *.pain files, sorted.
// Explicit file arguments are taken as given.
func collectSources(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && filepath.Ext(path) == sourceExt {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}

func printTimings(cmd *cobra.Command, reports []diagfmt.FileReport) {
	errOut := cmd.ErrOrStderr()
	for _, r := range reports {
		if r.Timings == nil {
			continue
		}
		fmt.Fprintf(errOut, "%s: %s", r.Path, r.Timings.Summary())
	}
}
