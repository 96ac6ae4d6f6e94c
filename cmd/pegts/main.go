// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/mdhender/pegts"
	"github.com/mdhender/pegts/check"
	"github.com/mdhender/pegts/pipelines/build"
	store "github.com/mdhender/pegts/stores/sqlite"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", true, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "pegts",
		Short: "typed TypeScript modules for generated parsers",
		Long:  `Wrap the JavaScript a parser generator emits in a typed TypeScript module.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags || logFlags == 0 {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Printf("pegts: version %q\n", pegts.Version().Core())
			}

			return nil
		},
	}
	cmdRoot.AddCommand(cmdGenerate())
	cmdRoot.AddCommand(cmdCheck())
	cmdRoot.AddCommand(cmdTree())
	cmdRoot.AddCommand(cmdInitDB())
	cmdRoot.AddCommand(cmdCache())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// logLevels returns the quiet, verbose, and debug flags, with quiet
// winning over verbose.
func logLevels(cmd *cobra.Command) (quiet, verbose, debug bool) {
	quiet, _ = cmd.Flags().GetBool("quiet")
	verbose, _ = cmd.Flags().GetBool("verbose")
	debug, _ = cmd.Flags().GetBool("debug")
	if quiet {
		verbose = false
	}
	return quiet, verbose, debug
}

// newLogger returns the structured logger handed to services.
func newLogger(quiet, verbose, debug bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func cmdGenerate() *cobra.Command {
	var cacheFile string
	var configFile string
	var errorName string
	var header string
	jobs := runtime.NumCPU()
	var outputFile string
	runCheck := false
	trace := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&cacheFile, "cache", cacheFile, "cache generated modules in this database")
		cmd.Flags().BoolVar(&runCheck, "check", runCheck, "check the generated module for syntax errors")
		cmd.Flags().StringVarP(&configFile, "config-file", "c", configFile, "load configuration from file")
		cmd.Flags().StringVar(&errorName, "error-name", errorName, "name of the exported syntax error type")
		cmd.Flags().StringVar(&header, "header", header, "text to emit near the top of the module")
		cmd.Flags().IntVarP(&jobs, "jobs", "j", jobs, "number of modules to generate at once")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save module to file (\"-\" for stdout)")
		cmd.Flags().BoolVar(&trace, "trace", trace, "export the default tracer")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "generate <grammar-output-file>...",
		Short:        "generate a typed module from compiler output",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1), // require at least one grammar output file
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			quiet, verbose, debug := logLevels(cmd)
			started := time.Now()

			var cfg pegts.Config
			if configFile != "" {
				var err error
				cfg, err = pegts.LoadConfig(afero.NewOsFs(), configFile)
				if err != nil {
					return err
				}
				if debug {
					log.Printf("generate: loaded config %q\n", configFile)
				}
			}
			// flags override the configuration file
			var options []pegts.Option
			if cmd.Flags().Changed("header") {
				options = append(options, pegts.WithHeader(header))
			}
			if cmd.Flags().Changed("error-name") {
				options = append(options, pegts.WithErrorName(errorName))
			}
			if cmd.Flags().Changed("trace") {
				options = append(options, pegts.WithTrace(trace))
			}
			for _, option := range options {
				if err := option(&cfg); err != nil {
					return err
				}
			}

			var cache build.Cache
			if cacheFile != "" {
				s, err := store.NewSQLiteStoreWithConfig(store.StoreConfig{Path: cacheFile, InitSchema: true})
				if err != nil {
					return err
				}
				defer s.Close()
				cache = s
			}

			if len(args) > 1 && outputFile != "" {
				return fmt.Errorf("--output can't be used with more than one input file")
			}
			var reqs []build.Request
			for _, input := range args {
				req := build.Request{InputPath: input, Config: cfg}
				switch outputFile {
				case "":
					req.OutputPath = build.OutputPath(input)
				case "-":
					// stdout, written below
				default:
					req.OutputPath = outputFile
				}
				reqs = append(reqs, req)
			}

			svc := build.NewService(cache, newLogger(quiet, verbose, debug))
			results, err := svc.GenerateAll(ctx, reqs, jobs)
			if err != nil {
				log.Printf("generate: %s: %v\n", build.ErrorCode(err), err)
				return err
			}

			for _, result := range results {
				if runCheck {
					name := result.OutputPath
					if name == "" {
						name = "<stdout>"
					}
					if err := reportDiagnostics(ctx, name, result.Output); err != nil {
						return err
					}
				}
				if result.OutputPath == "" {
					if _, err := os.Stdout.Write(result.Output); err != nil {
						return err
					}
					continue
				}
				if !quiet {
					log.Printf("%s: wrote %d bytes\n", result.OutputPath, len(result.Output))
				}
				if verbose {
					log.Printf("%s: cached %v\n", result.OutputPath, result.Cached)
				}
			}
			if verbose {
				log.Printf("generate: %d modules: completed in %v\n", len(results), time.Since(started))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdCheck() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "check <module-file>",
		Short:        "check a generated module for syntax errors",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _, _ := logLevels(cmd)
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := reportDiagnostics(context.Background(), args[0], src); err != nil {
				return err
			}
			if !quiet {
				log.Printf("%s: ok\n", args[0])
			}
			return nil
		},
	}
	return cmd
}

func cmdTree() *cobra.Command {
	var configFile string
	runGenerate := false
	asJSON := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&configFile, "config-file", "c", configFile, "load configuration from file")
		cmd.Flags().BoolVar(&runGenerate, "generate", runGenerate, "show the tree after the generate pass")
		cmd.Flags().BoolVar(&asJSON, "json", asJSON, "print the tree as grammar output JSON")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "tree <grammar-output-file>",
		Short:        "show the code tree of a grammar output file",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			data, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return err
			}
			grammar, err := pegts.DecodeGrammar(data)
			if err != nil {
				return err
			}
			if runGenerate {
				var cfg pegts.Config
				if configFile != "" {
					if cfg, err = pegts.LoadConfig(fs, configFile); err != nil {
						return err
					}
				}
				if err := grammar.Generate(cfg); err != nil {
					return err
				}
			}
			if grammar.Code == nil {
				return pegts.ErrMissingCode
			}

			if asJSON {
				out, err := grammar.MarshalJSON()
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(append(out, '\n'))
				return err
			}
			return pegts.WriteOutline(os.Stdout, grammar.Code)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

// reportDiagnostics prints the syntax errors in src to stderr.
func reportDiagnostics(ctx context.Context, name string, src []byte) error {
	diags, err := check.Source(ctx, src)
	if err != nil {
		return err
	}
	for _, diag := range diags {
		pegts.PrintDiagnostic(os.Stderr, diag, name, src)
	}
	if len(diags) != 0 {
		return &build.ErrSyntax{Path: name, Count: len(diags)}
	}
	return nil
}

func cmdInitDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "init-db <database-file>",
		Short:        "create a cache database",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.InitDatabase(args[0]); err != nil {
				return err
			}
			log.Printf("%s: created\n", args[0])
			return nil
		},
	}
	return cmd
}

func cmdCache() *cobra.Command {
	var cacheFile string
	var cmd = &cobra.Command{
		Use:   "cache",
		Short: "inspect and maintain the cache database",
	}
	cmd.PersistentFlags().StringVar(&cacheFile, "cache", cacheFile, "cache database")
	if err := cmd.MarkPersistentFlagRequired("cache"); err != nil {
		log.Fatal(err)
	}

	openStore := func() (*store.SQLiteStore, error) {
		return store.NewSQLiteStoreWithConfig(store.StoreConfig{Path: cacheFile})
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "list",
		Short:        "list cached modules",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			generations, err := s.ListGenerations(context.Background())
			if err != nil {
				return err
			}
			for _, g := range generations {
				fmt.Printf("%s  %-24s  %-20s  trace=%-5v  %8d  %s\n",
					g.Key[:12], g.InputName, g.ErrorName, g.Trace, g.Bytes(), g.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	})

	var olderThan time.Duration
	prune := &cobra.Command{
		Use:          "prune",
		Short:        "remove old cached modules",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			n, err := s.DeleteGenerationsBefore(context.Background(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			log.Printf("%s: pruned %d modules\n", cacheFile, n)
			return nil
		},
	}
	prune.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "remove modules older than this")
	cmd.AddCommand(prune)

	cmd.AddCommand(&cobra.Command{
		Use:          "compact",
		Short:        "compact the cache database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.CompactDatabase(cacheFile)
		},
	})

	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(pegts.Version().String())
				return nil
			}
			fmt.Println(pegts.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
