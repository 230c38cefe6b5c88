package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ntfsview/ntfsview/internal/cache"
	"github.com/ntfsview/ntfsview/internal/config"
	"github.com/ntfsview/ntfsview/internal/elevation"
	"github.com/ntfsview/ntfsview/internal/fuzzyindex"
	"github.com/ntfsview/ntfsview/internal/log"
	"github.com/ntfsview/ntfsview/internal/mftdiff"
	"github.com/ntfsview/ntfsview/internal/pipeline"
	"github.com/ntfsview/ntfsview/internal/presentation"
	"github.com/ntfsview/ntfsview/internal/volume"
)

var mftCmd = &cobra.Command{
	Use:   "mft",
	Short: "Acquire, cache, inspect, and search Master File Table dumps",
}

func init() {
	Root.AddCommand(mftCmd)
	mftCmd.AddCommand(mftDumpCmd, mftSyncCmd, mftShowCmd, mftQueryCmd, mftDiffCmd)

	mftDumpCmd.Flags().Bool("overwrite-existing", false, "overwrite the output file if it already exists")

	mftSyncCmd.Flags().Bool("overwrite-existing", false, "overwrite cached files that already exist")

	mftShowCmd.Flags().Bool("verbose", false, "accepted but has no effect on the terminal UI")
	mftShowCmd.Flags().Bool("show-paths", false, "accepted but has no effect on the terminal UI")
	mftShowCmd.Flags().Int("max-entries", 0, "accepted but has no effect; every discovered entry is retained")
	mftShowCmd.Flags().IntP("threads", "j", 0, "accepted but has no effect; one worker runs per matched file")

	mftQueryCmd.Flags().String("drive-pattern", "*", "drive-letter pattern to query (see pattern grammar)")
	mftQueryCmd.Flags().Int("limit", 50, "maximum number of results to print")
	mftQueryCmd.Flags().Duration("display-interval", time.Second, "interval between intermediate result prints")
	mftQueryCmd.Flags().Int("top", 0, "print only the top N results (0 = use --limit)")

	mftDiffCmd.Flags().Bool("verbose", false, "print every difference found, not just the first")
	mftDiffCmd.Flags().Int("max-diffs", 10, "maximum number of differences to print in verbose mode")
}

var mftDumpCmd = &cobra.Command{
	Use:   "dump <drive-pattern> <output-path>",
	Short: "Dump one or more drives' raw MFT byte stream to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, outputPath := args[0], args[1]
		overwrite, _ := cmd.Flags().GetBool("overwrite-existing")
		return runDump(pattern, outputPath, overwrite)
	},
}

func runDump(pattern, outputPath string, overwrite bool) error {
	elevated, err := elevation.IsElevated()
	if err != nil && !errors.Is(err, elevation.ErrUnsupportedPlatform) {
		return err
	}
	if !elevated {
		log.Warnf("elevation", "program needs to be run with elevated privileges; relaunching")
		argv := append([]string{"mft", "dump", pattern, outputPath}, dumpRelaunchFlags(overwrite)...)
		code, err := elevation.Relaunch(argv)
		if err != nil {
			return errors.Wrap(err, "relaunch as administrator")
		}
		os.Exit(code)
	}

	drives, err := cache.ResolvePattern(pattern)
	if err != nil {
		return err
	}

	if len(drives) > 1 && !strings.Contains(outputPath, "%s") {
		return errors.Errorf("output path must contain '%%s' when multiple drives are specified (drives: %s)", string(drives))
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, driveLetter := range drives {
		driveLetter := driveLetter
		path := outputPath
		if strings.Contains(outputPath, "%s") {
			path = strings.ReplaceAll(outputPath, "%s", string(driveLetter))
		}
		g.Go(func() error {
			return dumpOneDrive(driveLetter, path, overwrite)
		})
	}
	return g.Wait()
}

func dumpOneDrive(driveLetter byte, outputPath string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return errors.Errorf("output file %q already exists; pass --overwrite-existing", outputPath)
		}
	}

	if _, err := volume.IsNTFS(driveLetter); err != nil {
		return errors.Wrapf(err, "drive %c", driveLetter)
	}

	data, err := volume.ReadMFT(driveLetter)
	if err != nil {
		return errors.Wrapf(err, "drive %c: read MFT", driveLetter)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "drive %c: write %s", driveLetter, outputPath)
	}
	log.Infof(fmt.Sprintf("drive %c:", driveLetter), "dumped %d bytes to %s", len(data), outputPath)
	return nil
}

func dumpRelaunchFlags(overwrite bool) []string {
	if overwrite {
		return []string{"--overwrite-existing"}
	}
	return nil
}

var mftSyncCmd = &cobra.Command{
	Use:   "sync [drive-pattern]",
	Short: "Dump each matched drive's MFT into the configured cache directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}
		overwrite, _ := cmd.Flags().GetBool("overwrite-existing")

		dir, err := config.GetCacheDir()
		if err != nil {
			return err
		}
		return cache.Sync(context.Background(), dir, pattern, overwrite)
	},
}

var mftShowCmd = &cobra.Command{
	Use:   "show [drive-pattern]",
	Short: "Launch the terminal UI over matched cached MFT dumps",
	Long: `Launch the terminal UI over the cached <L>.mft dumps in the cache
directory whose drive letters match the optional drive-letter pattern
(default "*", every present drive). The argument is not a file glob.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}
		dir, err := config.GetCacheDir()
		if err != nil {
			return err
		}
		views, err := cache.Open(dir, pattern)
		if err != nil {
			return err
		}

		pipelineCtx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		index := fuzzyindex.New()
		sources := pipeline.Sources(views)
		events := pipeline.Run(pipelineCtx, sources, index)
		return presentation.Run(cmd.Context(), presentation.Config{
			DriveCount: len(sources),
			Events:     events,
			Index:      index,
			Cancel:     cancel,
		})
	},
}

var mftQueryCmd = &cobra.Command{
	Use:   "query <query>",
	Short: "Run the pipeline with the fuzzy index and print results to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		pattern, _ := cmd.Flags().GetString("drive-pattern")
		limit, _ := cmd.Flags().GetInt("limit")
		top, _ := cmd.Flags().GetInt("top")
		displayInterval, _ := cmd.Flags().GetDuration("display-interval")
		if top > 0 {
			limit = top
		}

		dir, err := config.GetCacheDir()
		if err != nil {
			return err
		}
		views, err := cache.Open(dir, pattern)
		if err != nil {
			return err
		}

		return runQuery(cmd.Context(), views, query, limit, displayInterval)
	},
}

func runQuery(ctx context.Context, views []cache.View, query string, limit int, displayInterval time.Duration) error {
	index := fuzzyindex.New()
	index.ReparsePattern(query)
	sources := pipeline.Sources(views)
	events := pipeline.Run(ctx, sources, index)

	ticker := time.NewTicker(displayInterval)
	defer ticker.Stop()

drain:
	for {
		select {
		case _, ok := <-events:
			if !ok {
				break drain
			}
		case <-ticker.C:
			index.Tick(100 * time.Millisecond)
			printMatches(index, limit)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for index.Tick(time.Second) {
	}
	printMatches(index, limit)
	return nil
}

func printMatches(index *fuzzyindex.Index, limit int) {
	count, items := index.Snapshot(0, limit)
	fmt.Printf("%d matches\n", count)
	for _, m := range items {
		fmt.Println(m.Text)
	}
}

var mftDiffCmd = &cobra.Command{
	Use:   "diff <file1> <file2>",
	Short: "Byte-level diff of two MFT dump files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		maxDiffs, _ := cmd.Flags().GetInt("max-diffs")

		a, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "read %s", args[0])
		}
		b, err := os.ReadFile(args[1])
		if err != nil {
			return errors.Wrapf(err, "read %s", args[1])
		}

		result := mftdiff.Compare(a, b, verbose, maxDiffs)
		fmt.Print(mftdiff.Summary(result))
		if verbose {
			for _, d := range result.Differences {
				fmt.Printf("byte %d: 0x%02X vs 0x%02X\n", d.Offset, d.A, d.B)
			}
		}
		if !result.Identical() {
			os.Exit(1)
		}
		return nil
	},
}
