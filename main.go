package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var Version = "1.0.0"

var (
	currentDir, _ = os.Getwd()
	rootCmd       = &cobra.Command{
		Use:   "srcscan",
		Short: "Extract imports and notable comments from JS/TS, MDX, and CSS sources",
		Long: `A single-pass scanner for JavaScript/TypeScript, MDX, and CSS files.
Extracts import and export-from statements (classified as relative or external),
optionally strips comments matching configured prefixes, and reports notable
comments by output line number.`,
		Version: Version,
	}
)

var docsCmd = &cobra.Command{
	Use:   "doc-gen",
	Short: "Generate CLI documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := doc.GenMarkdownTree(rootCmd, "./docs")
		if err != nil {
			log.Fatal(err)
		}
		return nil
	},
}

// ---------------- shared flags ----------------

var (
	flagCwd     string
	flagExclude []string
	flagConfig  string
)

func addSharedFlags(command *cobra.Command) {
	command.Flags().StringVarP(&flagCwd, "cwd", "c", currentDir, "Working directory")
	command.Flags().StringArrayVar(&flagExclude, "exclude", nil, "Glob patterns excluded from discovery (repeatable)")
	command.Flags().StringVar(&flagConfig, "config", "", "Path to a srcscan config file")
}

// loadEffectiveConfig merges the optional config file with CLI flags; flags
// win when both supply a value.
func loadEffectiveConfig(cwd string) (*ScanConfig, error) {
	configPath := flagConfig
	if configPath == "" {
		configPath = cwd
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		if flagConfig == "" && os.IsNotExist(err) {
			return &ScanConfig{}, nil
		}
		return nil, err
	}
	if config == nil {
		config = &ScanConfig{}
	}
	if len(flagExclude) > 0 {
		config.Exclude = flagExclude
	}
	return config, nil
}

// collectInputFiles expands CLI args (files or directories) into the list of
// scannable files; no args means the working directory.
func collectInputFiles(args []string, cwd string, exclude []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{cwd}
	}

	var files []string
	for _, arg := range args {
		target := arg
		if !filepath.IsAbs(target) {
			target = filepath.Join(cwd, target)
		}
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			matchers := FindGitIgnoreMatchersUpToRepoRoot(target)
			matchers = append(matchers, CreateGlobMatchers(exclude, target)...)
			files = GetFiles(target, files, matchers)
		} else {
			files = append(files, target)
		}
	}
	return files, nil
}

// ---------------- parse ----------------

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [paths...]",
	Short: "Extract relative and external imports from source files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd := ResolveAbsoluteCwd(flagCwd)
		config, err := loadEffectiveConfig(cwd)
		if err != nil {
			return err
		}
		files, err := collectInputFiles(args, cwd, config.Exclude)
		if err != nil {
			return err
		}

		results, errCount := ParseFiles(files, nil)
		if errCount > 0 {
			fmt.Fprintf(os.Stderr, "warning: %d file(s) could not be read\n", errCount)
		}

		if parseJSON {
			return printJSONResults(results)
		}
		printTableResults(results)
		return nil
	},
}

type fileImportsJSON struct {
	FilePath  string          `json:"filePath"`
	Relative  []*ImportRecord `json:"relative"`
	Externals []*ImportRecord `json:"externals"`
}

func sortedRecords(records map[string]*ImportRecord) []*ImportRecord {
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*ImportRecord, 0, len(keys))
	for _, key := range keys {
		out = append(out, records[key])
	}
	return out
}

func printJSONResults(results []FileParseResult) error {
	out := make([]fileImportsJSON, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		out = append(out, fileImportsJSON{
			FilePath:  r.FilePath,
			Relative:  sortedRecords(r.Result.Relative),
			Externals: sortedRecords(r.Result.Externals),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTableResults(results []FileParseResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\n", r.FilePath)
		for _, record := range sortedRecords(r.Result.Relative) {
			fmt.Fprintf(w, "\trelative\t%s\t%s\n", record.Path, record.ResolvedURL)
		}
		for _, record := range sortedRecords(r.Result.Externals) {
			fmt.Fprintf(w, "\texternal\t%s\t\n", record.Path)
		}
	}
	w.Flush()
}

// ---------------- strip ----------------

var (
	stripPrefixes  []string
	stripNotable   []string
	stripWriteBack bool
)

var stripCmd = &cobra.Command{
	Use:   "strip [paths...]",
	Short: "Remove comments matching the given prefixes",
	Long: `Remove comments whose content starts with one of the --prefix values.
Stripped comments are reported on stderr with their output line numbers.
Without --write the processed text of a single file goes to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd := ResolveAbsoluteCwd(flagCwd)
		config, err := loadEffectiveConfig(cwd)
		if err != nil {
			return err
		}
		prefixes := stripPrefixes
		if len(prefixes) == 0 {
			prefixes = config.RemoveCommentsWithPrefix
		}
		if len(prefixes) == 0 {
			return fmt.Errorf("no comment prefixes given: use --prefix or removeCommentsWithPrefix in the config")
		}
		notable := stripNotable
		if len(notable) == 0 {
			notable = config.NotableCommentsPrefix
		}

		files, err := collectInputFiles(args, cwd, config.Exclude)
		if err != nil {
			return err
		}
		if !stripWriteBack && len(files) > 1 {
			return fmt.Errorf("stripping %d files to stdout is ambiguous: pass --write", len(files))
		}

		opts := &ParseOptions{RemoveCommentsWithPrefix: prefixes, NotableCommentsPrefix: notable}
		results, errCount := ParseFiles(files, opts)
		if errCount > 0 {
			fmt.Fprintf(os.Stderr, "warning: %d file(s) could not be read\n", errCount)
		}

		changed := map[string]string{}
		for _, r := range results {
			if r.Err != nil || r.Result.Stripped == nil {
				continue
			}
			changed[r.FilePath] = r.Result.Stripped.Code
			reportComments(os.Stderr, r.FilePath, r.Result.Comments)
		}

		if stripWriteBack {
			if err := ApplyProcessedFiles(changed); err != nil {
				return err
			}
			fmt.Printf("updated %d of %d file(s)\n", len(changed), len(files))
			return nil
		}
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if r.Result.Stripped != nil {
				fmt.Print(r.Result.Stripped.Code)
			} else {
				content, readErr := os.ReadFile(r.FilePath)
				if readErr == nil {
					fmt.Print(string(content))
				}
			}
		}
		return nil
	},
}

// ---------------- comments ----------------

var notablePrefixes []string

var commentsCmd = &cobra.Command{
	Use:   "comments [paths...]",
	Short: "Report notable comments by output line number",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd := ResolveAbsoluteCwd(flagCwd)
		config, err := loadEffectiveConfig(cwd)
		if err != nil {
			return err
		}
		notable := notablePrefixes
		if len(notable) == 0 {
			notable = config.NotableCommentsPrefix
		}
		if len(notable) == 0 {
			return fmt.Errorf("no notable prefixes given: use --notable or notableCommentsPrefix in the config")
		}

		files, err := collectInputFiles(args, cwd, config.Exclude)
		if err != nil {
			return err
		}

		results, errCount := ParseFiles(files, &ParseOptions{NotableCommentsPrefix: notable})
		if errCount > 0 {
			fmt.Fprintf(os.Stderr, "warning: %d file(s) could not be read\n", errCount)
		}
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			reportComments(os.Stdout, r.FilePath, r.Result.Comments)
		}
		return nil
	},
}

func reportComments(dst *os.File, filePath string, comments map[int][]string) {
	if len(comments) == 0 {
		return
	}
	lines := make([]int, 0, len(comments))
	for line := range comments {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	w := tabwriter.NewWriter(dst, 0, 4, 2, ' ', 0)
	for _, line := range lines {
		for _, fragment := range comments[line] {
			fmt.Fprintf(w, "%s:%d\t%s\n", filePath, line, fragment)
		}
	}
	w.Flush()
}

func init() {
	addSharedFlags(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output JSON instead of a table")

	addSharedFlags(stripCmd)
	stripCmd.Flags().StringArrayVar(&stripPrefixes, "prefix", nil, "Comment prefix to strip (repeatable)")
	stripCmd.Flags().StringArrayVar(&stripNotable, "notable", nil, "Comment prefix to report as notable (repeatable)")
	stripCmd.Flags().BoolVar(&stripWriteBack, "write", false, "Rewrite files in place")

	addSharedFlags(commentsCmd)
	commentsCmd.Flags().StringArrayVar(&notablePrefixes, "notable", nil, "Comment prefix to report (repeatable)")

	rootCmd.AddCommand(parseCmd, stripCmd, commentsCmd, docsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
