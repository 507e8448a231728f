package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilesynth/internal/platform/tui"
	"github.com/vovakirdan/tilesynth/internal/render"
	"github.com/vovakirdan/tilesynth/internal/storage"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

var (
	flagLimit  int
	flagBrowse bool
)

var historyCmd = &cobra.Command{
	Use:   "history [map]",
	Short: "Show recorded runs",
	Long: `Lists the most recent runs, optionally only those of one map.

Examples:
  tilesynth history
  tilesynth history islands --limit 5
  tilesynth history --browse
  tilesynth history show 12
  tilesynth history delete 12`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryDelete,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse runs interactively")
	historyShowCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Print without colors")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	store := openStore(cfg)
	defer store.Close()

	if flagBrowse {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, newPalette(cfg), width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	mapID := ""
	if len(args) > 0 {
		mapID = args[0]
	}

	runs, err := store.RecentRuns(mapID, flagLimit)
	if err != nil {
		fatalf("retrieving runs: %v", err)
	}
	total, err := store.CountRuns(mapID)
	if err != nil {
		fatalf("counting runs: %v", err)
	}

	title := "all maps"
	if mapID != "" {
		title = mapID
	}
	fmt.Printf("Recent runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tilesynth generate <map> --save' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-12s  %-20s  %-7s  %-7s  %-6s  %s\n", "ID", "Map", "Seed", "Size", "Order", "Contra", "Date")
	fmt.Printf("  %-5s  %-12s  %-20s  %-7s  %-7s  %-6s  %s\n", "--", "---", "----", "----", "-----", "------", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-12s  %-20d  %-7s  %-7s  %-6d  %s\n",
			r.ID, r.MapID, r.Seed, fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Order, r.Contradictions, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Showing %d of %d runs.\n", len(runs), total)
}

func parseRunID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fatalf("invalid run id %q", s)
	}
	return id
}

func runHistoryShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	id := parseRunID(args[0])

	store := openStore(cfg)
	defer store.Close()

	run, err := store.GetRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		store.Close()
		fatalf("no run with id %d", id)
	}
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}

	fmt.Printf("Run #%d - %s, seed %d, %dx%d, %s order, %d contradictions, %s\n",
		run.ID, run.MapID, run.Seed, run.Width, run.Height, run.Order,
		run.Contradictions, run.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()

	palette := newPalette(cfg).WithFallback(wfc.TileID(run.Fallback))
	if flagNoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(render.Plain(run.Output, palette))
		return
	}
	fmt.Println(render.Styled(render.GridScreen(run.Output, palette)))
}

func runHistoryDelete(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	id := parseRunID(args[0])

	store := openStore(cfg)
	defer store.Close()

	if err := store.DeleteRun(id); err != nil {
		store.Close()
		fatalf("%v", err)
	}
	fmt.Printf("Deleted run #%d\n", id)
}
