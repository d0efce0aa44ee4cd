package main

import (
	"fmt"
	"io"
	"os"

	"scroll-map/canvas"
	"scroll-map/config"
	"scroll-map/log"
	"scroll-map/scrollmap"
	"scroll-map/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"

	configFlag  string
	nodesFlag   string
	logFileFlag bool
	restoreFlag bool

	outFlag    string
	panFlag    []float64
	zoomFlag   int
	cursorFlag []float64

	writeFlag bool

	rootCmd = &cobra.Command{
		Use:   "scrollmap",
		Short: "Scroll Map - pan and zoom around a set of map nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(logFileFlag)
			defer log.Close()

			cfg, sm, err := setup()
			if err != nil {
				return err
			}
			fonts := canvas.NewFonts(canvas.LoadFontData(cfg.FontFile))
			defer fonts.Close()

			ebiten.SetWindowSize(cfg.Width, cfg.Height)
			ebiten.SetWindowTitle(cfg.Title)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

			if err := ebiten.RunGame(NewGame(cfg, sm, fonts)); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			return nil
		},
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Render a single frame to a PNG file without opening a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(logFileFlag)
			defer log.Close()

			cfg, sm, err := setup()
			if err != nil {
				return err
			}
			events, err := snapshotEvents(sm.Viewport, panFlag, zoomFlag, cursorFlag)
			if err != nil {
				return err
			}

			f, err := os.Create(outFlag)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := renderSnapshot(cfg, sm, events, f); err != nil {
				return err
			}
			log.InfoLog.Printf("snapshot written to %s: %s", outFlag, sm.Viewport)
			fmt.Println("wrote " + outFlag)
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if writeFlag {
				if err := config.Save(cfg, configFlag); err != nil {
					return err
				}
				fmt.Println("wrote " + configFlag)
				return nil
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of scrollmap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scrollmap version %s\n", version)
		},
	}
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return cfg, err
	}
	if nodesFlag != "" {
		cfg.NodesFile = nodesFlag
	}
	return cfg, nil
}

func setup() (config.Config, *scrollmap.ScrollMap, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	sm, err := scrollmap.New(cfg, nil)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load map: %w", err)
	}
	if restoreFlag {
		if err := sm.LoadState(cfg.StateFile); err != nil {
			log.WarningLog.Printf("could not restore view: %v", err)
		}
	}
	return cfg, sm, nil
}

// snapshotEvents builds the events for a headless render: one drag, then one
// scroll notch per zoom step at cursor (screen centre if empty).
func snapshotEvents(vp *viewport.Viewport, pan []float64, zoom int, cursor []float64) ([]viewport.Event, error) {
	var events []viewport.Event
	switch len(pan) {
	case 0:
	case 2:
		events = append(events, viewport.Drag{Delta: viewport.Pt(pan[0], pan[1])})
	default:
		return nil, fmt.Errorf("--pan takes dx,dy, got %v", pan)
	}

	at := vp.ScreenCenter()
	switch len(cursor) {
	case 0:
	case 2:
		at = viewport.Pt(cursor[0], cursor[1])
	default:
		return nil, fmt.Errorf("--cursor takes x,y, got %v", cursor)
	}

	dir := 1.0
	if zoom < 0 {
		dir, zoom = -1, -zoom
	}
	for i := 0; i < zoom; i++ {
		events = append(events, viewport.Scroll{Direction: dir, Cursor: at})
	}
	return events, nil
}

func renderSnapshot(cfg config.Config, sm *scrollmap.ScrollMap, events []viewport.Event, out io.Writer) error {
	sm.Apply(events)

	r := canvas.NewImageRenderer(cfg.Width, cfg.Height, canvas.LoadFontData(cfg.FontFile), out)
	defer r.Close()
	return canvas.Frame(r, sm, canvas.StyleFromConfig(cfg))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "scrollmap.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&nodesFlag, "nodes", "n", "", "Nodes file (lat,lon per line, or a .star script); overrides the config")
	rootCmd.PersistentFlags().BoolVar(&logFileFlag, "log-file", false, "Write logs to a file in the temp dir instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&restoreFlag, "restore", false, "Restore the last saved view on start")

	snapshotCmd.Flags().StringVarP(&outFlag, "out", "o", "snapshot.png", "Output PNG path")
	snapshotCmd.Flags().Float64SliceVar(&panFlag, "pan", nil, "Drag by dx,dy screen pixels before rendering")
	snapshotCmd.Flags().IntVar(&zoomFlag, "zoom", 0, "Scroll notches to apply; negative zooms out")
	snapshotCmd.Flags().Float64SliceVar(&cursorFlag, "cursor", nil, "Screen x,y to zoom around (default: centre)")

	configCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the effective configuration to --config instead of printing it")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
