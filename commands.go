package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shapegrid/internal/preset"
	"shapegrid/internal/render"
	"shapegrid/internal/share"
)

var (
	configPath string // --config, empty means ~/.shapegrid/config.yaml
	linkArg    string // --link, share link or bare blob to open
	presetArg  string // --preset, preset to start from

	exportOut   string
	exportTXT   bool
	exportSaved bool
	exportLabel string
)

var rootCmd = &cobra.Command{
	Use:   "shapegrid",
	Short: "Place colored shapes on a grid from the terminal",
	Long: `Shapegrid is a terminal editor for placing circles, triangles,
pentagons and hexagons on a square grid.

Examples:
  shapegrid                         # open the editor
  shapegrid --preset smiley         # start from a preset
  shapegrid --link 'https://...'    # open a shared grid
  shapegrid export --out grid.png   # render the saved grid`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a grid to a PNG or text file",
	Long: `Renders a grid without opening the editor. The grid comes from
--preset, --link or --saved; with none of them an empty grid is rendered.

Examples:
  shapegrid export --saved --out grid.png
  shapegrid export --preset smiley --txt --out smiley.txt
  shapegrid export --link 'https://...' --label "shared"`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in presets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range preset.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.shapegrid/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&linkArg, "link", "", "open a share link or share blob")
	rootCmd.PersistentFlags().StringVar(&presetArg, "preset", "", "start from a preset ("+strings.Join(preset.Names(), ", ")+")")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default shapegrid.png or shapegrid.txt)")
	exportCmd.Flags().BoolVar(&exportTXT, "txt", false, "write a text rendering instead of a PNG")
	exportCmd.Flags().BoolVar(&exportSaved, "saved", false, "render the saved grid")
	exportCmd.Flags().StringVar(&exportLabel, "label", "", "caption drawn in the PNG corner")

	rootCmd.AddCommand(exportCmd, presetsCmd)
}

func runEditor(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("shapegrid needs an interactive terminal; use 'shapegrid export' to render without one")
	}

	sess, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := seed(sess, linkArg, presetArg, false); err != nil {
		return err
	}

	p := tea.NewProgram(initialModel(sess), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := seed(sess, linkArg, presetArg, exportSaved); err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = "shapegrid.png"
		if exportTXT {
			out = "shapegrid.txt"
		}
	}
	g := sess.ctrl.Current()
	if exportTXT {
		err = render.SaveText(out, g)
	} else {
		err = render.SavePNG(out, g, render.Options{GridLines: true, Label: exportLabel})
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", out, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), absPath(out))
	return nil
}

// seed loads the starting grid. At most one source may be given.
func seed(sess *session, link, presetName string, saved bool) error {
	sources := 0
	for _, set := range []bool{link != "", presetName != "", saved} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return errors.New("--link, --preset and --saved are mutually exclusive")
	}

	switch {
	case presetName != "":
		return sess.ctrl.LoadPreset(presetName)
	case link != "":
		blob, err := share.Extract(link)
		if err != nil {
			return err
		}
		return sess.ctrl.LoadShared(blob)
	case saved:
		return sess.ctrl.Load()
	}
	return nil
}
