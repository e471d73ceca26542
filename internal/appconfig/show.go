package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Results Dir:      %s\n", cfg.ResultsDir)
	fmt.Fprintf(out, "  Figures Dir:      %s\n", cfg.FiguresDir)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Format)
	fmt.Fprintf(out, "  Backend:          %s\n", cfg.Backend)
	fmt.Fprintf(out, "  Language:         %s\n", cfg.Language)
	fmt.Fprintf(out, "  Font Size:        %.1f pt\n", cfg.Style.FontSize)
	fmt.Fprintf(out, "  Figure Size:      %.1f x %.1f in @ %d dpi\n", cfg.Style.Width, cfg.Style.Height, cfg.Style.DPI)
	fmt.Fprintf(out, "  Palette:          %s\n", strings.Join(cfg.Style.Palette, ", "))
	fmt.Fprintf(out, "  Window Size:      %d\n", cfg.Window.Size)
	fmt.Fprintf(out, "  Window Cap:       %d\n", cfg.Window.Cap)
	fmt.Fprintf(out, "  Histogram Bins:   %d\n", cfg.Distribution.Bins)
	fmt.Fprintf(out, "  Accelerate Model: %s (%s)\n", cfg.Accelerate.ModelName, cfg.Accelerate.ModelKey)
	fmt.Fprintf(out, "  Bandwidth Band:   %.2g .. %.2g B/s\n", cfg.Accelerate.MinBandwidth, cfg.Accelerate.MaxBandwidth)
	fmt.Fprintf(out, "  Sharing Input:    %s\n", cfg.Sharing.Input)
	fmt.Fprintf(out, "  Sharing Policies: %s\n", strings.Join(cfg.Sharing.Policies, ", "))
	fmt.Fprintf(out, "  Sharing Range:    %.2f .. %.2f\n", cfg.Sharing.Min, cfg.Sharing.Max)
}
