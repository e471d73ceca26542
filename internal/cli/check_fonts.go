// internal/cli/check_fonts.go
package inaviz

import (
	"bufio"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mwiater/inaviz/internal/logging"
	"github.com/spf13/cobra"
)

// pdfFonts returns the pdffonts listing of path; swapped in tests.
var pdfFonts = func(path string) (string, error) {
	bin, err := exec.LookPath("pdffonts")
	if err != nil {
		return "", fmt.Errorf("pdffonts not found in PATH (install poppler-utils): %w", err)
	}
	out, err := exec.Command(bin, path).Output()
	if err != nil {
		return "", fmt.Errorf("pdffonts %s: %w", path, err)
	}
	return string(out), nil
}

// checkFontsCmd flags PDFs that carry Type 3 fonts, which many publishers
// reject.
var checkFontsCmd = &cobra.Command{
	Use:   "check-fonts [dir]",
	Short: "Report PDF figures that embed Type 3 fonts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getConfig().FiguresDir
		if len(args) == 1 {
			dir = args[0]
		}
		out := cmd.OutOrStdout()

		var pdfs []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
				pdfs = append(pdfs, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		if len(pdfs) == 0 {
			fmt.Fprintf(out, "no PDF files under %s\n", dir)
			return nil
		}

		flagged := 0
		for _, path := range pdfs {
			listing, err := pdfFonts(path)
			if err != nil {
				return err
			}
			if fonts := type3Fonts(listing); len(fonts) > 0 {
				flagged++
				fmt.Fprintf(out, "%s %s: Type 3 fonts %s\n", failedLabel("TYPE3"), path, strings.Join(fonts, ", "))
				continue
			}
			fmt.Fprintf(out, "%s %s\n", okLabel("OK"), path)
		}
		logging.LogEvent("check-fonts: %d of %d PDF(s) carry Type 3 fonts", flagged, len(pdfs))
		if flagged > 0 {
			return fmt.Errorf("%d PDF(s) carry Type 3 fonts", flagged)
		}
		return nil
	},
}

// type3Fonts extracts the names of Type 3 fonts from pdffonts output, whose
// first two lines are the column header and its underline.
func type3Fonts(listing string) []string {
	var fonts []string
	scanner := bufio.NewScanner(strings.NewReader(listing))
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line <= 2 || !strings.Contains(text, "Type 3") {
			continue
		}
		name := "(unnamed)"
		if fields := strings.Fields(text); len(fields) > 0 && fields[0] != "Type" {
			name = fields[0]
		}
		fonts = append(fonts, name)
	}
	return fonts
}

func init() {
	rootCmd.AddCommand(checkFontsCmd)
}
