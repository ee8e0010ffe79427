package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

var downloadDir string

var downloadCmd = &cobra.Command{
	Use:   "download <name>",
	Short: "Save one of your notes as a .txt file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		ctx, svc, uid, err := session(cmd)
		if err != nil {
			return err
		}

		att, err := svc.DownloadNote(ctx, uid, name)
		if err != nil {
			return aboutNote(name, err)
		}

		path := filepath.Join(downloadDir, safeFilename(att.Filename))
		if err := os.WriteFile(path, att.Content, 0o600); err != nil {
			logger.Debug("download write failed", "error", err)
			return aboutNote(name, fmt.Errorf("%w: %w", errSaveFailed, err))
		}

		success(cmd.OutOrStdout(), "here is your note '%s': %s", name, path)
		return nil
	},
}

// safeFilename keeps an attachment name inside the target directory.
// Separators and control characters become underscores; a leading dot is escaped.
func safeFilename(name string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, name)

	if strings.HasPrefix(clean, ".") {
		clean = "_" + clean
	}
	return clean
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVarP(&downloadDir, "out", "o", ".", "Directory to write the file to")
}
