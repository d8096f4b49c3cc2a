package main

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/upload"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "Analyze a PDF résumé and store the result",
	Long:  "Validate a local PDF résumé, analyze it and add the result to the history.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file, err := describeFile(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd.Context(), func(st *store.Store, cfg config.Config) error {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		hooks := upload.Hooks{}
		if !jsonOutput {
			progress := observability.NewPrinter(cmd.ErrOrStderr())
			hooks.OnProgress = progress.PrintProgress
		}

		record, err := upload.NewFlow(st, cfg.MaxUploadBytes).Run(cmd.Context(), file, hooks)
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), record)
		}
		printer.PrintAnalysis(record)
		return nil
	})
}

// describeFile builds the upload descriptor for a local file.
// The media type is sniffed from the content rather than taken from the extension.
func describeFile(path string) (types.UploadFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.UploadFile{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return types.UploadFile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return types.UploadFile{}, fmt.Errorf("%s is a directory", path)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return types.UploadFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))

	return types.UploadFile{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: mediaType,
	}, nil
}
