package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/aigateway/api"
	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/transcription"
	"github.com/kbukum/aigateway/version"
)

func (c *cli) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Send a free-form question to the text model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return c.with(cmd.Context(), c, func(ctx context.Context, gw client) error {
				answer, err := gw.Ask(ctx, question)
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(c.out, map[string]string{"question": question, "answer": answer})
				}
				fmt.Fprintln(c.out, answer)
				return nil
			})
		},
	}
}

func (c *cli) extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract expenses from diary text (defaults to a built-in Thai sample)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				text = api.TestText
			}
			return c.with(cmd.Context(), c, func(ctx context.Context, gw client) error {
				r, err := gw.ExtractExpenses(ctx, text)
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(c.out, r)
				}
				renderExpenses(c.out, r)
				return nil
			})
		},
	}
}

func (c *cli) ocrCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "ocr <file>...",
		Short: "Extract text from images or PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args, attachment.AcceptOCR, "Only image files and PDFs are allowed")
			if err != nil {
				return err
			}
			req := ocr.Request{Files: files}
			if cmd.Flags().Changed("box-threshold") {
				req.BoxThreshold = ocr.Threshold(threshold)
			}
			return c.with(cmd.Context(), c, func(ctx context.Context, gw client) error {
				results, err := gw.ExtractText(ctx, req)
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(c.out, results)
				}
				renderOCR(c.out, results)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&threshold, "box-threshold", ocr.DefaultBoxThreshold, "text box detection threshold in [0,1]")
	return cmd
}

func (c *cli) transcribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <file>...",
		Short: "Transcribe audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args, attachment.AcceptSpeech, "Only audio files are allowed")
			if err != nil {
				return err
			}
			return c.with(cmd.Context(), c, func(ctx context.Context, gw client) error {
				results, err := gw.Transcribe(ctx, transcription.Request{Files: files})
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(c.out, results)
				}
				renderTranscripts(c.out, results)
				return nil
			})
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(c.out, version.String(binaryName))
		},
	}
}

// readFiles loads paths from disk and checks their sniffed types. Count and
// size limits are enforced by the providers.
func readFiles(paths []string, accept attachment.Accept, message string) ([]attachment.File, error) {
	files := make([]attachment.File, 0, len(paths))
	for _, p := range paths {
		f, err := attachment.FromPath(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if err := attachment.CheckTypes(files, accept, message); err != nil {
		return nil, err
	}
	return files, nil
}
