package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"alfredoptarigan/resume-analyzer/internal/client"
	"alfredoptarigan/resume-analyzer/internal/render"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/uploader"
)

var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:    "resumectl",
		Usage:   "Analyze resumes against a running resume analyzer",
		Version: version,
		Commands: []*cli.Command{
			analyzeCommand(),
			trainCommand(),
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Upload a PDF resume and print its dashboard",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Analysis endpoint `URL`",
				Value:   "http://127.0.0.1:3000/api/analyze",
				Sources: cli.EnvVars("ANALYZER_URL"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "Give up on the analysis after this long",
				Value:   60 * time.Second,
				Sources: cli.EnvVars("ANALYZE_TIMEOUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("missing resume FILE")
			}
			if len(paths) > 1 {
				log.Printf("⚠️  Only the first file is analyzed, ignoring %d more\n", len(paths)-1)
			}

			file, err := readFile(paths[0])
			if err != nil {
				return err
			}

			ctrl := uploader.NewController(client.New(cmd.String("server"), cmd.Duration("timeout")))
			return analyze(ctx, ctrl, file)
		},
	}
}

// analyze drives ctrl the way the upload page does and prints the result.
func analyze(ctx context.Context, ctrl *uploader.Controller, file uploader.SelectedFile) error {
	if state := ctrl.Drop([]uploader.SelectedFile{file}); state.Error != "" {
		return errors.New(state.Error)
	}

	log.Printf("🔄 Analyzing %s...\n", file.Name)
	ctrl.Analyze(ctx)

	state := ctrl.State()
	if state.Error != "" {
		return errors.New(state.Error)
	}
	if state.Result == nil {
		return errors.New(client.GenericFailureMessage)
	}

	return render.Text(os.Stdout, *state.Result)
}

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "Train the role classifier and write it to disk",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Write the model to `FILE`",
				Value:   "./data/classifier.json",
				Sources: cli.EnvVars("MODEL_PATH"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model, err := services.TrainModel(services.TrainingCorpus)
			if err != nil {
				return err
			}

			path := cmd.String("model")
			if err := model.Save(path); err != nil {
				return err
			}

			log.Printf("✅ Classifier with %d roles written to %s\n", len(model.Classes), path)
			return nil
		},
	}
}

func readFile(path string) (uploader.SelectedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return uploader.SelectedFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return uploader.SelectedFile{
		Name: filepath.Base(path),
		Type: detectType(path, data),
		Data: data,
	}, nil
}

// detectType mirrors what a browser reports: the type implied by the
// extension, else a sniff of the content.
func detectType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}

	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return ""
	}
	return mediaType
}
