// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	soundshelf "github.com/poiesic/soundshelf"
	"github.com/poiesic/soundshelf/ai"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/ingestion"
	"github.com/poiesic/soundshelf/rag"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to library database directory",
		Required: true,
	}
	hostFlag := &cli.StringFlag{
		Name:  "host",
		Usage: "OpenAI-compatible chat service host URL",
		Value: "http://localhost:11434/v1",
	}
	modelFlag := &cli.StringFlag{
		Name:  "model",
		Usage: "Chat model name",
		Value: "qwen2.5:3b",
	}

	app := &cli.App{
		Name:  "soundshelf",
		Usage: "Searchable library of speech-sound teaching resources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a resource to the library",
				Action: addCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Resource title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Usage:    "Resource description",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag (repeatable)",
					},
					&cli.StringFlag{
						Name:  "age-range",
						Usage: "Intended age range, e.g. 4-7",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Resource type, e.g. worksheet, game",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Path to an attachment (pdf or text)",
					},
					&cli.StringFlag{
						Name:  "mime",
						Usage: "Mime type of the attachment (inferred from extension if omitted)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List resources, most recent first",
				Action: listCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of resources to show",
						Value: 20,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank resources against a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:      "chat",
				Usage:     "Ask a question grounded in the library (no args for interactive mode)",
				ArgsUsage: "[question]",
				Action:    chatCommand,
				Flags:     []cli.Flag{dbFlag, hostFlag, modelFlag},
			},
			{
				Name:      "remove",
				Usage:     "Remove a resource by ID",
				ArgsUsage: "<id>",
				Action:    removeCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:   "reextract",
				Usage:  "Re-run attachment text extraction for recent resources",
				Action: reextractCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of resources to re-extract",
						Value: 1000,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openLibrary(c *cli.Context, opts ...soundshelf.LibraryOption) (*soundshelf.Library, error) {
	lib, err := soundshelf.OpenLibrary(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	req := ingestion.AddResourceRequest{
		Title:       c.String("title"),
		Description: c.String("description"),
		Tags:        c.StringSlice("tag"),
		AgeRange:    c.String("age-range"),
		Type:        c.String("type"),
	}

	if filePath := c.String("file"); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read attachment: %w", err)
		}
		req.FileData = data
		req.FileMime = c.String("mime")
		if req.FileMime == "" {
			req.FileMime = inferMime(filePath)
		}
	}

	resource, err := lib.AddResource(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Added resource %d: %s\n", resource.Id, resource.Title)
	return nil
}

func listCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	resources, err := lib.ListResources(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}

	if len(resources) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	for _, r := range resources {
		printResource(r, "")
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	results, err := lib.Search(context.Background(), query)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matching resources.")
		return nil
	}

	for _, ranked := range results {
		printResource(ranked.Resource, fmt.Sprintf("score %d", ranked.Score))
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
	)

	lib, err := openLibrary(c, soundshelf.WithAIConfig(aiConfig))
	if err != nil {
		return err
	}
	defer lib.Close()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query != "" {
		return runChatTurn(ctx, lib, query, nil)
	}

	// Interactive mode
	fmt.Println("Ask about the library. Empty line to quit.")
	var history []core.ChatTurn
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		result, err := chatOnce(ctx, lib, question, history)
		if err != nil {
			return err
		}
		history = append(history,
			core.ChatTurn{Speaker: core.SpeakerTypeHuman, Contents: question},
			core.ChatTurn{Speaker: core.SpeakerTypeAI, Contents: result.Reply},
		)
	}
	return scanner.Err()
}

func runChatTurn(ctx context.Context, lib *soundshelf.Library, query string, history []core.ChatTurn) error {
	_, err := chatOnce(ctx, lib, query, history)
	return err
}

// chatOnce runs a single chat turn and prints the reply and shortlist. Reply
// generation failures degrade to the fallback message with no resource list.
func chatOnce(ctx context.Context, lib *soundshelf.Library, query string, history []core.ChatTurn) (*rag.ChatResult, error) {
	result, err := lib.Chat(ctx, query, history)
	if err != nil {
		if errors.Is(err, rag.ErrReplyGeneration) || errors.Is(err, soundshelf.ErrGeneratorNotConfigured) {
			fmt.Println(rag.FallbackReply)
			return &rag.ChatResult{Reply: rag.FallbackReply}, nil
		}
		return nil, err
	}

	fmt.Println(result.Reply)
	if len(result.Shortlist) > 0 {
		fmt.Println("\nResources:")
		for i, ranked := range result.Shortlist {
			fmt.Printf("%d. %s (score %d)\n", i+1, ranked.Resource.Title, ranked.Score)
			if ranked.Insight != "" {
				fmt.Printf("   %s\n", ranked.Insight)
			}
		}
	}
	return result, nil
}

func removeCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one resource ID is required")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid resource ID: %w", err)
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.DeleteResource(context.Background(), core.ID(id)); err != nil {
		return err
	}
	fmt.Printf("Removed resource %d\n", id)
	return nil
}

func reextractCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	count, err := lib.ReextractAll(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}
	fmt.Printf("Re-extracted %d resources\n", count)
	return nil
}

func printResource(r *core.Resource, extra string) {
	header := fmt.Sprintf("%d. %s", r.Id, r.Title)
	if extra != "" {
		header += " [" + extra + "]"
	}
	fmt.Println(header)
	fmt.Printf("   %s\n", r.Description)
	if len(r.Tags) > 0 {
		fmt.Printf("   Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	if r.HasFile() {
		fmt.Printf("   Attachment: %s\n", r.FileMime)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func inferMime(path string) string {
	switch {
	case strings.HasSuffix(path, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(path, ".md"):
		return "text/markdown"
	case strings.HasSuffix(path, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
