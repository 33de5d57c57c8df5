package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/charform/internal/clients/registry"
	"github.com/KirkDiggler/charform/internal/config"
	"github.com/KirkDiggler/charform/internal/domain/character"
	"github.com/KirkDiggler/charform/internal/services/form"
	"github.com/KirkDiggler/charform/internal/uuid"
)

// assignments collects repeated -set field=value flags
type assignments []string

func (a *assignments) String() string {
	return strings.Join(*a, ",")
}

func (a *assignments) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func main() {
	var (
		sets      assignments
		category  = flag.String("category", "", "enemy or fixed (ally)")
		imagePath = flag.String("image", "", "path to a .png or .jpg portrait")
		assist    = flag.Bool("assist", false, "ask the AI to draft the character before registering")
		dryRun    = flag.Bool("dry-run", false, "print the record instead of registering it")
	)
	flag.Var(&sets, "set", "field=value edit, repeatable (e.g. -set name=Mina -set age=20)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := registry.New(&registry.Config{
		HttpClient: &http.Client{
			Timeout: cfg.Registry.Timeout,
		},
		RegisterURL:   cfg.Registry.RegisterURL,
		AssistURL:     cfg.Registry.AssistURL,
		Encoding:      registry.Encoding(cfg.Registry.Encoding),
		UUIDGenerator: uuid.NewRandomGenerator(),
	})
	if err != nil {
		log.Fatalf("Failed to create registry client: %v", err)
	}

	session, err := form.New(&form.Config{
		Registry: client,
		UserID:   cfg.Form.UserID,
	})
	if err != nil {
		log.Fatalf("Failed to open form session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, session, sets, *category, *imagePath, *assist, *dryRun); err != nil {
		log.Printf("charform: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, session *form.Session, sets []string, category, imagePath string, assist, dryRun bool) error {
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		img, err := character.NewImage(imagePath, "", data)
		if err != nil {
			return err
		}
		session.SelectImage(img)
	}

	if category != "" {
		cat, err := character.ParseCategory(category)
		if err != nil {
			return err
		}
		if err := session.SelectCategory(cat); err != nil {
			return err
		}
	}

	if assist {
		status, err := session.Assist(ctx)
		fmt.Fprintln(out, status.Message)
		if err != nil {
			return err
		}
	}

	// Explicit edits win over AI suggestions
	if err := applyAssignments(session, sets); err != nil {
		return err
	}

	if dryRun {
		return printDraft(out, session)
	}

	status, err := session.Submit(ctx)
	fmt.Fprintln(out, status.Message)
	return err
}

func printDraft(out io.Writer, session *form.Session) error {
	rec := session.Record()
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))

	if img := session.Image(); img != nil {
		fmt.Fprintf(out, "image: %s (%s, %d bytes) as %s\n", img.Filename, img.ContentType, len(img.Data), rec.ImageName)
	}
	return nil
}

func applyAssignments(session *form.Session, sets []string) error {
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("invalid -set %q, want field=value", set)
		}
		field, err := character.ParseField(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if err := session.ChangeField(field, value); err != nil {
			return err
		}
		stored, err := session.Record().Get(field)
		if err != nil {
			return err
		}
		log.Printf("charform: set %s = %q", field, stored)
	}
	return nil
}
