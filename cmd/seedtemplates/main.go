package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	types "github.com/campuscms/backend/internal/domain"
	"github.com/campuscms/backend/internal/data/db"
	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
)

// seedtemplates loads the template catalog from a YAML file and upserts it
// by name, so rerunning against an already-seeded database is a no-op.

type seedFile struct {
	Templates []seedTemplate `yaml:"templates"`
}

type seedTemplate struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Category    string              `yaml:"category"`
	Thumbnail   string              `yaml:"thumbnail"`
	IsPublic    *bool               `yaml:"is_public"`
	Document    *types.PageDocument `yaml:"document"`
}

func main() {
	var path string
	flag.StringVar(&path, "file", "seed/templates.yaml", "path to the template seed file")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log, path); err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(sf.Templates) == 0 {
		log.Warn("Seed file contains no templates", "file", path)
		return nil
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		return fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		return fmt.Errorf("postgres automigrate: %w", err)
	}
	templateRepo := repos.NewTemplateRepo(pg.DB(), log)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, st := range sf.Templates {
		g.Go(func() error {
			row, err := buildRow(st)
			if err != nil {
				return fmt.Errorf("template %q: %w", st.Name, err)
			}
			if err := templateRepo.UpsertByName(dbctx.Context{Ctx: gctx}, row); err != nil {
				return fmt.Errorf("upsert template %q: %w", st.Name, err)
			}
			log.Info("Seeded template", "name", st.Name, "category", st.Category)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Template seeding complete", "count", len(sf.Templates))
	return nil
}

func buildRow(st seedTemplate) (*types.Template, error) {
	if st.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if !types.ValidTemplateCategory(st.Category) {
		return nil, fmt.Errorf("unknown category %q", st.Category)
	}
	doc := st.Document
	if doc == nil {
		doc = types.DefaultPageDocument(st.Name)
	}
	raw, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	isPublic := true
	if st.IsPublic != nil {
		isPublic = *st.IsPublic
	}
	return &types.Template{
		Name:        st.Name,
		Description: st.Description,
		Category:    st.Category,
		Thumbnail:   st.Thumbnail,
		Document:    raw,
		IsPublic:    isPublic,
	}, nil
}
