package main

// Imports files from a legacy flat upload directory into the current
// metadata-plus-object-store layout. Legacy names look like
// <stem>-<ownerId>-<fileId>.<ext>; only names matching the given owner
// are imported.
//
//   go run ./cmd/legacyimport --dir /data/uploads --owner google:123

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mailpanel-backend/internal/emailfiles"
	"mailpanel-backend/internal/shared/config"
	"mailpanel-backend/internal/shared/storage/db"
	localstore "mailpanel-backend/internal/shared/storage/object/local"
	s3store "mailpanel-backend/internal/shared/storage/object/s3"
	"mailpanel-backend/internal/shared/telemetry"
)

type importFlags struct {
	dir    string
	owner  string
	dryRun bool
}

func main() {
	flags := importFlags{}

	rootCmd := &cobra.Command{
		Use:   "legacyimport",
		Short: "Import legacy flat-directory uploads into the email file store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(flags.dir) == "" || strings.TrimSpace(flags.owner) == "" {
				return fmt.Errorf("--dir and --owner are required")
			}
			return run(cmd.Context(), flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.dir, "dir", "", "legacy upload directory")
	rootCmd.Flags().StringVar(&flags.owner, "owner", "", "owner id whose files to import")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "list what would be imported without writing")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, flags importFlags) error {
	cfg := config.Load()

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := os.ReadDir(flags.dir)
	if err != nil {
		return fmt.Errorf("read legacy dir: %w", err)
	}

	imported := 0
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		decoded, ok := emailfiles.DecodeLegacyName(entry.Name(), flags.owner)
		if !ok {
			skipped++
			continue
		}

		if flags.dryRun {
			fmt.Printf("would import %s as %q (id %s)\n", entry.Name(), decoded.OriginalFilename, decoded.FileID)
			imported++
			continue
		}

		if err := importOne(ctx, svc, filepath.Join(flags.dir, entry.Name()), decoded); err != nil {
			telemetry.Error("legacyimport.file_failed", map[string]any{
				"name": entry.Name(),
				"err":  err.Error(),
			})
			continue
		}
		imported++
	}

	fmt.Printf("imported %d file(s), skipped %d\n", imported, skipped)
	return nil
}

func importOne(ctx context.Context, svc *emailfiles.Service, path string, decoded emailfiles.LegacyName) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	mimeType := "message/rfc822"
	if decoded.FileType == "html" {
		mimeType = "text/html"
	}

	_, err = svc.Upload(ctx, decoded.OwnerID, decoded.OriginalFilename, mimeType, info.Size(), f)
	return err
}

func buildService(ctx context.Context, cfg config.Config) (*emailfiles.Service, func(), error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	svc := &emailfiles.Service{
		Repo: &emailfiles.PGRepo{DB: sqlDB},
	}
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		svc.Store = store
	} else {
		svc.Store = localstore.New(cfg.LocalStoreDir)
	}

	cleanup := func() { sqlDB.Close() }
	return svc, cleanup, nil
}
