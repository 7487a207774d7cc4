package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/infrastructure/db/postgres"
	"github.com/yamdb/review-api/internal/loader"
	"github.com/yamdb/review-api/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "loader",
		Usage: "load the example catalog into an empty database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "database-url", EnvVars: []string{"DATABASE_URL"}, Required: true, Usage: "postgres DSN"},
			&cli.BoolFlag{Name: "migrate", Value: true, Usage: "create tables before loading"},
			&cli.StringFlag{Name: "log-level", EnvVars: []string{"LOG_LEVEL"}, Value: "info"},
		},
		Commands: []*cli.Command{
			{
				Name:  "dir",
				Usage: "read <table>.csv files from a directory",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "path", Value: "static/data"},
				},
				Action: func(c *cli.Context) error {
					return load(c, loader.NewDirReader(os.DirFS(c.Path("path"))))
				},
			},
			{
				Name:  "xlsx",
				Usage: "read one sheet per table from a workbook",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "file", Required: true},
				},
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.Path("file"))
					if err != nil {
						return err
					}
					wb, err := loader.NewWorkbookReader(data)
					if err != nil {
						return err
					}
					defer wb.Close()
					return load(c, wb)
				},
			},
			{
				Name:  "bucket",
				Usage: "read <prefix><table>.csv objects from MinIO or S3",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "endpoint", EnvVars: []string{"MINIO_ENDPOINT"}, Required: true},
					&cli.StringFlag{Name: "access-key", EnvVars: []string{"MINIO_ACCESS_KEY"}},
					&cli.StringFlag{Name: "secret-key", EnvVars: []string{"MINIO_SECRET_KEY"}},
					&cli.StringFlag{Name: "bucket", EnvVars: []string{"MINIO_BUCKET"}, Required: true},
					&cli.StringFlag{Name: "prefix"},
					&cli.BoolFlag{Name: "ssl"},
				},
				Action: func(c *cli.Context) error {
					br, err := loader.NewBucketReader(loader.MinioConfig{
						Endpoint:  c.String("endpoint"),
						AccessKey: c.String("access-key"),
						SecretKey: c.String("secret-key"),
						Bucket:    c.String("bucket"),
						Prefix:    c.String("prefix"),
						UseSSL:    c.Bool("ssl"),
					})
					if err != nil {
						return err
					}
					return load(c, br)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func load(c *cli.Context, r loader.TableReader) error {
	log := logger.Init(logger.Options{Level: c.String("log-level"), Pretty: true, Service: "loader"})
	ctx := c.Context

	db, err := postgres.Connect(ctx, postgres.Config{DSN: c.String("database-url")}, log)
	if err != nil {
		return err
	}
	defer postgres.Close(db)

	if c.Bool("migrate") {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	_, err = loader.New(postgres.NewSeeder(db), log.With().Str("component", "loader").Logger()).Run(ctx, r)
	if errors.Is(err, domain.ErrAlreadySeeded) {
		log.Warn().Msg("catalog already has titles, nothing loaded")
		return nil
	}
	return err
}

