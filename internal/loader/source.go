// Package loader reads the example catalog tables and bulk-loads them into an
// empty database.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/xuri/excelize/v2"
)

// Tables in dependency order.
var Tables = []string{"users", "category", "genre", "titles", "genre_title", "review", "comments"}

// Record is one row keyed by column header.
type Record map[string]string

// TableReader yields the rows of a named table.
type TableReader interface {
	ReadTable(ctx context.Context, name string) ([]Record, error)
}

// ErrTableMissing is returned when a source has no data for a table.
var ErrTableMissing = errors.New("table missing")

// DirReader reads <table>.csv files from a filesystem.
type DirReader struct {
	fsys fs.FS
}

func NewDirReader(fsys fs.FS) *DirReader {
	return &DirReader{fsys: fsys}
}

func (r *DirReader) ReadTable(_ context.Context, name string) ([]Record, error) {
	f, err := r.fsys.Open(name + ".csv")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrTableMissing)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(name, f)
}

// MinioConfig locates a bucket of <table>.csv objects.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// BucketReader reads <prefix><table>.csv objects from a MinIO or S3 bucket.
type BucketReader struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewBucketReader(cfg MinioConfig) (*BucketReader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}
	return &BucketReader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (r *BucketReader) ReadTable(ctx context.Context, name string) ([]Record, error) {
	key := r.prefix + name + ".csv"
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key surfaces on the first read.
	if _, err := obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", name, ErrTableMissing)
		}
		return nil, fmt.Errorf("stat %s: %w", key, err)
	}
	return parseCSV(name, obj)
}

// WorkbookReader reads one sheet per table from an XLSX workbook.
type WorkbookReader struct {
	file *excelize.File
}

func NewWorkbookReader(data []byte) (*WorkbookReader, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	return &WorkbookReader{file: f}, nil
}

func (r *WorkbookReader) Close() error { return r.file.Close() }

func (r *WorkbookReader) ReadTable(_ context.Context, name string) ([]Record, error) {
	if idx, _ := r.file.GetSheetIndex(name); idx < 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrTableMissing)
	}
	rows, err := r.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return toRecords(rows), nil
}

func parseCSV(name string, r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s.csv: %w", name, err)
	}
	return toRecords(rows), nil
}

// toRecords keys rows by the header row. Short rows leave trailing columns empty.
func toRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
