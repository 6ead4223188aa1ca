// Package export writes stored resources in the catalog CSV layout, so an
// export can be served back as the course catalog.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"resourceshub/model"
)

// Header order is fixed; consumers address columns by name but diff exports
// line by line.
var Header = []string{
	"Title",
	"URL",
	"Short Intro",
	"Category",
	"Sub-Category",
	"Course Type",
	"Language",
	"Subtitle Languages",
	"Skills",
	"Instructors",
	"Rating",
	"Number of viewers",
	"Duration",
	"Site",
	"Level",
	"imageUrl",
}

// ResourceSource streams stored resources. repository.ResourceRepo satisfies it.
type ResourceSource interface {
	Each(ctx context.Context, fn func(model.Resource) error) error
}

// WriteResourcesCSV writes the header and one row per resource, returning the
// number of rows written.
func WriteResourcesCSV(ctx context.Context, w io.Writer, src ResourceSource) (int, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return 0, err
	}

	rows := 0
	err := src.Each(ctx, func(r model.Resource) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(toRow(r)); err != nil {
			return err
		}
		rows++
		return nil
	})
	if err != nil {
		return rows, fmt.Errorf("exporting resources: %w", err)
	}

	cw.Flush()
	return rows, cw.Error()
}

// WriteResourcesFile exports to path, creating its directory. The file is
// replaced only once the export completed.
func WriteResourcesFile(ctx context.Context, path string, src ResourceSource) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	rows, err := WriteResourcesCSV(ctx, tmp, src)
	if err != nil {
		tmp.Close()
		return rows, err
	}
	if err := tmp.Close(); err != nil {
		return rows, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return rows, err
	}
	return rows, os.Rename(tmp.Name(), path)
}

func toRow(r model.Resource) []string {
	rating := ""
	if r.Rating != nil {
		rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
	}
	reviews := ""
	if r.Reviews != nil {
		reviews = strconv.Itoa(*r.Reviews)
	}

	return []string{
		r.Title,
		r.URL,
		r.Description,
		r.Category,
		r.SubCategory,
		r.ResourceType,
		r.Language,
		r.Subtitles,
		joinList(r.Tags),
		joinList(r.Instructors),
		rating,
		reviews,
		r.Duration,
		r.Provider,
		r.Difficulty,
		r.ImageURL,
	}
}

// Lists are comma separated in the catalog, so commas inside an entry are
// dropped rather than splitting it in two on re-import.
func joinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(strings.ReplaceAll(item, ",", " "))
		if item != "" {
			out = append(out, item)
		}
	}
	return strings.Join(out, ", ")
}
