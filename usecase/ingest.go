package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resourceshub/catalog"
	"resourceshub/metrics"
	"resourceshub/model"

	"github.com/rs/zerolog"
)

type Format int

const (
	FormatAuto Format = iota
	FormatPositional
	FormatGeneric
)

func (f Format) String() string {
	switch f {
	case FormatPositional:
		return "positional"
	case FormatGeneric:
		return "generic"
	default:
		return "auto"
	}
}

// positionalColumns is the minimum row width of the Online_Courses export.
const positionalColumns = 15

// DetectFormat picks the positional format for the Online_Courses export and
// the header-driven format for everything else.
func DetectFormat(name string) Format {
	if strings.Contains(filepath.Base(name), "Online_Courses") {
		return FormatPositional
	}
	return FormatGeneric
}

type IngestResult struct {
	Message    string   `json:"message"`
	Processed  int      `json:"processed"`
	Inserted   int      `json:"inserted"`
	Duplicates int      `json:"duplicates"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// CacheInvalidator is implemented by the course catalog.
type CacheInvalidator interface {
	Invalidate()
}

type IngestService struct {
	repo      ResourceRepository
	cache     CacheInvalidator
	batchSize int
	log       zerolog.Logger
	now       func() time.Time
}

func NewIngestService(repo ResourceRepository, cache CacheInvalidator, batchSize int, log zerolog.Logger) *IngestService {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &IngestService{
		repo:      repo,
		cache:     cache,
		batchSize: batchSize,
		log:       log.With().Str("service", "ingest").Logger(),
		now:       time.Now,
	}
}

// ProcessFile ingests the CSV at path. FormatAuto detects the format from the
// file name.
func (s *IngestService) ProcessFile(ctx context.Context, path string, format Format) (*IngestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatAuto {
		format = DetectFormat(path)
	}
	return s.ProcessReader(ctx, f, format)
}

func (s *IngestService) ProcessReader(ctx context.Context, r io.Reader, format Format) (*IngestResult, error) {
	if format == FormatAuto {
		format = FormatGeneric
	}
	start := s.now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return s.finish(&IngestResult{}, start, format), nil
		}
		return nil, invalid(fmt.Sprintf("Could not read CSV header: %v", err))
	}
	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		headerMap[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	result := &IngestResult{Errors: []string{}}
	batch := make([]model.Resource, 0, s.batchSize)
	batchNum := 0
	lineNum := 1

	flush := func() {
		if len(batch) == 0 {
			return
		}
		res, err := s.repo.InsertBatch(ctx, batch)
		result.Inserted += res.Inserted
		result.Duplicates += res.Duplicates
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error in batch %d: %v", batchNum, err))
			s.log.Warn().Err(err).Int("batch", batchNum).Msg("batch insert failed")
			metrics.TrackError("ingest", "batch_insert")
		}
		batchNum++
		batch = batch[:0]
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNum++
		if err != nil {
			result.Skipped++
			continue
		}

		if lineNum%1000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		var res model.Resource
		var ok bool
		if format == FormatPositional {
			res, ok = positionalResource(record)
		} else {
			res, ok = genericResource(record, headerMap)
		}
		if !ok {
			result.Skipped++
			continue
		}
		result.Processed++
		batch = append(batch, res)
		if len(batch) >= s.batchSize {
			flush()
		}
	}
	flush()

	if result.Inserted > 0 && s.cache != nil {
		s.cache.Invalidate()
	}
	return s.finish(result, start, format), nil
}

func (s *IngestService) finish(result *IngestResult, start time.Time, format Format) *IngestResult {
	if result.Errors == nil {
		result.Errors = []string{}
	}
	result.Message = fmt.Sprintf("Processed %d resources, successfully inserted %d resources", result.Processed, result.Inserted)

	metrics.TrackIngestRows("inserted", result.Inserted)
	metrics.TrackIngestRows("duplicate", result.Duplicates)
	metrics.TrackIngestRows("skipped", result.Skipped)

	s.log.Info().
		Str("format", format.String()).
		Int("processed", result.Processed).
		Int("inserted", result.Inserted).
		Int("duplicates", result.Duplicates).
		Int("skipped", result.Skipped).
		Int("batch_errors", len(result.Errors)).
		Dur("took", s.now().Sub(start)).
		Msg("ingest completed")
	return result
}

func positionalResource(record []string) (model.Resource, bool) {
	if len(record) < positionalColumns {
		return model.Resource{}, false
	}
	col := func(i int) string { return strings.TrimSpace(record[i]) }

	res := model.Resource{
		Title:        col(1),
		URL:          col(2),
		Description:  col(3),
		Category:     col(4),
		SubCategory:  col(5),
		ResourceType: orDefault(col(6), "Course"),
		Language:     orDefault(col(7), "English"),
		Subtitles:    col(8),
		Tags:         catalog.SplitList(col(9)),
		Instructors:  catalog.SplitList(col(10)),
		Rating:       catalog.ParseRating(col(11)),
		Reviews:      catalog.ParseCount(col(12)),
		Duration:     col(13),
		Provider:     orDefault(col(14), "Coursera"),
	}
	if res.Title == "" || res.URL == "" {
		return model.Resource{}, false
	}
	return res, true
}

func genericResource(record []string, headerMap map[string]int) (model.Resource, bool) {
	res := model.Resource{
		Title:       getField(record, headerMap, "title"),
		Description: getField(record, headerMap, "description", "short intro"),
		URL:         getField(record, headerMap, "url"),
		ImageURL:    getField(record, headerMap, "imageurl", "image"),
		Category:    getField(record, headerMap, "category", "sub-category"),
		Tags:        catalog.SplitList(getField(record, headerMap, "tags")),
		Provider:    getField(record, headerMap, "provider", "site"),
		Difficulty:  getField(record, headerMap, "difficulty", "level"),
		Instructors: []string{},
	}
	if res.Title == "" || res.URL == "" {
		return model.Resource{}, false
	}
	return res, true
}

// getField returns the first non-empty value among the named columns. Names
// must be lower case.
func getField(record []string, headerMap map[string]int, names ...string) string {
	for _, name := range names {
		if idx, ok := headerMap[name]; ok && idx < len(record) {
			if v := strings.TrimSpace(record[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ResolveServerFile resolves name against root and rejects paths that escape
// it. Relative names are taken relative to root.
func ResolveServerFile(root, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("File path is required")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving server file root: %w", err)
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrServerFileOutsideDir
	}
	return path, nil
}
