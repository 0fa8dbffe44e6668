package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tentamenbank-api/models"
)

// ObjectLister lists object keys under a prefix
type ObjectLister interface {
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// EnrolmentResolver returns the normalized course codes of a student
type EnrolmentResolver interface {
	Resolve(ctx context.Context, studentID string) (models.EnrolmentSet, error)
}

type TentamenbankOptions struct {
	Bucket      string
	AdminBucket string
	RootPrefix  string
	ListTimeout time.Duration
}

// TentamenbankService builds the overview, subject and admin views of the exam archive
type TentamenbankService struct {
	objects    ObjectLister
	mappings   MappingStore
	enrolments EnrolmentResolver
	cache      *CacheService
	opts       TentamenbankOptions
}

func NewTentamenbankService(objects ObjectLister, mappings MappingStore, enrolments EnrolmentResolver, cache *CacheService, opts TentamenbankOptions) *TentamenbankService {
	opts.RootPrefix = strings.Trim(opts.RootPrefix, "/")
	return &TentamenbankService{
		objects:    objects,
		mappings:   mappings,
		enrolments: enrolments,
		cache:      cache,
		opts:       opts,
	}
}

// Overview lists every subject and, for a known student, the enrolled subset.
// A listing failure fails the call; an enrolment failure only empties MyCourses.
func (s *TentamenbankService) Overview(ctx context.Context, studentID string) (*models.Overview, error) {
	log.Println("TentamenbankService - Overview")

	var keys []string
	enrolled := models.NewEnrolmentSet()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listed, err := s.listKeys(gctx, s.opts.Bucket, s.rootPrefix())
		keys = listed
		return err
	})
	if studentID != "" && s.enrolments != nil {
		g.Go(func() error {
			set, err := s.enrolments.Resolve(gctx, studentID)
			if err != nil {
				log.Printf("Enrolment lookup failed, showing no personal courses: %v", err)
				return nil
			}
			enrolled = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dirs, skipped := ParseObjectKeys(keys)
	if skipped > 0 {
		log.Printf("Skipped %d folders outside <study>/<subject>", skipped)
	}

	subjects := BuildCatalog(s.opts.RootPrefix, dirs, s.loadMapping(ctx))

	overview := &models.Overview{
		Subjects:  subjects,
		MyCourses: []models.CatalogEntry{},
		StudentID: studentID,
	}
	if studentID != "" {
		overview.MyCourses = MatchCourses(subjects, enrolled)
	}
	return overview, nil
}

// SubjectExams returns the exams of one subject, newest first.
func (s *TentamenbankService) SubjectExams(ctx context.Context, study, subject string) ([]models.ExamRecord, error) {
	prefix := fmt.Sprintf("%s/%s/%s/", s.opts.RootPrefix, study, subject)
	keys, err := s.listKeys(ctx, s.opts.Bucket, prefix)
	if err != nil {
		return nil, err
	}
	return BuildExamRecords(keys), nil
}

// MappingRows lists candidate folders of the admin bucket with their stored overrides,
// sorted by study then subject.
func (s *TentamenbankService) MappingRows(ctx context.Context) ([]models.MappingRow, error) {
	keys, err := s.listKeys(ctx, s.opts.AdminBucket, s.rootPrefix())
	if err != nil {
		return nil, err
	}
	dirs, _ := ParseObjectKeys(keys)
	mapping := s.loadMapping(ctx)

	seen := make(map[models.Directory]struct{}, len(dirs))
	rows := make([]models.MappingRow, 0, len(dirs))
	for _, dir := range dirs {
		if _, ok := seen[dir]; ok || dir.Subject == "" {
			continue
		}
		seen[dir] = struct{}{}

		stored := mapping[dir.Subject]
		rows = append(rows, models.MappingRow{
			Study:   dir.Study,
			Subject: dir.Subject,
			ID:      stored.ID,
			Name:    stored.Name,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Study != rows[j].Study {
			return rows[i].Study < rows[j].Study
		}
		return rows[i].Subject < rows[j].Subject
	})
	return rows, nil
}

// SaveMapping replaces the stored document with the submitted rows.
func (s *TentamenbankService) SaveMapping(ctx context.Context, submitted map[string]models.MappingEntry) (models.Mapping, error) {
	mapping := RowsToMapping(submitted)
	if err := s.mappings.Save(ctx, mapping); err != nil {
		return nil, err
	}
	log.Printf("Course mapping saved: %d entries", len(mapping))
	return mapping, nil
}

// ValidateKey rejects keys outside the archive root
func (s *TentamenbankService) ValidateKey(key string) error {
	if !strings.HasPrefix(key, s.rootPrefix()) || strings.Contains(key, "..") || strings.HasSuffix(key, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// InvalidateCache drops cached listings and enrolments
func (s *TentamenbankService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Flush()
	}
}

func (s *TentamenbankService) rootPrefix() string {
	return s.opts.RootPrefix + "/"
}

func (s *TentamenbankService) loadMapping(ctx context.Context) models.Mapping {
	mapping, err := s.mappings.Load(ctx)
	if err != nil {
		log.Printf("Course mapping unreadable, using no overrides: %v", err)
		return models.Mapping{}
	}
	return mapping
}

func (s *TentamenbankService) listKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	cacheKey := fmt.Sprintf("keys:%s:%s", bucket, prefix)
	if s.cache != nil {
		if keys, found := s.cache.GetKeys(cacheKey); found {
			return keys, nil
		}
	}

	if s.opts.ListTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ListTimeout)
		defer cancel()
	}

	keys, err := s.objects.ListKeys(ctx, bucket, prefix)
	if err != nil {
		if !errors.Is(err, ErrStorageList) {
			err = fmt.Errorf("%w: %v", ErrStorageList, err)
		}
		log.Printf("Storage listing failed for %s/%s: %v", bucket, prefix, err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, keys, 0)
	}
	return keys, nil
}
