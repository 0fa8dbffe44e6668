package services

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tentamenbank-api/models"
)

const enrolmentAccept = "application/json, application/xml"

// EnrolmentService looks up a student's current courses at the registrar API
type EnrolmentService struct {
	client  *http.Client
	baseURL string
	cache   *CacheService
	ttl     time.Duration
}

func NewEnrolmentService(baseURL string, timeout time.Duration, cache *CacheService, ttl time.Duration) *EnrolmentService {
	return &EnrolmentService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cache:   cache,
		ttl:     ttl,
	}
}

// Resolve returns the enrolled course codes of a student.
// Callers treat an error as "no enrolments" and keep serving the page.
func (s *EnrolmentService) Resolve(ctx context.Context, studentID string) (models.EnrolmentSet, error) {
	cacheKey := enrolmentCacheKey(studentID)
	if s.cache != nil {
		if set, found := s.cache.GetEnrolments(cacheKey); found {
			return set, nil
		}
	}

	endpoint := fmt.Sprintf("%s/Enrolments/%s", s.baseURL, url.PathEscape(studentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.EnrolmentSet{}, fmt.Errorf("%w: build request: %v", ErrEnrolmentFetch, err)
	}
	req.Header.Set("Accept", enrolmentAccept)

	resp, err := s.client.Do(req)
	if err != nil {
		return models.EnrolmentSet{}, fmt.Errorf("%w: %v", ErrEnrolmentFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.EnrolmentSet{}, fmt.Errorf("%w: unexpected status %d", ErrEnrolmentFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.EnrolmentSet{}, fmt.Errorf("%w: read body: %v", ErrEnrolmentFetch, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return models.EnrolmentSet{}, fmt.Errorf("%w: empty response body", ErrEnrolmentFetch)
	}

	set := ParseEnrolments(body)
	log.Printf("EnrolmentService - Resolve: %d courses for student", len(set))
	if s.cache != nil {
		s.cache.Set(cacheKey, set, s.ttl)
	}
	return set, nil
}

type enrolmentDocument struct {
	Entries []struct {
		CatalogNumber string `xml:"CatalogNumber"`
	} `xml:"EnrolmentEntry"`
}

// ParseEnrolments reads a JSON array or an XML document of enrolment entries.
// Anything it cannot read yields an empty set.
func ParseEnrolments(body []byte) models.EnrolmentSet {
	set := models.NewEnrolmentSet()

	if json.Valid(body) {
		var entries []map[string]any
		if err := json.Unmarshal(body, &entries); err != nil {
			return set
		}
		for _, entry := range entries {
			if code, ok := catalogNumber(entry["CatalogNumber"]); ok {
				set.Add(code)
			}
		}
		return set
	}

	var doc enrolmentDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return set
	}
	for _, entry := range doc.Entries {
		set.Add(entry.CatalogNumber)
	}
	return set
}

func catalogNumber(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func enrolmentCacheKey(studentID string) string {
	return "enrolments:" + studentID
}
