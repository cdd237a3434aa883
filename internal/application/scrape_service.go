package application

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"

	"culturate/internal/ai"
	"culturate/internal/models"
)

var filePageNameRegex = regexp.MustCompile(`/wiki/File:([^/?#]+)`)

// ScrapeServiceImpl drives the acquire-validate-retry pipeline: one
// candidate at a time, accepted on the first score clearing the
// threshold, exhausted loudly once the attempt limit runs out.
type ScrapeServiceImpl struct {
	oracle  Oracle
	videos  VideoSearcher
	scraper MediaScraper
	logger  Logger

	threshold    float64
	maxAttempts  int
	attemptDelay time.Duration
}

func NewScrapeServiceImpl(oracle Oracle, videos VideoSearcher, scraper MediaScraper, cfg Config, logger Logger) *ScrapeServiceImpl {
	return &ScrapeServiceImpl{
		oracle:       oracle,
		videos:       videos,
		scraper:      scraper,
		logger:       logger,
		threshold:    cfg.scrapeThreshold(),
		maxAttempts:  cfg.maxAttempts(),
		attemptDelay: cfg.attemptDelay(),
	}
}

func (s *ScrapeServiceImpl) ScrapeUntilValid(ctx context.Context) (*models.ScrapedMedia, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		s.logger.Info("scraping attempt", "attempt", attempt, "max", s.maxAttempts)

		candidate := s.scrapeOnce(ctx)

		valid := candidate.Confidence >= s.threshold && candidate.MediaURL != ""
		// The local artifact never outlives the attempt, accepted or not.
		if candidate.LocalPath != "" {
			if err := s.scraper.Cleanup(candidate.LocalPath); err != nil {
				s.logger.Error("cleanup failed", "path", candidate.LocalPath, "error", err.Error())
			}
			candidate.LocalPath = ""
		}

		if valid {
			s.logger.Info("found valid media", "attempt", attempt,
				"province", candidate.Province, "confidence", candidate.Confidence)

			funFact := candidate.FunFact
			if funFact == "" {
				funFact = candidate.Query
			}
			return &models.ScrapedMedia{
				Province: candidate.Province,
				Kind:     candidate.Kind,
				MediaURL: candidate.MediaURL,
				Category: candidate.Category,
				Query:    candidate.Query,
				FunFact:  funFact,
			}, nil
		}

		s.logger.Warn("attempt rejected", "attempt", attempt,
			"confidence", candidate.Confidence, "status", string(candidate.Status))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.attemptDelay):
		}
	}

	return nil, fmt.Errorf("could not find valid cultural media after %d attempts", s.maxAttempts)
}

// scrapeOnce runs a single attempt end to end. It never fails hard; a
// broken attempt comes back as a zero-confidence candidate.
func (s *ScrapeServiceImpl) scrapeOnce(ctx context.Context) *models.MediaCandidate {
	province := provinces[rand.Intn(len(provinces))]
	kind := chooseMediaKind()

	var category string
	if kind == models.MediaKindVideo {
		category = videoCulturalCategories[rand.Intn(len(videoCulturalCategories))]
	} else {
		category = culturalCategories[rand.Intn(len(culturalCategories))]
	}

	s.logger.Info("starting scrape attempt", "province", province, "category", category, "kind", string(kind))

	query := s.generateQuery(ctx, province, category)

	if kind == models.MediaKindVideo {
		return s.scrapeVideo(ctx, province, category, query)
	}
	return s.scrapeImage(ctx, province, category, query)
}

func chooseMediaKind() models.MediaKind {
	if rand.Float64() < imageWeight {
		return models.MediaKindImage
	}
	return models.MediaKindVideo
}

func (s *ScrapeServiceImpl) generateQuery(ctx context.Context, province, category string) string {
	raw, err := s.oracle.Generate(ctx, ai.BuildQueryPrompt(province, category))
	if err != nil {
		s.logger.Error("query generation failed", "error", err.Error())
		return fallbackQuery(category, province)
	}

	query := strings.TrimSpace(raw)
	query = strings.ReplaceAll(query, `"`, "")
	query = strings.ReplaceAll(query, "'", "")
	if query == "" {
		return fallbackQuery(category, province)
	}

	s.logger.Info("generated query", "province", province, "category", category, "query", query)
	return query
}

func (s *ScrapeServiceImpl) scrapeImage(ctx context.Context, province, category, query string) *models.MediaCandidate {
	candidate := &models.MediaCandidate{
		Province: province,
		Category: category,
		Kind:     models.MediaKindImage,
		Query:    query,
	}

	filePages, err := s.scraper.SearchCommons(ctx, query, maxSearchResults)
	if err != nil {
		s.logger.Error("commons search failed", "query", query, "error", err.Error())
	}
	if len(filePages) == 0 {
		candidate.Status = models.StatusNoResults
		return candidate
	}

	for _, filePage := range filePages {
		imageURL, err := s.scraper.ExtractImageURL(ctx, filePage)
		if err != nil {
			s.logger.Warn("image extraction failed", "page", filePage, "error", err.Error())
			continue
		}

		localPath, err := s.scraper.Download(ctx, imageURL, province, query)
		if err != nil {
			s.logger.Warn("image download failed", "url", imageURL, "error", err.Error())
			continue
		}

		candidate.Status = models.StatusSuccess
		candidate.SourceURL = filePage
		candidate.MediaURL = imageURL
		candidate.LocalPath = localPath
		candidate.Confidence = s.scoreImage(ctx, province, category, query, filePage)
		candidate.FunFact = s.imageFunFact(ctx, filePage, query)
		return candidate
	}

	candidate.Status = models.StatusProcessingFailed
	return candidate
}

func (s *ScrapeServiceImpl) scrapeVideo(ctx context.Context, province, category, query string) *models.MediaCandidate {
	candidate := &models.MediaCandidate{
		Province: province,
		Category: category,
		Kind:     models.MediaKindVideo,
		Query:    query,
	}

	videos, err := s.videos.Search(ctx, query, maxSearchResults)
	if err != nil {
		s.logger.Error("video search failed", "query", query, "error", err.Error())
	}
	if len(videos) == 0 {
		candidate.Status = models.StatusNoResults
		return candidate
	}

	video := videos[0]
	candidate.Status = models.StatusSuccess
	candidate.SourceURL = video.VideoURL
	candidate.MediaURL = video.VideoURL
	candidate.VideoID = video.VideoID
	candidate.Title = video.Title
	candidate.Description = video.Description
	candidate.ChannelTitle = video.ChannelTitle
	candidate.ThumbnailURL = video.ThumbnailURL
	candidate.PublishedAt = video.PublishedAt
	candidate.Confidence = s.scoreVideo(ctx, video, province, category, query)
	candidate.FunFact = s.videoFunFact(ctx, video, query)
	return candidate
}

// scoreImage asks the oracle for a bare numeric authenticity score; when
// the call fails the keyword fallback over the filename and query kicks
// in with the image-specific bounds.
func (s *ScrapeServiceImpl) scoreImage(ctx context.Context, province, category, query, filePage string) float64 {
	raw, err := s.oracle.Generate(ctx, ai.BuildImageValidationPrompt(province, category, query))
	if err != nil {
		s.logger.Error("image validation failed", "error", err.Error())
		score := keywordScore(filePageName(filePage)+" "+query, imageFallbackFloor, imageFallbackCeiling)
		s.logger.Info("fallback image validation", "confidence", score)
		return score
	}

	score, ok := ai.ExtractConfidence(raw)
	if !ok {
		s.logger.Warn("could not extract confidence score", "response", raw)
		return 0
	}

	s.logger.Info("image validation confidence", "province", province, "confidence", score)
	return score
}

func (s *ScrapeServiceImpl) scoreVideo(ctx context.Context, video models.VideoInfo, province, category, query string) float64 {
	raw, err := s.oracle.Generate(ctx, ai.BuildVideoValidationPrompt(video, province, category, query))
	if err != nil {
		s.logger.Error("video validation failed", "error", err.Error())
		score := keywordScore(video.Title+" "+video.Description, videoFallbackFloor, videoFallbackCeiling)
		s.logger.Info("fallback video validation", "confidence", score)
		return score
	}

	score, ok := ai.ExtractConfidence(raw)
	if !ok {
		s.logger.Warn("could not extract confidence score", "response", raw)
		return 0
	}

	s.logger.Info("video validation confidence", "title", video.Title, "confidence", score)
	return score
}

func (s *ScrapeServiceImpl) imageFunFact(ctx context.Context, filePage, query string) string {
	fact, err := s.oracle.Generate(ctx, ai.BuildImageFunFactPrompt(filePageName(filePage), query))
	if err != nil {
		s.logger.Error("fun fact generation failed", "error", err.Error())
		return query
	}
	return cleanOracleLine(fact, query)
}

func (s *ScrapeServiceImpl) videoFunFact(ctx context.Context, video models.VideoInfo, query string) string {
	fact, err := s.oracle.Generate(ctx, ai.BuildVideoFunFactPrompt(video, query))
	if err != nil {
		s.logger.Error("fun fact generation failed", "error", err.Error())
		return query
	}
	return cleanOracleLine(fact, query)
}

func cleanOracleLine(raw, fallback string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// filePageName turns a Commons file-page URL into a readable filename.
func filePageName(filePageURL string) string {
	m := filePageNameRegex.FindStringSubmatch(filePageURL)
	if m == nil {
		return ""
	}
	name := m[1]
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
