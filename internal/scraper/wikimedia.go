package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	commonsBaseURL = "https://commons.wikimedia.org"
	uploadHost     = "upload.wikimedia.org"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	searchTimeout   = 10 * time.Second
	downloadTimeout = 30 * time.Second
	maxDownloadSize = 20 * 1024 * 1024
)

var (
	filePageRegex = regexp.MustCompile(`(?i)/wiki/File:[^"'\s<>\\]+\.(?:jpg|jpeg|png|webp|gif)`)
	anchorRegex   = regexp.MustCompile(`(?is)<a\s[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	imgSrcRegex   = regexp.MustCompile(`(?i)<img\s[^>]*src="([^"]+)"`)
	thumbPxRegex  = regexp.MustCompile(`/(\d+)px-`)
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// CommonsScraper resolves Wikimedia Commons search results to direct
// image URLs and handles the scoped local downloads.
type CommonsScraper struct {
	client      *http.Client
	baseURL     string
	downloadDir string
	log         Logger
}

func NewCommonsScraper(downloadDir string, log Logger) *CommonsScraper {
	return &CommonsScraper{
		client:      &http.Client{Timeout: downloadTimeout},
		baseURL:     commonsBaseURL,
		downloadDir: downloadDir,
		log:         log,
	}
}

// SearchCommons returns up to maxResults Commons file-page URLs for the
// query, in result order. A failed search returns an empty slice and the
// error; callers treat that as "no results".
func (s *CommonsScraper) SearchCommons(ctx context.Context, query string, maxResults int) ([]string, error) {
	searchURL := fmt.Sprintf("%s/w/index.php?search=%s", s.baseURL, url.QueryEscape(query))
	s.log.Info("searching wikimedia commons", "url", searchURL)

	body, err := s.fetchPage(ctx, searchURL, searchTimeout)
	if err != nil {
		return nil, fmt.Errorf("commons search failed: %w", err)
	}

	seen := make(map[string]bool)
	var filePages []string
	for _, match := range filePageRegex.FindAllString(body, -1) {
		full := s.baseURL + match
		if seen[full] {
			continue
		}
		seen[full] = true
		filePages = append(filePages, full)
		if len(filePages) >= maxResults {
			break
		}
	}

	s.log.Info("commons search done", "query", query, "results", len(filePages))
	return filePages, nil
}

// ExtractImageURL resolves a Commons file page to the actual binary
// resource. Preference order: the full-image link block, an explicit
// "original file" anchor, the largest thumbnail converted to its
// non-thumb form, then any direct upload-host link.
func (s *CommonsScraper) ExtractImageURL(ctx context.Context, filePageURL string) (string, error) {
	body, err := s.fetchPage(ctx, filePageURL, searchTimeout)
	if err != nil {
		return "", fmt.Errorf("fetch file page: %w", err)
	}

	if u := s.fullImageLink(body); u != "" {
		return u, nil
	}
	if u := s.originalFileAnchor(body); u != "" {
		return u, nil
	}
	if u := s.largestThumbnail(body); u != "" {
		return u, nil
	}
	if u := s.directUploadLink(body); u != "" {
		return u, nil
	}

	return "", fmt.Errorf("no image URL found in %s", filePageURL)
}

func (s *CommonsScraper) fullImageLink(body string) string {
	idx := strings.Index(body, "fullImageLink")
	if idx < 0 {
		return ""
	}
	section := body[idx:]
	if m := anchorRegex.FindStringSubmatch(section); m != nil && hasImageExtension(m[1]) {
		return absoluteUploadURL(m[1])
	}
	return ""
}

func (s *CommonsScraper) originalFileAnchor(body string) string {
	for _, m := range anchorRegex.FindAllStringSubmatch(body, -1) {
		text := strings.ToLower(strings.TrimSpace(m[2]))
		if strings.Contains(text, "original file") || strings.Contains(text, "full resolution") || strings.Contains(text, "original") {
			if hasImageExtension(m[1]) {
				return absoluteUploadURL(m[1])
			}
		}
	}
	return ""
}

func (s *CommonsScraper) largestThumbnail(body string) string {
	var largest string
	largestSize := 0
	for _, m := range imgSrcRegex.FindAllStringSubmatch(body, -1) {
		src := m[1]
		if !strings.Contains(src, uploadHost) || !strings.Contains(src, "/thumb/") || !hasImageExtension(src) {
			continue
		}
		px := thumbPxRegex.FindStringSubmatch(src)
		if px == nil {
			continue
		}
		size, err := strconv.Atoi(px[1])
		if err != nil || size <= largestSize {
			continue
		}
		largestSize = size
		largest = src
	}

	if largest == "" {
		return ""
	}

	// A thumbnail path looks like .../thumb/a/ab/Name.jpg/800px-Name.jpg;
	// dropping the trailing component yields the original upload path.
	parts := strings.SplitN(largest, "/thumb/", 2)
	if len(parts) != 2 {
		return ""
	}
	segments := strings.Split(parts[1], "/")
	if len(segments) < 3 {
		return ""
	}
	originalPath := strings.Join(segments[:len(segments)-1], "/")
	return fmt.Sprintf("https://%s/wikipedia/commons/%s", uploadHost, originalPath)
}

func (s *CommonsScraper) directUploadLink(body string) string {
	for _, m := range anchorRegex.FindAllStringSubmatch(body, -1) {
		href := m[1]
		if strings.Contains(href, uploadHost) && hasImageExtension(href) && !strings.Contains(href, "/thumb/") {
			return absoluteUploadURL(href)
		}
	}
	return ""
}

// Download stores the image under a province-keyed directory and returns
// the local path. Non-image responses are rejected.
func (s *CommonsScraper) Download(ctx context.Context, imageURL, province, query string) (string, error) {
	provinceDir := filepath.Join(s.downloadDir, strings.ReplaceAll(province, " ", "_"))
	if err := os.MkdirAll(provinceDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	fileName := localFileName(imageURL, query)
	localPath := collisionFreePath(provinceDir, fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("URL does not point to an image: %s", imageURL)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create local file: %w", err)
	}

	_, err = io.Copy(f, io.LimitReader(resp.Body, maxDownloadSize))
	closeErr := f.Close()
	if err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("write local file: %w", err)
	}
	if closeErr != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("close local file: %w", closeErr)
	}

	s.log.Info("downloaded image", "path", localPath)
	return localPath, nil
}

// FetchImage reads remote image bytes for the inline oracle payload.
func (s *CommonsScraper) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}

// Cleanup removes a downloaded artifact. Missing files are not an error.
func (s *CommonsScraper) Cleanup(localPath string) error {
	if localPath == "" {
		return nil
	}
	if err := os.Remove(localPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	s.log.Debug("cleaned up local file", "path", localPath)
	return nil
}

func (s *CommonsScraper) fetchPage(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func hasImageExtension(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp", ".gif"} {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

func absoluteUploadURL(href string) string {
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return commonsBaseURL + href
	}
	return href
}

func localFileName(imageURL, query string) string {
	parsed, err := url.Parse(imageURL)
	if err == nil {
		if name := path.Base(parsed.Path); strings.Contains(name, ".") {
			if decoded, derr := url.PathUnescape(name); derr == nil {
				return decoded
			}
			return name
		}
	}
	return fmt.Sprintf("%s_%d.jpg", strings.ReplaceAll(query, " ", "_"), time.Now().Unix())
}

func collisionFreePath(dir, fileName string) string {
	candidate := filepath.Join(dir, fileName)
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
}
