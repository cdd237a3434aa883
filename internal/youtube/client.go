package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"culturate/internal/models"
)

// Searches are biased to Indonesian results; cultural content is mostly
// titled and described in Indonesian.
const (
	regionCode        = "ID"
	relevanceLanguage = "id"
)

// Client wraps the YouTube Data API v3 search surface.
type Client struct {
	service *youtube.Service
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{service: service}, nil
}

// Search returns up to maxResults videos for the query, most relevant
// first. Only plain videos are returned, never channels or playlists.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]models.VideoInfo, error) {
	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Order("relevance").
		RegionCode(regionCode).
		RelevanceLanguage(relevanceLanguage).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	var videos []models.VideoInfo
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		thumbnail := ""
		if item.Snippet.Thumbnails != nil {
			if item.Snippet.Thumbnails.High != nil {
				thumbnail = item.Snippet.Thumbnails.High.Url
			} else if item.Snippet.Thumbnails.Default != nil {
				thumbnail = item.Snippet.Thumbnails.Default.Url
			}
		}

		videos = append(videos, models.VideoInfo{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			ThumbnailURL: thumbnail,
			VideoURL:     fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id.VideoId),
		})
	}

	return videos, nil
}
