package ai

import "culturate/internal/models"

func videoFixture(title, description string) models.VideoInfo {
	return models.VideoInfo{
		VideoID:      "abc123",
		Title:        title,
		Description:  description,
		ChannelTitle: "Budaya Channel",
		VideoURL:     "https://www.youtube.com/watch?v=abc123",
	}
}
