package models

// MediaKind distinguishes how a candidate is delivered to the oracle:
// images are downloaded and sent inline, videos are referenced by URL.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// CandidateStatus is the terminal state of a single scrape attempt.
type CandidateStatus string

const (
	StatusSuccess          CandidateStatus = "success"
	StatusNoResults        CandidateStatus = "no_results"
	StatusProcessingFailed CandidateStatus = "processing_failed"
	StatusError            CandidateStatus = "error"
)

// MediaCandidate is one proposed cultural asset under evaluation. It is
// owned by a single scrape attempt; LocalPath must be cleaned up before
// the candidate is returned or discarded.
type MediaCandidate struct {
	Province   string          `json:"province"`
	Category   string          `json:"cultural_category"`
	Kind       MediaKind       `json:"media_type"`
	Query      string          `json:"query"`
	Status     CandidateStatus `json:"status"`
	SourceURL  string          `json:"source_url,omitempty"`
	MediaURL   string          `json:"media_url,omitempty"`
	LocalPath  string          `json:"-"`
	Confidence float64         `json:"confidence_score"`
	FunFact    string          `json:"cultural_fun_fact,omitempty"`

	// Video metadata, populated only for Kind == MediaKindVideo.
	VideoID      string `json:"video_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ChannelTitle string `json:"channel_title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	PublishedAt  string `json:"published_at,omitempty"`
}

// ScrapedMedia is what the orchestrator hands back to the caller once a
// candidate clears the acceptance bar. Only the remote URL survives; any
// downloaded bytes are gone by the time this exists.
type ScrapedMedia struct {
	Province string    `json:"province"`
	Kind     MediaKind `json:"media_type"`
	MediaURL string    `json:"media_url"`
	Category string    `json:"cultural_category"`
	Query    string    `json:"query"`
	FunFact  string    `json:"cultural_fun_fact"`
}

// VideoInfo is the structured metadata returned by the video search
// provider. Videos are validated by metadata only, never downloaded.
type VideoInfo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoURL     string `json:"video_url"`
}
