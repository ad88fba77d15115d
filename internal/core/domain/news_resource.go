package domain

import "time"

// NewsResource is a news article.
type NewsResource struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	URL            string    `json:"url"`
	HeaderImageURL string    `json:"headerImageUrl,omitempty"`
	PublishDate    time.Time `json:"publishDate"`
	Type           string    `json:"type"`
}

// EntityID implements Entity.
func (n NewsResource) EntityID() string { return n.ID }

// AsFts derives the shadow record indexed for this news resource.
func (n NewsResource) AsFts() NewsResourceFts {
	return NewsResourceFts{
		NewsResourceID: n.ID,
		Title:          n.Title,
		Content:        n.Content,
	}
}

// NewsResourceFts is the searchable projection of a NewsResource.
type NewsResourceFts struct {
	NewsResourceID string
	Title          string
	Content        string
}

// EntityID implements FtsRecord.
func (f NewsResourceFts) EntityID() string { return f.NewsResourceID }

// SearchText implements FtsRecord.
func (f NewsResourceFts) SearchText() []string {
	return []string{f.Title, f.Content}
}
