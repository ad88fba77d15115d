package domain

// Topic is a subject that news resources can be tagged with.
type Topic struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	URL              string `json:"url"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

// EntityID implements Entity.
func (t Topic) EntityID() string { return t.ID }

// AsFts derives the shadow record indexed for this topic.
func (t Topic) AsFts() TopicFts {
	return TopicFts{
		TopicID:          t.ID,
		Name:             t.Name,
		ShortDescription: t.ShortDescription,
		LongDescription:  t.LongDescription,
	}
}

// TopicFts is the searchable projection of a Topic.
type TopicFts struct {
	TopicID          string
	Name             string
	ShortDescription string
	LongDescription  string
}

// EntityID implements FtsRecord.
func (f TopicFts) EntityID() string { return f.TopicID }

// SearchText implements FtsRecord.
func (f TopicFts) SearchText() []string {
	return []string{f.Name, f.ShortDescription, f.LongDescription}
}
