package domain

const unknownDescription = "Unknown"

// ContentType identifies one tracked entity type.
// The value doubles as the primary table name for that type.
type ContentType string

// Tracked content types.
const (
	// ContentTypeNewsResources is the news article type.
	ContentTypeNewsResources ContentType = "news_resources"

	// ContentTypeTopics is the topic type.
	ContentTypeTopics ContentType = "topics"
)

// AllContentTypes returns every tracked content type in a stable order.
func AllContentTypes() []ContentType {
	return []ContentType{ContentTypeNewsResources, ContentTypeTopics}
}

// IsValid returns true if the content type is recognised.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeNewsResources, ContentTypeTopics:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ContentType) String() string {
	return string(c)
}

// Description returns a human-readable description of the type.
func (c ContentType) Description() string {
	switch c {
	case ContentTypeNewsResources:
		return "News resources"
	case ContentTypeTopics:
		return "Topics"
	default:
		return unknownDescription
	}
}

// FtsTable returns the name of the shadow table for this type.
func (c ContentType) FtsTable() string {
	return string(c) + "_fts"
}

// Entity is a record held by a primary store.
type Entity interface {
	EntityID() string
}

// FtsRecord is a shadow record held by an FTS store.
// EntityID is not unique: the same entity may be inserted more than once.
type FtsRecord interface {
	EntityID() string

	// SearchText returns the indexed text fields in column order.
	SearchText() []string
}

// ContentBundle is a batch of entities for import.
type ContentBundle struct {
	NewsResources []NewsResource `json:"newsResources"`
	Topics        []Topic        `json:"topics"`
}

// Size returns the number of entities in the bundle.
func (b ContentBundle) Size() int {
	return len(b.NewsResources) + len(b.Topics)
}
