// Package testutil holds the shared content data set used by tests.
//
// The set has 2 topics and 5 news resources. Topic "2" and news
// resources "1" and "2" contain the token "Android"; no other field
// contains a token starting with "android".
package testutil

import (
	"fmt"
	"time"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// SearchTerm matches topic "2" and news resources "1" and "2".
const SearchTerm = "Android"

// Topics returns the topic data set ordered by id.
func Topics() []domain.Topic {
	return []domain.Topic{
		{
			ID:               "1",
			Name:             "Headlines",
			ShortDescription: "News you'll definitely be interested in",
			LongDescription:  "The latest events and announcements from the world of mobile development.",
			URL:              "https://example.com/topics/1",
			ImageURL:         "https://example.com/topics/1.svg",
		},
		{
			ID:               "2",
			Name:             "Android Studio & Tools",
			ShortDescription: "Tooling for app developers",
			LongDescription:  "Studio releases, build tooling and profilers.",
			URL:              "https://example.com/topics/2",
		},
	}
}

// NewsResources returns the news data set ordered newest first, which is
// also ascending id order.
func NewsResources() []domain.NewsResource {
	day := func(month int) time.Time {
		return time.Date(2022, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	}
	return []domain.NewsResource{
		{
			ID:          "1",
			Title:       "Android Basics with Compose",
			Content:     "We released the first two units of the new course.",
			URL:         "https://example.com/news/1",
			PublishDate: day(11),
			Type:        "Codelab",
		},
		{
			ID:             "2",
			Title:          "Thanks for helping us reach 1M subscribers",
			Content:        "Thank you everyone for following the Now in Android series.",
			URL:            "https://example.com/news/2",
			HeaderImageURL: "https://example.com/news/2.png",
			PublishDate:    day(10),
			Type:           "Video",
		},
		{
			ID:          "3",
			Title:       "Transformations and customisations in the Paging Library",
			Content:     "A demonstration of different operations that can be performed with Paging.",
			URL:         "https://example.com/news/3",
			PublishDate: day(9),
			Type:        "Video",
		},
		{
			ID:          "4",
			Title:       "Community tip on Paging",
			Content:     "Tips for using the Paging library in practice.",
			URL:         "https://example.com/news/4",
			PublishDate: day(8),
			Type:        "Article",
		},
		{
			ID:          "5",
			Title:       "Kotlin coroutines deep dive",
			Content:     "Structured concurrency, cancellation and flows.",
			URL:         "https://example.com/news/5",
			PublishDate: day(7),
			Type:        "Article",
		},
	}
}

// Bundle returns the full data set as an import bundle.
func Bundle() domain.ContentBundle {
	return domain.ContentBundle{NewsResources: NewsResources(), Topics: Topics()}
}

// NewsResourceFtsRecords returns n shadow records with ids "0".."n-1",
// titles "test0".. and contents "content0"..
func NewsResourceFtsRecords(n int) []domain.NewsResourceFts {
	out := make([]domain.NewsResourceFts, n)
	for i := range out {
		out[i] = domain.NewsResourceFts{
			NewsResourceID: fmt.Sprint(i),
			Title:          fmt.Sprintf("test%d", i),
			Content:        fmt.Sprintf("content%d", i),
		}
	}
	return out
}

// TopicFtsRecords returns n shadow records with ids "0".."n-1".
func TopicFtsRecords(n int) []domain.TopicFts {
	out := make([]domain.TopicFts, n)
	for i := range out {
		out[i] = domain.TopicFts{
			TopicID:          fmt.Sprint(i),
			Name:             fmt.Sprintf("topic%d", i),
			ShortDescription: fmt.Sprintf("short%d", i),
			LongDescription:  fmt.Sprintf("long%d", i),
		}
	}
	return out
}
