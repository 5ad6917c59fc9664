package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"media-sync/core/identity"
	"media-sync/core/media"
)

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
	Description string   `xml:"description"`
}

// Feed fetches one RSS watchlist feed and tags its entries with origin.
func (c *Client) Feed(ctx context.Context, feedURL string, origin media.Origin) ([]identity.FeedRecord, error) {
	body, _, err := c.get(ctx, request{
		url:     strings.TrimSpace(feedURL),
		accept:  "application/rss+xml, application/xml;q=0.9, */*;q=0.8",
		timeout: requestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", origin, err)
	}
	return parseFeed(body, origin)
}

func parseFeed(body []byte, origin media.Origin) ([]identity.FeedRecord, error) {
	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", origin, err)
	}

	records := make([]identity.FeedRecord, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		records = append(records, identity.FeedRecord{
			Title:       title,
			Link:        strings.TrimSpace(item.Link),
			GUID:        strings.TrimSpace(item.GUID),
			Category:    strings.Join(item.Categories, " "),
			Description: strings.TrimSpace(item.Description),
			Origin:      origin,
		})
	}
	return records, nil
}
