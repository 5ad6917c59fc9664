package identity

import (
	"net/url"
	"strings"
	"unicode"

	"media-sync/core/media"
)

// Classification is what can be learned from a single identifier string.
type Classification struct {
	// ExternalID is nil when the scheme carries no usable provider id.
	ExternalID *media.ExternalID
	// Hint is media.TypeUnknown when nothing could be inferred.
	Hint media.Type
	// PlexKey is the discovery-service key for "plex://" identifiers.
	PlexKey string
}

const legacyAgentPrefix = "com.plexapp.agents."

// Classify recognizes provider-prefixed identifiers.
//
//	tmdb://603                              -> tmdb:603, movie
//	com.plexapp.agents.thetvdb://81189/1/1  -> tvdb:81189, show
//	imdb://tt0133093                        -> imdb:tt0133093, no hint
//	plex://show/5d9c086c46115600200aa2fe    -> no id, show, PlexKey set
//	foo://xyz                               -> nothing
func Classify(identifier string) Classification {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(identifier), "://")
	if !ok {
		return Classification{Hint: media.TypeUnknown}
	}
	scheme = strings.TrimPrefix(strings.ToLower(scheme), legacyAgentPrefix)

	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	segments := splitSegments(rest)

	var (
		provider   media.Provider
		schemeHint = media.TypeUnknown
		recognized = true
		pathHint   = media.TypeUnknown
		firstPlain string
	)
	switch scheme {
	case "tmdb", "themoviedb", "movie-database":
		provider, schemeHint = media.ProviderTMDB, media.TypeMovie
	case "tvdb", "thetvdb", "tv-database":
		provider, schemeHint = media.ProviderTVDB, media.TypeShow
	case "imdb", "internet-movie-database":
		provider = media.ProviderIMDB
	case "plex":
	default:
		recognized = false
	}
	if !recognized {
		return Classification{Hint: media.TypeUnknown}
	}

	for _, seg := range segments {
		if h := segmentHint(seg); h != media.TypeUnknown {
			if pathHint == media.TypeUnknown {
				pathHint = h
			}
			continue
		}
		if firstPlain == "" {
			firstPlain = seg
		}
	}

	c := Classification{Hint: schemeHint}
	if pathHint != media.TypeUnknown {
		c.Hint = pathHint
	}
	if provider != "" {
		c.ExternalID = media.NewExternalID(provider, firstPlain)
	} else {
		c.PlexKey = firstPlain
	}
	return c
}

// KeywordHint infers a media type from free text such as a feed category or link.
// Only the path of a URL is considered. The first text that yields a hint wins.
func KeywordHint(texts ...string) media.Type {
	for _, text := range texts {
		if u, err := url.Parse(text); err == nil && u.Host != "" {
			text = u.Path
		}
		for _, token := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
			if h := segmentHint(token); h != media.TypeUnknown {
				return h
			}
		}
	}
	return media.TypeUnknown
}

func segmentHint(seg string) media.Type {
	seg = strings.ToLower(seg)
	switch {
	case seg == "tv", strings.Contains(seg, "show"), strings.Contains(seg, "series"):
		return media.TypeShow
	case strings.Contains(seg, "movie"), strings.Contains(seg, "film"):
		return media.TypeMovie
	default:
		return media.TypeUnknown
	}
}

func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
