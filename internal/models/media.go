package models

import (
	"encoding/json"
	"fmt"
)

type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	default:
		return "none"
	}
}

// Media is the optional illustration attached to a question or an answer
// option. The zero value carries no media.
type Media struct {
	Kind MediaKind
	URL  string
}

func NoMedia() Media { return Media{} }

func ImageMedia(url string) Media { return Media{Kind: MediaImage, URL: url} }

func VideoMedia(url string) Media { return Media{Kind: MediaVideo, URL: url} }

func (m Media) IsNone() bool { return m.Kind == MediaNone || m.URL == "" }

// MediaFromColumns maps the nullable media_url/media_type column pair.
// A URL without a recognised type is rendered as an image by clients, so it
// becomes an image here too.
func MediaFromColumns(url, kind *string) Media {
	if url == nil || *url == "" {
		return NoMedia()
	}
	if kind != nil && *kind == "video" {
		return VideoMedia(*url)
	}
	return ImageMedia(*url)
}

// Columns is the inverse of MediaFromColumns.
func (m Media) Columns() (url, kind *string) {
	if m.IsNone() {
		return nil, nil
	}
	u, k := m.URL, m.Kind.String()
	return &u, &k
}

type mediaJSON struct {
	Kind string `json:"kind" yaml:"kind"`
	URL  string `json:"url" yaml:"url"`
}

func (m Media) MarshalJSON() ([]byte, error) {
	if m.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(mediaJSON{Kind: m.Kind.String(), URL: m.URL})
}

func (m *Media) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NoMedia()
		return nil
	}
	var raw mediaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseMedia(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalYAML accepts the same {kind, url} mapping as the JSON form.
func (m *Media) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw mediaJSON
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := parseMedia(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func parseMedia(raw mediaJSON) (Media, error) {
	if raw.URL == "" {
		return NoMedia(), nil
	}
	switch raw.Kind {
	case "image", "":
		return ImageMedia(raw.URL), nil
	case "video":
		return VideoMedia(raw.URL), nil
	default:
		return Media{}, fmt.Errorf("unknown media kind %q", raw.Kind)
	}
}
