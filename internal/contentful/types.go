package contentful

import (
	"encoding/json"
	"strings"
	"time"
)

// Sys is the metadata block carried by every Contentful resource.
type Sys struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	LinkType    string    `json:"linkType,omitempty"`
	Version     int       `json:"version,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
	ContentType *Link     `json:"contentType,omitempty"`
}

// Link references another entry or asset.
type Link struct {
	Sys Sys `json:"sys"`
}

// Entry is a delivery API entry. Fields are decoded per content type.
type Entry struct {
	Sys    Sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// ContentTypeID returns the content type of the entry.
func (e Entry) ContentTypeID() string {
	if e.Sys.ContentType == nil {
		return ""
	}
	return e.Sys.ContentType.Sys.ID
}

type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

type AssetFields struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        AssetFile `json:"file"`
}

type AssetFile struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// URL returns the absolute asset URL. The API returns protocol relative URLs.
func (a Asset) URL() string {
	url := strings.TrimSpace(a.Fields.File.URL)
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

type Includes struct {
	Entry []Entry `json:"Entry"`
	Asset []Asset `json:"Asset"`
}

// EntryCollection is a page of entries with their resolved links.
type EntryCollection struct {
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Items    []Entry  `json:"items"`
	Includes Includes `json:"includes"`
}

// Assets indexes the included assets by id.
func (c *EntryCollection) Assets() map[string]Asset {
	out := make(map[string]Asset, len(c.Includes.Asset))
	for _, asset := range c.Includes.Asset {
		out[asset.Sys.ID] = asset
	}
	return out
}
