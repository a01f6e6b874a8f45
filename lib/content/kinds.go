package content

import (
	"strconv"

	"github.com/geocontent/backend/lib/diff"
)

const (
	KindTag      = "tag"
	KindWaypoint = "waypoint"
	KindMedia    = "media"
	KindStatic   = "static"
)

var Kinds = []string{KindTag, KindWaypoint, KindMedia, KindStatic}

// Tag is a reusable label attached to waypoints and media.
type Tag struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=2000"`
}

func (t Tag) Fields() diff.Fields {
	return diff.Fields{
		Text: map[string]string{
			"name":        t.Name,
			"description": t.Description,
		},
	}
}

// Waypoint is a geo-located point of interest.
type Waypoint struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=10000"`
	Latitude    float64  `json:"latitude" validate:"latitude"`
	Longitude   float64  `json:"longitude" validate:"longitude"`
	Tags        []string `json:"tags" validate:"max=32,dive,required,max=64"`
}

func (w Waypoint) Fields() diff.Fields {
	return diff.Fields{
		Text: map[string]string{
			"title":       w.Title,
			"description": w.Description,
			"position":    formatPosition(w.Latitude, w.Longitude),
		},
		Lists: map[string][]string{
			"tags": w.Tags,
		},
	}
}

type Media struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Caption    string   `json:"caption" validate:"max=2000"`
	URL        string   `json:"url" validate:"required,url"`
	MimeType   string   `json:"mimeType" validate:"required,oneof=image/jpeg image/png image/webp video/mp4 audio/mpeg"`
	WaypointID string   `json:"waypointId,omitempty" validate:"omitempty,uuid"`
	Tags       []string `json:"tags" validate:"max=32,dive,required,max=64"`
}

func (m Media) Fields() diff.Fields {
	return diff.Fields{
		Text: map[string]string{
			"title":    m.Title,
			"caption":  m.Caption,
			"url":      m.URL,
			"mimeType": m.MimeType,
			"waypoint": m.WaypointID,
		},
		Lists: map[string][]string{
			"tags": m.Tags,
		},
	}
}

// StaticContent is an editorial page such as an imprint or a guide.
type StaticContent struct {
	Slug  string `json:"slug" validate:"required,max=100,lowercase,excludesall= /"`
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}

func (s StaticContent) Fields() diff.Fields {
	return diff.Fields{
		Text: map[string]string{
			"slug":  s.Slug,
			"title": s.Title,
			"body":  s.Body,
		},
	}
}

func formatPosition(latitude float64, longitude float64) string {
	return strconv.FormatFloat(latitude, 'f', 6, 64) + " " + strconv.FormatFloat(longitude, 'f', 6, 64)
}
