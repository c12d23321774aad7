package api

import (
	"github.com/samcharles93/xdbf/internal/catalog"
	"github.com/samcharles93/xdbf/pkg/xdbf"
)

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

type TitleResponse struct {
	ID               string   `json:"id"`
	Object           string   `json:"object"`
	Name             string   `json:"name"`
	Path             string   `json:"path"`
	Compression      string   `json:"compression"`
	Title            string   `json:"title"`
	DefaultLocale    string   `json:"default_locale"`
	Locales          []string `json:"locales"`
	AchievementCount uint32   `json:"achievement_count"`
	Gamerscore       uint64   `json:"gamerscore"`
	HasIcon          bool     `json:"has_icon"`
	IconSize         int      `json:"icon_size,omitempty"`
}

type TitleListResponse struct {
	Object string          `json:"object"`
	Data   []TitleResponse `json:"data"`
}

type AchievementResponse struct {
	ID                    uint32 `json:"id"`
	ImageID               uint32 `json:"image_id"`
	Gamerscore            uint32 `json:"gamerscore"`
	Flags                 uint32 `json:"flags"`
	Type                  string `json:"type"`
	Secret                bool   `json:"secret"`
	Label                 string `json:"label"`
	Description           string `json:"description"`
	UnachievedDescription string `json:"unachieved_description"`
}

type AchievementListResponse struct {
	Object  string                `json:"object"`
	TitleID string                `json:"title_id"`
	Locale  string                `json:"locale"`
	Count   uint32                `json:"count"`
	Data    []AchievementResponse `json:"data"`
}

type StringResponse struct {
	ID   uint16 `json:"id"`
	Text string `json:"text"`
}

type StringListResponse struct {
	Object  string           `json:"object"`
	TitleID string           `json:"title_id"`
	Locale  string           `json:"locale"`
	Data    []StringResponse `json:"data"`
}

func NewTitleResponse(t *catalog.Title) TitleResponse {
	s := t.Summary
	locales := make([]string, len(s.Locales))
	for i, l := range s.Locales {
		locales[i] = l.String()
	}
	return TitleResponse{
		ID:               t.ID.String(),
		Object:           "title",
		Name:             t.Name,
		Path:             t.Path,
		Compression:      t.Compression.String(),
		Title:            s.Title,
		DefaultLocale:    s.DefaultLocale.String(),
		Locales:          locales,
		AchievementCount: s.AchievementCount,
		Gamerscore:       s.Gamerscore,
		HasIcon:          s.HasIcon,
		IconSize:         s.IconSize,
	}
}

// NewAchievementResponse flattens a decoded achievement for JSON output.
func NewAchievementResponse(a xdbf.Achievement) AchievementResponse {
	return AchievementResponse{
		ID:                    a.ID,
		ImageID:               a.ImageID,
		Gamerscore:            a.Gamerscore,
		Flags:                 a.Flags,
		Type:                  a.Type().String(),
		Secret:                a.Secret(),
		Label:                 a.Label,
		Description:           a.Description,
		UnachievedDescription: a.UnachievedDescription,
	}
}
