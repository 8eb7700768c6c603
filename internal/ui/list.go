package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/rossw/tvrx/internal/models"
)

var (
	_ list.Item = recItem{}
)

// recItem wraps [models.RecommendationItem] to implement [list.Item].
type recItem struct {
	item        models.RecommendationItem
	onWatchlist bool
}

func (i recItem) FilterValue() string { return i.item.Title }

func (i recItem) Title() string {
	title := i.item.Title
	if i.item.Year != nil {
		title = fmt.Sprintf("%s (%d)", title, *i.item.Year)
	}
	if i.onWatchlist {
		title = "★ " + title
	}
	return title
}

func (i recItem) Description() string {
	desc := fmt.Sprintf("%s %.0f%%", i.item.Prediction.Label, i.item.Prediction.Confidence*100)
	if badges := i.item.Badges(); len(badges) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, strings.Join(badges, ", "))
	}
	if i.item.Rationale != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.item.Rationale)
	}
	return desc
}
