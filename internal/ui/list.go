package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"chanlist/internal/models"
)

var (
	_ list.Item = playlistItem{}
)

// playlistItem wraps [models.PlaylistRecord] to implement [list.Item].
type playlistItem struct {
	record models.PlaylistRecord
}

func (i playlistItem) FilterValue() string { return i.record.Title }
func (i playlistItem) Title() string       { return i.record.Title }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d videos", i.record.VideoCount)
	if i.record.Uploader != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.record.Uploader)
	}
	return desc
}
