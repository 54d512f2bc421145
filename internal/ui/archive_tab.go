package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/ripvid/internal/archive"
	"github.com/ytget/ripvid/internal/model"
)

// ArchiveTab lists completed downloads with reveal and remove actions.
type ArchiveTab struct {
	store *archive.Store
	log   *zap.Logger

	entries []model.ArchiveEntry
	list    *widget.List

	onReveal func(filePath string)
}

// NewArchiveTab creates the archive view backed by the given store.
func NewArchiveTab(store *archive.Store, onReveal func(string), log *zap.Logger) *ArchiveTab {
	if log == nil {
		log = zap.NewNop()
	}
	at := &ArchiveTab{
		store:    store,
		log:      log,
		onReveal: onReveal,
	}
	at.createList()
	at.Reload()
	return at
}

// Container returns the tab content.
func (at *ArchiveTab) Container() fyne.CanvasObject {
	return at.list
}

// Reload refetches entries from the store and refreshes the list.
func (at *ArchiveTab) Reload() {
	entries, err := at.store.List()
	if err != nil {
		at.log.Warn("failed to load archive", zap.Error(err))
		return
	}
	at.entries = entries
	at.list.Refresh()
}

func (at *ArchiveTab) createList() {
	at.list = widget.NewList(
		func() int { return len(at.entries) },
		func() fyne.CanvasObject { return at.createItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { at.updateItem(id, obj) },
	)
}

type archiveItem struct {
	root      *fyne.Container
	title     *widget.Label
	meta      *widget.Label
	revealBtn *widget.Button
	removeBtn *widget.Button
}

func (at *ArchiveTab) createItem() fyne.CanvasObject {
	item := &archiveItem{
		title: widget.NewLabel(""),
		meta:  widget.NewLabel(""),
	}
	item.title.TextStyle = fyne.TextStyle{Bold: true}
	item.title.Truncation = fyne.TextTruncateEllipsis
	item.meta.TextStyle = fyne.TextStyle{Monospace: true}

	item.revealBtn = widget.NewButton("open", nil)
	item.revealBtn.Importance = widget.MediumImportance
	item.removeBtn = widget.NewButton("remove", nil)
	item.removeBtn.Importance = widget.LowImportance

	actions := container.NewHBox(item.revealBtn, item.removeBtn)
	item.root = container.NewBorder(nil, nil, nil, actions,
		container.NewVBox(item.title, item.meta))

	// The item struct rides along inside the widget for updateItem.
	w := &archiveItemWidget{item: item}
	w.ExtendBaseWidget(w)
	return w
}

// archiveItemWidget wraps archiveItem so widget.List can reuse it.
type archiveItemWidget struct {
	widget.BaseWidget
	item *archiveItem
}

func (w *archiveItemWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.item.root)
}

func (at *ArchiveTab) updateItem(id widget.ListItemID, obj fyne.CanvasObject) {
	w, ok := obj.(*archiveItemWidget)
	if !ok || id >= len(at.entries) {
		return
	}
	entry := at.entries[id]
	item := w.item

	title := entry.Title
	if title == "" {
		title = entry.URL
	}
	item.title.SetText(title)

	meta := fmt.Sprintf("%s · %s · %s", entry.Platform, entry.Format, entry.CreatedAt.Format("2006-01-02 15:04"))
	if !entry.FileExists {
		meta += " · file missing"
	}
	item.meta.SetText(meta)

	if entry.FileExists {
		item.revealBtn.Enable()
	} else {
		item.revealBtn.Disable()
	}

	entryID := entry.ID
	filePath := entry.FilePath
	item.revealBtn.OnTapped = func() {
		if at.onReveal != nil {
			at.onReveal(filePath)
		}
	}
	item.removeBtn.OnTapped = func() {
		if err := at.store.Remove(entryID); err != nil {
			at.log.Warn("failed to remove archive entry", zap.String("id", entryID), zap.Error(err))
		}
		at.Reload()
	}
}
