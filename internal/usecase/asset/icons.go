package asset

import (
	"context"
	"strings"

	"github.com/fhuszti/assets-ms-go/internal/model"
)

// IconCategory is the coarse kind of file an asset holds, used to pick an icon.
type IconCategory string

const (
	IconSpreadsheet  IconCategory = "spreadsheet"
	IconDocument     IconCategory = "document"
	IconPDF          IconCategory = "pdf"
	IconAudio        IconCategory = "audio"
	IconArchive      IconCategory = "archive"
	IconImage        IconCategory = "image"
	IconText         IconCategory = "text"
	IconCode         IconCategory = "code"
	IconPresentation IconCategory = "presentation"
	IconVideo        IconCategory = "video"
	IconFile         IconCategory = "file"
	IconMissing      IconCategory = "missing"
)

var iconExtensions = map[IconCategory][]string{
	IconSpreadsheet:  {"xlsx", "xlsm", "xlsb", "xltx", "xltm", "xls", "xlt"},
	IconDocument:     {"doc", "docx", "docm", "dotx"},
	IconPDF:          {"pdf"},
	IconAudio:        {"mp3"},
	IconArchive:      {"zip", "rar", "iso", "tar", "gz", "7z"},
	IconImage:        {"jpg", "jpeg", "png", "gif", "ico", "bmp", "psd"},
	IconText:         {"txt", "pub"},
	IconCode:         {"php", "js", "json", "yaml", "xml", "html", "htm", "sql"},
	IconPresentation: {"ppt", "pptx", "pptm", "xps", "potm", "potx", "pot", "pps", "odp"},
	IconVideo:        {"wmv", "avi", "mp4", "mkv", "mpeg"},
}

var iconByExtension = func() map[string]IconCategory {
	m := make(map[string]IconCategory)
	for icon, exts := range iconExtensions {
		for _, ext := range exts {
			m[ext] = icon
		}
	}
	return m
}()

var displayableImages = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true}

// IconForExtension maps a file extension to its icon category.
func IconForExtension(ext string) IconCategory {
	if ext == "" {
		return IconMissing
	}
	if icon, ok := iconByExtension[strings.ToLower(ext)]; ok {
		return icon
	}
	return IconFile
}

// IsImageExtension reports whether browsers display files with ext inline.
func IsImageExtension(ext string) bool {
	return displayableImages[strings.ToLower(ext)]
}

// ClassifyIcon resolves the extension of a and maps it to an icon category.
func (l *Lifecycle) ClassifyIcon(ctx context.Context, a *model.Asset) IconCategory {
	return IconForExtension(l.ResolveFileType(ctx, a))
}

func (l *Lifecycle) IsDisplayableImage(ctx context.Context, a *model.Asset) bool {
	return IsImageExtension(l.ResolveFileType(ctx, a))
}
