// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/fsutil"
)

// SettingsFile is the optional file holding the page order.
const SettingsFile = "Settings.json"

type settingsFile struct {
	Pages struct {
		Order []string `json:"order"`
	} `json:"pages"`
}

// LoadSet reads every `<page>.json` below dir. The page order comes from
// Settings.json when present; pages it does not mention follow in name order.
func LoadSet(ctx context.Context, dir, defaultDataType string) (*Set, error) {
	logger := ctxlog.FromContext(ctx).With("dir", dir)
	logger.Debug("Loading layout set.")

	files, err := fsutil.FindFilesByExtension(dir, ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to list layout files in %s: %w", dir, err)
	}

	byName := make(map[string]*Page)
	for _, file := range files {
		if filepath.Base(file) == SettingsFile {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(file), ".json")
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("page %q is defined more than once in %s", name, dir)
		}

		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read page file %s: %w", file, err)
		}
		page, err := DecodePage(name, b)
		if err != nil {
			return nil, err
		}
		byName[name] = page
		logger.Debug("Loaded page.", "page", name, "components", len(page.Components))
	}

	order, err := readOrder(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}

	var pages []*Page
	seen := make(map[string]bool)
	for _, name := range order {
		page, ok := byName[name]
		if !ok {
			logger.Warn("Page order names a page that does not exist.", "page", name)
			continue
		}
		if !seen[name] {
			pages = append(pages, page)
			seen[name] = true
		}
	}
	var rest []string
	for name := range byName {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		pages = append(pages, byName[name])
	}

	logger.Debug("Layout set loaded.", "pages", len(pages))
	return NewSet(defaultDataType, pages...), nil
}

func readOrder(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var settings settingsFile
	if err := json.Unmarshal(b, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return settings.Pages.Order, nil
}
