package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/engine"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/formdata"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/textres"
)

func (a *App) loadLayout(ctx context.Context) (*layout.Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading layout set...", "layout_set", a.project.LayoutSet)

	set, err := layout.LoadSet(ctx, a.project.LayoutSet, a.project.DefaultDataType)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout set: %w", err)
	}
	logger.Debug("Layout set loaded.", "pages", len(set.Pages))
	return set, nil
}

// loadInput reads everything a snapshot is made of: the data documents, the
// texts of the project language and the instance metadata.
func (a *App) loadInput(ctx context.Context) (engine.Input, error) {
	logger := ctxlog.FromContext(ctx)

	docs := make(map[string][]byte, len(a.project.Data))
	for _, dataType := range a.project.DataTypes() {
		path := a.project.Data[dataType]
		b, err := os.ReadFile(path)
		if err != nil {
			return engine.Input{}, fmt.Errorf("failed to read data document %q: %w", dataType, err)
		}
		docs[dataType] = b
		logger.Debug("Read data document.", "data_type", dataType, "path", path)
	}
	data, err := formdata.FromJSON(a.project.DefaultDataType, docs)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to decode data: %w", err)
	}

	var files []*textres.File
	for _, path := range a.project.Texts {
		f, err := textres.Load(path)
		if err != nil {
			return engine.Input{}, err
		}
		if f.Language != "" && f.Language != a.project.Language {
			logger.Debug("Skipping text resources in another language.", "path", path, "language", f.Language)
		}
		files = append(files, f)
	}

	in := engine.Input{
		Data:     data,
		Settings: a.project.Settings,
		Texts:    textres.Merge(a.project.Language, files...),
		Language: a.project.Language,
	}
	if i := a.project.Instance; i != nil {
		in.Instance = &expr.Instance{
			ID:            i.ID,
			AppID:         i.AppID,
			PartyID:       i.PartyID,
			PartyType:     i.PartyType,
			ProcessTaskID: i.ProcessTaskID,
		}
	}
	logger.Debug("Snapshot input loaded.", "data_types", len(docs), "texts", len(in.Texts))
	return in, nil
}
