// This file contains the logic for translating the HCL schema structs into
// the format-agnostic project model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/formtree/internal/config"
	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/fsutil"
)

// translateProject converts the decoded file into the agnostic model. Paths
// are resolved against the directory of file.
func (l *Loader) translateProject(ctx context.Context, file string, root *fileRoot) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx).With("path", file)

	p := &config.Project{
		Path:            file,
		LayoutSet:       fsutil.ResolvePath(file, root.LayoutSet),
		DefaultDataType: root.DefaultDataType,
		Language:        root.Language,
		Settings:        root.Settings,
		Data:            make(map[string]string, len(root.Data)),
	}
	if p.Language == "" {
		logger.Debug("No language set, using the default.", "language", config.DefaultLanguage)
		p.Language = config.DefaultLanguage
	}
	for _, t := range root.Texts {
		p.Texts = append(p.Texts, fsutil.ResolvePath(file, t))
	}

	for _, d := range root.Data {
		if _, exists := p.Data[d.Type]; exists {
			return nil, fmt.Errorf("%s: duplicate data block %q", file, d.Type)
		}
		p.Data[d.Type] = fsutil.ResolvePath(file, d.File)
	}

	if root.Instance != nil {
		p.Instance = translateInstance(root.Instance)
	}
	return p, nil
}

func translateInstance(b *InstanceBlock) *config.Instance {
	return &config.Instance{
		ID:            b.ID,
		AppID:         b.AppID,
		PartyID:       b.PartyID,
		PartyType:     b.PartyType,
		ProcessTaskID: b.ProcessTaskID,
	}
}
