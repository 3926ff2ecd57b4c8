package config

import (
	"fmt"
	"sort"
)

// DefaultLanguage is used when a project does not name its language.
const DefaultLanguage = "nb"

// Project is the unified, format-agnostic representation of one form
// project: its layout set, the data documents it is filled with and the
// context expressions can read.
type Project struct {
	// Path is the project file the model was read from.
	Path string
	// LayoutSet is the directory holding the page files.
	LayoutSet       string
	DefaultDataType string
	Language        string
	// Texts are the text resource files, in load order.
	Texts    []string
	Settings map[string]string
	// Data maps a data type to the JSON document holding it.
	Data     map[string]string
	Instance *Instance
}

// Instance is the instance metadata of a project.
type Instance struct {
	ID            string
	AppID         string
	PartyID       string
	PartyType     string
	ProcessTaskID string
}

// DataTypes returns the data types with a document, in sorted order.
func (p *Project) DataTypes() []string {
	types := make([]string, 0, len(p.Data))
	for t := range p.Data {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Validate checks the fields every project needs.
func (p *Project) Validate() error {
	if p.LayoutSet == "" {
		return fmt.Errorf("project %s: layout_set is required", p.Path)
	}
	if p.DefaultDataType == "" {
		return fmt.Errorf("project %s: default_data_type is required", p.Path)
	}
	if _, ok := p.Data[p.DefaultDataType]; !ok {
		return fmt.Errorf("project %s: no data block for the default data type %q", p.Path, p.DefaultDataType)
	}
	return nil
}
