package hcl_adapter

// fileRoot is the HCL shape of a project file.
type fileRoot struct {
	LayoutSet       string            `hcl:"layout_set"`
	DefaultDataType string            `hcl:"default_data_type"`
	Language        string            `hcl:"language,optional"`
	Texts           []string          `hcl:"texts,optional"`
	Settings        map[string]string `hcl:"settings,optional"`
	Data            []*DataBlock      `hcl:"data,block"`
	Instance        *InstanceBlock    `hcl:"instance,block"`
}

// DataBlock is a `data "<type>" { file = "..." }` block.
type DataBlock struct {
	Type string `hcl:"type,label"`
	File string `hcl:"file"`
}

// InstanceBlock is the `instance { ... }` block.
type InstanceBlock struct {
	ID            string `hcl:"id,optional"`
	AppID         string `hcl:"app_id,optional"`
	PartyID       string `hcl:"party_id,optional"`
	PartyType     string `hcl:"party_type,optional"`
	ProcessTaskID string `hcl:"process_task_id,optional"`
}
