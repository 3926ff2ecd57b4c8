package testutil

// DataType is the default data type used by the fixtures.
const DataType = "model"

// LayoutPages is a small layout set exercising every container kind. The
// "form" page nests a repeating group in a repeating group and holds an
// independent nested group; "extras" has Likert, tabs and a multi-page group.
var LayoutPages = map[string]string{
	"form": `{
  "data": {
    "layout": [
      {"id": "name", "type": "Input", "dataModelBindings": {"simpleBinding": "Name"},
       "textResourceBindings": {"title": "name.title"}, "required": true},
      {"id": "rep1", "type": "RepeatingGroup", "dataModelBindings": {"group": "RepGroup"},
       "children": ["rep1a", "rep1b", "rep1c", "flat"],
       "hidden": ["equals", ["dataModel", "HideGroups"], true]},
      {"id": "rep1a", "type": "Header",
       "textResourceBindings": {"title": ["concat", "Row ", ["dataModel", "RepGroup.Input"]]}},
      {"id": "rep1b", "type": "Input", "dataModelBindings": {"simpleBinding": "RepGroup.Input"},
       "hidden": ["equals", ["dataModel", "RepGroup.Input"], "hide"]},
      {"id": "rep1c", "type": "RepeatingGroup", "dataModelBindings": {"group": "RepGroup.NestedRepGroup"},
       "children": ["rep1c-input"]},
      {"id": "rep1c-input", "type": "Input",
       "dataModelBindings": {"simpleBinding": "RepGroup.NestedRepGroup.Input"},
       "mapping": {"RepGroup[{0}].NestedRepGroup[{1}].Input": "q"},
       "readOnly": ["equals", ["component", "rep1b"], "locked"]},
      {"id": "flat", "type": "RepeatingGroup", "dataModelBindings": {"group": "Flat"},
       "children": ["flat-input"]},
      {"id": "flat-input", "type": "Input", "dataModelBindings": {"simpleBinding": "Flat.Value"}}
    ]
  }
}`,
	"extras": `{
  "data": {
    "hidden": ["equals", ["dataModel", "Name"], "no extras"],
    "layout": [
      {"id": "likert", "type": "Likert",
       "dataModelBindings": {"questions": "Questions", "simpleBinding": "Questions.Answer"}},
      {"id": "tabs", "type": "Tabs", "tabs": [
        {"id": "tab1", "title": "first", "children": ["t1"]},
        {"id": "tab2", "title": "second", "children": ["t2"]}
      ]},
      {"id": "t1", "type": "Input", "dataModelBindings": {"simpleBinding": "T1"}},
      {"id": "t2", "type": "Paragraph", "textResourceBindings": {"title": ["text", "t2.title"]}},
      {"id": "mp", "type": "RepeatingGroup", "edit": {"multiPage": true},
       "dataModelBindings": {"group": "Multi"}, "children": ["0:mp-a", "1:mp-b"]},
      {"id": "mp-a", "type": "Input", "dataModelBindings": {"simpleBinding": "Multi.A"}},
      {"id": "mp-b", "type": "Input", "dataModelBindings": {"simpleBinding": "Multi.B"}}
    ]
  }
}`,
}

// LayoutSettings orders the fixture pages.
const LayoutSettings = `{"pages": {"order": ["form", "extras"]}}`

// FormData is the data document matching LayoutPages: two outer rows, the
// second with four nested rows, two flat rows, three Likert questions and two
// multi-page rows.
const FormData = `{
  "Name": "Ada",
  "HideGroups": false,
  "RepGroup": [
    {"Input": "first", "NestedRepGroup": []},
    {"Input": "locked", "NestedRepGroup": [
      {"Input": "a"}, {"Input": "b"}, {"Input": "c"}, {"Input": "d"}
    ]}
  ],
  "Flat": [{"Value": 1}, {"Value": 2}],
  "Questions": [{"Answer": "1"}, {"Answer": "2"}, {"Answer": null}],
  "T1": "tab",
  "Multi": [{"A": "x", "B": "y"}, {"A": "z", "B": "w"}]
}`

// TextsNB holds the nb text resources used by the fixtures.
const TextsNB = `{
  "language": "nb",
  "resources": [
    {"id": "name.title", "value": "Navn"},
    {"id": "t2.title", "value": "Andre fane"}
  ]
}`

// ProjectHCL is a project file for the fixture layout set.
const ProjectHCL = `
layout_set        = "layouts"
default_data_type = "model"
language          = "nb"
texts             = ["texts/nb.json"]

settings = {
  theme = "dark"
}

data "model" {
  file = "data/model.json"
}

instance {
  id                = "512345/3f4a"
  app_id            = "ttd/formtree"
  party_id          = "512345"
  party_type        = "person"
  process_task_id   = "Task_1"
}
`
