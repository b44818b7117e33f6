// internal/tui/form.go
package tui

import "github.com/rusenback/detpanel/internal/model"

// formField is one editable start parameter
type formField struct {
	key   string
	label string
	value string
}

// fieldLabels maps form keys to display labels
var fieldLabels = map[string]string{
	"source":       "Video source",
	"model":        "Model path",
	"conf":         "Confidence",
	"iou":          "IoU threshold",
	"imgsz":        "Image size",
	"device":       "Device",
	"classes":      "Classes",
	"fps":          "Target FPS",
	"output_dir":   "Output dir",
	"save_results": "Save results",
}

// formState holds the parameter form: field list, cursor and edit buffer
type formState struct {
	fields  []formField
	cursor  int
	editing bool
	buffer  string
}

// newFormState rakentaa lomakkeen parametreista kiinteässä järjestyksessä
func newFormState(params model.DetectionParams) formState {
	values := params.FormValues()
	fields := make([]formField, 0, len(model.FieldOrder))
	for _, key := range model.FieldOrder {
		fields = append(fields, formField{
			key:   key,
			label: fieldLabels[key],
			value: values[key],
		})
	}
	return formState{fields: fields}
}

// setValues overwrites field values from a server response.
// Unknown keys are ignored, missing keys keep their current value.
func (f *formState) setValues(values map[string]string) {
	for i := range f.fields {
		if v, ok := values[f.fields[i].key]; ok {
			f.fields[i].value = v
		}
	}
}

// params serializes the form back into detection params
func (f formState) params() model.DetectionParams {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.key] = field.value
	}
	return model.ParamsFromValues(values)
}

// beginEdit starts editing the selected field
func (f *formState) beginEdit() {
	f.editing = true
	f.buffer = f.fields[f.cursor].value
}

// commitEdit stores the buffer into the selected field
func (f *formState) commitEdit() {
	f.fields[f.cursor].value = f.buffer
	f.editing = false
	f.buffer = ""
}

// cancelEdit discards the buffer
func (f *formState) cancelEdit() {
	f.editing = false
	f.buffer = ""
}
