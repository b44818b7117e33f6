// internal/model/params.go
package model

// DetectionParams sisältää detektion käynnistysparametrit.
// Kentät vastaavat palvelimen lomakekenttiä yksi yhteen.
type DetectionParams struct {
	Source      string `yaml:"source"`
	Model       string `yaml:"model"`
	Conf        string `yaml:"conf"`
	IoU         string `yaml:"iou"`
	ImgSize     string `yaml:"imgsz"`
	Device      string `yaml:"device"`
	Classes     string `yaml:"classes"`
	FPS         string `yaml:"fps"`
	OutputDir   string `yaml:"output_dir"`
	SaveResults string `yaml:"save_results"`
}

// DefaultParams palauttaa palvelimen oletusparametrit
func DefaultParams() DetectionParams {
	return DetectionParams{
		Source:      "0",
		Model:       "data/best.pt",
		Conf:        "0.25",
		IoU:         "0.45",
		ImgSize:     "640",
		Device:      "0",
		Classes:     "",
		FPS:         "30",
		OutputDir:   "output",
		SaveResults: "false",
	}
}

// FormValues returns the params as form fields for the start request.
// Empty values are kept: the server fills its own defaults for them.
func (p DetectionParams) FormValues() map[string]string {
	return map[string]string{
		"source":       p.Source,
		"model":        p.Model,
		"conf":         p.Conf,
		"iou":          p.IoU,
		"imgsz":        p.ImgSize,
		"device":       p.Device,
		"classes":      p.Classes,
		"fps":          p.FPS,
		"output_dir":   p.OutputDir,
		"save_results": p.SaveResults,
	}
}

// ParamsFromValues rakentaa parametrit palvelimen palauttamasta mapista.
// Tuntemattomat avaimet ohitetaan.
func ParamsFromValues(values map[string]string) DetectionParams {
	p := DefaultParams()
	for k, v := range values {
		switch k {
		case "source":
			p.Source = v
		case "model":
			p.Model = v
		case "conf":
			p.Conf = v
		case "iou":
			p.IoU = v
		case "imgsz":
			p.ImgSize = v
		case "device":
			p.Device = v
		case "classes":
			p.Classes = v
		case "fps":
			p.FPS = v
		case "output_dir":
			p.OutputDir = v
		case "save_results":
			p.SaveResults = v
		}
	}
	return p
}

// FieldOrder is the display order of the form fields
var FieldOrder = []string{
	"source", "model", "conf", "iou", "imgsz",
	"device", "classes", "fps", "output_dir", "save_results",
}
