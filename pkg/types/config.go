package types

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendLedongthuc ExtractionBackend = "ledongthuc"
	BackendPdfcpu     ExtractionBackend = "pdfcpu"
	BackendPdftotext  ExtractionBackend = "pdftotext"
)

// ExtractionConfig holds every setting of a batch run. The CLI fills it from
// flags, environment and config file through viper.
type ExtractionConfig struct {
	// InputDir is the directory scanned for PDFs (default ".").
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// Suffix is the file name suffix selecting input files (default ".pdf").
	Suffix string `json:"suffix" yaml:"suffix" mapstructure:"suffix"`

	// IgnoreCase makes the suffix match case-insensitive.
	IgnoreCase bool `json:"ignore_case" yaml:"ignore_case" mapstructure:"ignore_case"`

	// OutputExt replaces the input extension on output files (default ".md").
	OutputExt string `json:"output_ext" yaml:"output_ext" mapstructure:"output_ext"`

	// Backend selects the extractor: ledongthuc, pdfcpu, or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Cleanup is the normalization level: none, light, or full.
	Cleanup string `json:"cleanup" yaml:"cleanup" mapstructure:"cleanup"`

	// Paragraphs decides whether full cleanup keeps paragraph breaks:
	// collapse or preserve.
	Paragraphs string `json:"paragraphs" yaml:"paragraphs" mapstructure:"paragraphs"`

	// ContainerRuntime picks docker, podman, or auto for the pdftotext backend.
	ContainerRuntime string `json:"container_runtime" yaml:"container_runtime" mapstructure:"container_runtime"`

	// ContainerImage is the image providing pdftotext.
	ContainerImage string `json:"container_image" yaml:"container_image" mapstructure:"container_image"`

	// FailOnError makes the run exit non-zero when any document failed.
	FailOnError bool `json:"fail_on_error" yaml:"fail_on_error" mapstructure:"fail_on_error"`
}
