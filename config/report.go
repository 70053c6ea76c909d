package config

// ReportConfig defines where the accepted schedule is rendered.
type ReportConfig struct {
	// CSVPath is the destination file for the monthly records. Empty
	// disables the CSV export.
	CSVPath string `json:"csv_path"`
	// Console prints the human-readable summary to stdout.
	Console bool `json:"console"`
}

// SetDefaults enables the console summary when nothing is configured.
func (c *ReportConfig) SetDefaults() {
	if c.CSVPath == "" && !c.Console {
		c.Console = true
	}
}
