package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Convert.OutputDirSuffix == "" {
		cfg.Convert.OutputDirSuffix = "_processed"
	}
	if cfg.Convert.Format == "" {
		cfg.Convert.Format = "csv"
	}
	if cfg.Convert.Extensions == nil {
		cfg.Convert.Extensions = []string{".fits", ".txt"}
	}
	if len(cfg.Joins.Join1) == 0 {
		cfg.Joins.Join1 = []float64{1000, 1001}
	}
	if len(cfg.Joins.Join2) == 0 {
		cfg.Joins.Join2 = []float64{1800, 1801}
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 400
	}
}
