package config

// StorageConfig defines where page snapshots, downloaded artifacts and the
// change-history database live
type StorageConfig struct {
	DownloadDir   string `json:"download_dir,omitempty" yaml:"download_dir,omitempty"`
	HistoryDBPath string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty"`
	HistoryOff    bool   `json:"history_off" yaml:"history_off"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		DownloadDir:   DefaultDownloadDir,
		HistoryDBPath: DefaultHistoryDBPath,
		HistoryOff:    false,
	}
}
