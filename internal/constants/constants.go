package constants

const (
	AppName            = "tally"
	Version            = "v0.3.0"
	DefaultKeyringUser = "backend-connection"
	DefaultConfigPath  = "~/.config/tally/tally.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultTimezone resolves "today" from the system timezone unless configured
	DefaultTimezone = "Local"

	// DefaultIcon is the fallback icon identifier for habits and categories
	// whose icon field is empty or unknown to the presentation layer.
	DefaultIcon = "circle"

	// HeatmapSaturation is the per-habit completion count at which a heatmap
	// cell reaches full intensity.
	HeatmapSaturation = 5

	// DefaultHeatmapDays is the trailing range shown by heatmap views.
	DefaultHeatmapDays = 365

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tally-"
	BackupFileSuffix = ".db"
)

// SummaryWindows are the trailing day windows reported by the stats summary.
var SummaryWindows = []int{7, 14, 30, 365}
