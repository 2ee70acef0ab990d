// ABOUTME: Centralized configuration defaults for fictrack
// ABOUTME: Contains magic numbers and hardcoded values for display and analysis

package config

// Display settings
const (
	DefaultListLimit = 25
	SeparatorWidth   = 60
	DateFormatShort  = "02 Jan 06 15:04"
	DateFormatLong   = "Mon, 02 Jan 2006 15:04 MST"
)

// Analysis settings
const (
	DefaultGrowthDays  = 30
	DefaultHistoryDays = 90
)
