package commands

// TimestampFormat is the display format for history timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// DefaultHistoryLimit caps history listings unless overridden by flag or
// config.
const DefaultHistoryLimit = 50
