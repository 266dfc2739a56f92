package config

// ReportLimitConfig controls the per-user daily submission quota applied to
// waste report creation. The quota is enforced in Redis so it holds across
// multiple instances of the API.
type ReportLimitConfig struct {
	Enabled bool   // quota active at all
	Daily   int    // reports a user may create per UTC day
	Prefix  string // Redis key prefix
}

// LoadReportLimitConfig reads the quota settings from the environment with
// sensible defaults. Values below 1 are clamped so a misconfigured limit can
// never lock every user out.
func LoadReportLimitConfig() ReportLimitConfig {
	cfg := ReportLimitConfig{
		Enabled: envBool("REPORT_LIMIT_ENABLED", true),
		Daily:   envInt("REPORT_DAILY_LIMIT", 10),
		Prefix:  envStr("REPORT_LIMIT_PREFIX", "wrquota"),
	}
	if cfg.Daily < 1 {
		cfg.Daily = 1
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "wrquota"
	}
	return cfg
}
