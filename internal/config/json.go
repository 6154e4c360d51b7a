package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mindease/internal/flagx"
	"github.com/dmitrijs2005/mindease/internal/timex"
)

// JsonConfig is the DTO used for JSON unmarshalling only. Zero values leave
// the corresponding Config field untouched.
type JsonConfig struct {
	AIProvider          string         `json:"ai_provider"`
	PrimaryModel        string         `json:"primary_model"`
	SecondaryModel      string         `json:"secondary_model"`
	AIBaseURL           string         `json:"ai_base_url"`
	DatabaseDSN         string         `json:"database_dsn"`
	LocalDBPath         string         `json:"local_db_path"`
	AnalysisTimeout     timex.Duration `json:"analysis_timeout"`
	SaveWatchdog        timex.Duration `json:"save_watchdog"`
	SessionInitTimeout  timex.Duration `json:"session_init_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogFormat           string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or decode errors; a broken config file is a startup failure.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.AIProvider, jc.AIProvider)
	setString(&cfg.PrimaryModel, jc.PrimaryModel)
	setString(&cfg.SecondaryModel, jc.SecondaryModel)
	setString(&cfg.AIBaseURL, jc.AIBaseURL)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.LocalDBPath, jc.LocalDBPath)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.AnalysisTimeout.Duration > 0 {
		cfg.AnalysisTimeout = jc.AnalysisTimeout.Duration
	}
	if jc.SaveWatchdog.Duration > 0 {
		cfg.SaveWatchdog = jc.SaveWatchdog.Duration
	}
	if jc.SessionInitTimeout.Duration > 0 {
		cfg.SessionInitTimeout = jc.SessionInitTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
