package main

import (
	"errors"

	"github.com/olsenj65/arrowcrab/internal/dataset"
	"github.com/olsenj65/arrowcrab/internal/project"
	"github.com/olsenj65/arrowcrab/internal/report"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/spf13/viper"
)

// GetConfigString retrieves a string config value with proper precedence:
// 1. Command-line flag (if set)
// 2. Environment variable (ARROWCRAB_*)
// 3. Config file
// 4. Default value
func GetConfigString(key string, defaultValue string) string {
	val := viper.GetString(key)
	if val == "" {
		return defaultValue
	}
	return val
}

// GetConfigBool retrieves a bool config value
func GetConfigBool(key string) bool {
	return viper.GetBool(key)
}

// applyLogLevel sets the logger to the configured verbosity.
func applyLogLevel() {
	util.SetVerbose(GetConfigBool("verbose"))
	util.SetQuiet(GetConfigBool("quiet"))
}

// projectPath returns the configured project file path.
func projectPath() string {
	return GetConfigString("project", "divelog.json")
}

// loadProject opens the configured project, or starts an empty dataset
// when the file does not exist yet.
func loadProject() (*dataset.Dataset, error) {
	path := projectPath()
	ds, err := project.Load(path)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.InfoLog("No project at %s, starting fresh", path)
			return dataset.New(), nil
		}
		return nil, err
	}
	return ds, nil
}

// mustLoadProject opens the configured project; a missing file is an
// error here, for commands that only read.
func mustLoadProject() (*dataset.Dataset, error) {
	return project.Load(projectPath())
}

// openEventLogger creates the JSONL event logger in the artifacts
// directory, degrading to a no-op logger on failure.
func openEventLogger() *report.EventLogger {
	logLevel := report.LevelInfo
	if GetConfigBool("quiet") {
		logLevel = report.LevelWarning
	} else if GetConfigBool("verbose") {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger(GetConfigString("artifacts", "artifacts"), logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		return report.NullLogger()
	}
	return logger
}
