package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Photo store driver names accepted by GYMTRACK_PHOTO_DRIVER.
const (
	PhotoDriverMemory = "memory"
	PhotoDriverFS     = "fs"
	PhotoDriverS3     = "s3"
)

// Config captures environment driven configuration values for the service.
type Config struct {
	HTTPPort       int
	SQLiteDSN      string
	CheckInterval  time.Duration
	OrganizationID string

	PhotoDriver      string
	PhotoDir         string
	PhotoS3Bucket    string
	PhotoS3Region    string
	PhotoS3Endpoint  string
	PhotoS3PathStyle bool

	ChecklistTemplatePath string
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; required and malformed values are
// collected and reported together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:gymtrack.db?_pragma=foreign_keys(1)",
		CheckInterval: 7 * 24 * time.Hour,
		PhotoDriver:   PhotoDriverFS,
		PhotoDir:      "./photodata",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("GYMTRACK_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "GYMTRACK_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("GYMTRACK_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if intervalValue := strings.TrimSpace(os.Getenv("GYMTRACK_CHECK_INTERVAL")); intervalValue != "" {
		interval, err := time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "GYMTRACK_CHECK_INTERVAL")
		} else {
			cfg.CheckInterval = interval
		}
	}

	if orgID := strings.TrimSpace(os.Getenv("GYMTRACK_ORG_ID")); orgID == "" {
		missing = append(missing, "GYMTRACK_ORG_ID")
	} else {
		cfg.OrganizationID = orgID
	}

	if driver := strings.TrimSpace(os.Getenv("GYMTRACK_PHOTO_DRIVER")); driver != "" {
		switch driver {
		case PhotoDriverMemory, PhotoDriverFS, PhotoDriverS3:
			cfg.PhotoDriver = driver
		default:
			invalid = append(invalid, "GYMTRACK_PHOTO_DRIVER")
		}
	}

	if dir := strings.TrimSpace(os.Getenv("GYMTRACK_PHOTO_DIR")); dir != "" {
		cfg.PhotoDir = dir
	}

	cfg.PhotoS3Bucket = strings.TrimSpace(os.Getenv("GYMTRACK_PHOTO_S3_BUCKET"))
	cfg.PhotoS3Region = strings.TrimSpace(os.Getenv("GYMTRACK_PHOTO_S3_REGION"))
	cfg.PhotoS3Endpoint = strings.TrimSpace(os.Getenv("GYMTRACK_PHOTO_S3_ENDPOINT"))
	cfg.PhotoS3PathStyle = strings.EqualFold(strings.TrimSpace(os.Getenv("GYMTRACK_PHOTO_S3_PATH_STYLE")), "true")
	if cfg.PhotoDriver == PhotoDriverS3 && cfg.PhotoS3Bucket == "" {
		missing = append(missing, "GYMTRACK_PHOTO_S3_BUCKET")
	}

	cfg.ChecklistTemplatePath = strings.TrimSpace(os.Getenv("GYMTRACK_CHECKLIST_TEMPLATE"))

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
