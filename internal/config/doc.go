// Package config provides centralized configuration management for the job
// market service. It loads configuration from defaults, an optional YAML file
// and environment variables, validates it, and resolves file locations.
//
// # Configuration Sources
//
// Sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file (JOBS_CONFIG_FILE, config.yaml or configs/config.yaml)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern JOBS_<SECTION>_<FIELD>:
//
//	JOBS_SERVER_PORT=8080
//	JOBS_DATA_SOURCE=/srv/data/SGJobData.csv
//	JOBS_DATA_PREFER_SNAPSHOT=false
//	JOBS_LOGGING_LEVEL=debug
//	JOBS_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,http://localhost:8501
//
// # Path Management
//
// Relative paths in the configuration are resolved against JOBS_HOME, or the
// working directory when it is unset:
//
//	paths, _ := config.GetPaths()
//	source := paths.Resolve("SGJobData.csv")
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
package config
