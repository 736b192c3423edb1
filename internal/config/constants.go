package config

import "time"

// Application constants
const (
	AppName     = "SG Job Market Insight"
	ServiceName = "sg-job-market-insight"

	// EnvPrefix namespaces every environment variable, e.g. JOBS_SERVER_PORT
	EnvPrefix = "JOBS"

	// Data locations, relative to the base directory
	DefaultSourceFile   = "SGJobData.csv"
	DefaultSnapshotFile = "data/sg_jobs.parquet"
	DefaultExportDir    = "exports"
	DefaultLogsDir      = "logs"
	DefaultLogFile      = "logs/app.log"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Query Settings
	DefaultQueryTimeout  = 10 * time.Second
	DefaultTopRoles      = 20
	DefaultSkillKeywords = 30
	DefaultTopCompanies  = 10
	DefaultHistogramBins = 50
	DefaultPageLimit     = 100
	MaxQueryLimit        = 1000
	MaxHistogramBins     = 200
)

// API paths
const (
	APIBasePath     = "/api"
	JobsEndpoint    = "/api/jobs"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)
