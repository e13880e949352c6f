package config

import "housingdash/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig = logging.Config
