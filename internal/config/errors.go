package config

import "github.com/xhess/bodie/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidSeconds = &apperr.Error{
		Message: "timer seconds must be between %d and %d, got %d",
	}

	errInvalidAlertAt = &apperr.Error{
		Message: "timer alert_at must be between 0 and %d, got %d",
	}

	errInvalidLookahead = &apperr.Error{
		Message: "session lookahead must be between %d and %d, got %d",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errUnknownSound = &apperr.Error{
		Message: "unknown sound: %s",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown store driver: %s (must be bolt, sqlite, or memory)",
	}

	errInvalidURL = &apperr.Error{
		Message: "%s must be an absolute http(s) URL, got %q",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "catalog timeout must be positive, got %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level: %s",
	}
)
