package config

import (
	"strings"

	"fwwatch/internal/common/errorwrapper"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Artifact extension must be a bare lowercase-insensitive suffix like ".bin"
	_ = validate.RegisterValidation("artifactext", func(fl validator.FieldLevel) bool {
		ext := fl.Field().String()
		if ext == "" {
			return true
		}
		return strings.HasPrefix(ext, ".") && len(ext) > 1 && !strings.ContainsAny(ext[1:], "./\\")
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			first := validationErrors[0]
			return errorwrapper.NewValidationError(first.Namespace(), first.Value(), "failed on '"+first.Tag()+"' rule")
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}

	// Cross-field checks validator tags cannot express
	nc := cfg.NotificationConfig
	if nc.DiscordBotToken != "" && nc.DiscordChannelID == "" {
		return errorwrapper.NewValidationError("notification_config.discord_channel_id", nc.DiscordChannelID, "channel ID required when bot token is set")
	}

	return nil
}
