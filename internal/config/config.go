package config

import "github.com/spf13/viper"

// SetDefaults installs every configuration default. Called once from main
// before any Theme is built.
func SetDefaults() {
	viper.SetDefault("tts.type", "auto") // Auto-select best engine
	viper.SetDefault("tts.voice", "default")
	viper.SetDefault("tts.speed", 1.0)
	viper.SetDefault("tts.volume", 0.8)
	viper.SetDefault("tts.cache_path", "")

	viper.SetDefault("caption.wrap_chars", 38)
	viper.SetDefault("caption.max_lines", 2)
	viper.SetDefault("caption.chars_per_sec", 16.0)
	viper.SetDefault("caption.min_duration", 1.2)
	viper.SetDefault("caption.max_duration", 3.8)
	viper.SetDefault("caption.pace", 0.92)
	viper.SetDefault("caption.lead", 0.14)

	viper.SetDefault("scene.fps", 30.0)

	viper.SetDefault("render.command", "")
}
