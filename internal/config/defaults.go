package config

const (
	defaultInputDir             = "mixes"
	defaultOutputDir            = "songs"
	defaultArchiveDir           = "processed"
	defaultScanDir              = "."
	defaultStateDir             = "~/.local/share/mixsplit"
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultDescriptionExtension = ".description"
	defaultAudioExtension       = "mp3"
	defaultCodec                = "copy"
	defaultDuplicateThreshold   = 0.97
	defaultHistoryFile          = "history.db"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults. Relative
// directories resolve against the working directory at load time.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			OutputDir:  defaultOutputDir,
			ArchiveDir: defaultArchiveDir,
			ScanDir:    defaultScanDir,
			StateDir:   defaultStateDir,
		},
		Media: Media{
			FFmpegBinary:         defaultFFmpegBinary,
			FFprobeBinary:        defaultFFprobeBinary,
			DescriptionExtension: defaultDescriptionExtension,
			AudioExtension:       defaultAudioExtension,
			Codec:                defaultCodec,
		},
		Split: Split{
			DuplicateThreshold: defaultDuplicateThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
