package config

const (
	defaultDataDir        = "data"
	defaultFeaturesFile   = "X_train.csv"
	defaultLabelsFile     = "Y_train.csv"
	defaultImageDir       = "data/images/image_train"
	defaultCacheDir       = "data/cache"
	defaultFiguresDir     = "reports/figures/nuage_de_mot"
	defaultOutputDir      = "data/split"
	defaultLogDir         = "logs"
	defaultMinTokenLength = 4
	defaultStemLanguage   = "french"
	defaultImageWidth     = 500
	defaultImageHeight    = 500
	defaultImageMode      = "RGB"
	defaultImageFormat    = "jpeg"
	defaultFiguresStyle   = FigureStyleCloud
	defaultFiguresTopN    = 30
	defaultFiguresWidth   = 10
	defaultFiguresHeight  = 5
	defaultTestRatio      = 0.2
	defaultSplitSeed      = 66
	defaultManifestName   = "manifest.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// DefaultSteps lists the cleaning steps enabled out of the box, in pipeline order.
var DefaultSteps = []string{
	"collapse_whitespace",
	"lowercase",
	"strip_markup",
	"strip_digits",
	"transliterate",
	"strip_non_letters",
	"drop_stopwords",
	"drop_short_tokens",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	steps := make([]string, len(DefaultSteps))
	copy(steps, DefaultSteps)
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			FeaturesFile: defaultFeaturesFile,
			LabelsFile:   defaultLabelsFile,
			ImageDir:     defaultImageDir,
			CacheDir:     defaultCacheDir,
			FiguresDir:   defaultFiguresDir,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
		},
		Normalizer: Normalizer{
			Steps:          steps,
			MinTokenLength: defaultMinTokenLength,
			StemLanguage:   defaultStemLanguage,
		},
		Language: Language{
			Enabled: true,
		},
		Images: Images{
			Validate: true,
			Width:    defaultImageWidth,
			Height:   defaultImageHeight,
			Mode:     defaultImageMode,
			Format:   defaultImageFormat,
		},
		Figures: Figures{
			Enabled:      true,
			Style:        defaultFiguresStyle,
			TopN:         defaultFiguresTopN,
			WidthInches:  defaultFiguresWidth,
			HeightInches: defaultFiguresHeight,
		},
		Split: Split{
			TestRatio: defaultTestRatio,
			Seed:      defaultSplitSeed,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
