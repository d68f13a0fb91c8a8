package pipeline

// Stage names, in execution order.
const (
	StageLoad      = "load"
	StageImages    = "images"
	StageFusion    = "fusion"
	StageLanguage  = "language"
	StageNormalize = "normalize"
	StageFrequency = "frequency"
	StageFigures   = "figures"
	StageSplit     = "split"
)

// StageNames lists every stage in execution order.
func StageNames() []string {
	return []string{StageLoad, StageImages, StageFusion, StageLanguage, StageNormalize, StageFrequency, StageFigures, StageSplit}
}

// CachedStages lists the stages whose output is stored in the artifact cache.
func CachedStages() []string {
	return []string{StageLanguage, StageNormalize}
}

// IsStage reports whether name is a known stage.
func IsStage(name string) bool {
	for _, s := range StageNames() {
		if s == name {
			return true
		}
	}
	return false
}
