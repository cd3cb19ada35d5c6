package pipeline

// Stage is one phase of a run. Weight is its share of the total work and
// drives unified progress percentages.
type Stage struct {
	Name   string
	Weight int
}

// Run stages, in order.
var (
	StageResolve = Stage{Name: "Resolving targets", Weight: 1}
	StageBuild   = Stage{Name: "Building graphs", Weight: 3}
	StageRender  = Stage{Name: "Rendering graphs", Weight: 10}
	StageIndex   = Stage{Name: "Writing index", Weight: 1}
)

// Stages lists every stage of a run.
var Stages = []Stage{StageResolve, StageBuild, StageRender, StageIndex}

// Progress receives stage and step notifications from a run. Calls come
// from the goroutine running [Runner.Execute].
type Progress interface {
	// Start begins stage, which will report steps Step calls.
	Start(stage Stage, steps int)
	// Step reports one unit of work within the current stage.
	Step(message string)
	// End finishes stage.
	End(stage Stage)
}

// NopProgress discards all notifications.
type NopProgress struct{}

func (NopProgress) Start(Stage, int) {}
func (NopProgress) Step(string)      {}
func (NopProgress) End(Stage)        {}
