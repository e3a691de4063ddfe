package constants

const PitchClasses = 12

// UnknownLabelMarker appears in ground-truth labels of segments the
// annotator could not analyse; those segments are not scored.
const UnknownLabelMarker = "X"

const DefaultOutDir = "./out"

const DefaultConfigFile = "chordal.yaml"

const (
	AnalysisSuffix = "_analysis"
	RunIndexFile   = "runs.dat"
)

const AnalysisTrackName = "chordal analysis"

// DynamoDB BatchGetItem accepts at most this many keys per request.
const MaxBatchGetKeys = 100

// RunsDir holds the run archive, relative to the out dir.
const RunsDir = "runs"
