package file

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordal/constants"
)

// Base strips directory and extension: "kp/bach 12.mid" -> "bach 12".
func Base(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// AnalysisMidiPath is where the annotated copy of src is written.
func AnalysisMidiPath(outDir, src string) string {
	return filepath.Join(outDir, Base(src)+constants.AnalysisSuffix+".mid")
}

func AnalysisJSONPath(outDir, src string) string {
	return filepath.Join(outDir, Base(src)+constants.AnalysisSuffix+".json")
}

// GuessPath finds the analysis matching a ground-truth file in guessDir.
func GuessPath(guessDir, truth string) string {
	return AnalysisMidiPath(guessDir, truth)
}

func IsMidi(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

// CreateFileNumMap numbers files in the given order.
func CreateFileNumMap(paths []string) map[uint32]string {
	res := make(map[uint32]string, len(paths))
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
