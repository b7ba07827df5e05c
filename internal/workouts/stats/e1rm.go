package stats

// brzyckiMaxReps caps the reps fed to the formula, it loses accuracy above 10.
const brzyckiMaxReps = 10

// EstimatedOneRepMax estimates the one rep max of a set with the Brzycki formula.
func EstimatedOneRepMax(weight float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	r := float64(min(reps, brzyckiMaxReps))
	return weight / (1.0278 - 0.0278*r)
}
