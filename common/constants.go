package common

const (
	BaseWidth  = 800
	BaseHeight = 400

	// GroundY is the floor line fighters stand on.
	GroundY = 300.0

	// FrameRate is the nominal display refresh used to convert frame counts to seconds.
	FrameRate = 60.0
)

// FramesToSeconds converts a frame count at FrameRate into seconds.
func FramesToSeconds(frames int) float64 {
	return float64(frames) / FrameRate
}
