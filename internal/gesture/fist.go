// Package gesture turns hand landmarks into control signals.
package gesture

import "github.com/ayusman/poseplay/internal/detector"

// FistThreshold is the number of folded fingers that counts as a fist.
const FistThreshold = 3

// fingerJoints pairs each non-thumb fingertip with the PIP joint below it.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// FoldedFingers counts the non-thumb fingers of hand whose tip is below its
// PIP joint in image coordinates.
func FoldedFingers(hand detector.HandLandmarks) int {
	folded := 0
	for _, j := range fingerJoints {
		if hand.Points[j[0]].Y > hand.Points[j[1]].Y {
			folded++
		}
	}
	return folded
}

// IsFist reports whether the first detected hand is closed into a fist.
// No hand is never a fist.
func IsFist(hands []detector.HandLandmarks) bool {
	if len(hands) == 0 {
		return false
	}
	return FoldedFingers(hands[0]) >= FistThreshold
}
