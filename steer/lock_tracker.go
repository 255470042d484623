package steer

import (
	"fmt"

	"github.com/arthurkushman/go-hungarian"
	"github.com/google/uuid"
)

// MatchingAlgorithm is for algorithm type for matching detections to locks
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres) for optimal assignment
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmGreedy processes candidate pairs best score first for faster but potentially suboptimal assignment
	MatchingAlgorithmGreedy
)

// LockTracker keeps target locks alive across ticks by matching each tick's
// detections to existing locks. Matching is done in two stages by detection
// confidence: high-score detections are associated first, leftovers of the
// low-score band get a second chance against still-unmatched locks. Affinity
// is a hybrid of IoU against the lock's predicted box and center distance, so
// a lock can survive a tick where boxes no longer overlap.
type LockTracker struct {
	// Maximum number of ticks a lock can stay unmatched before it is dropped
	maxNoMatch int
	// Minimum affinity score for a pair to be accepted as a match
	minScore float64
	// High detection confidence threshold
	highThresh float64
	// Low detection confidence threshold
	lowThresh float64
	// Algorithm to use for matching
	algorithm MatchingAlgorithm
	// Constructor for locks spawned from unmatched high confidence detections
	newLock LockFactory
	// Main storage
	Locks map[uuid.UUID]TargetLock
}

// NewLockTrackerDefault creates a LockTracker with default parameters and CenterLock factory
func NewLockTrackerDefault() *LockTracker {
	return &LockTracker{
		maxNoMatch: 5,
		minScore:   0.3,
		highThresh: 0.5,
		lowThresh:  0.3,
		algorithm:  MatchingAlgorithmHungarian,
		newLock: func(detection BoundingBox) TargetLock {
			return NewCenterLock(detection)
		},
		Locks: make(map[uuid.UUID]TargetLock),
	}
}

// NewLockTracker creates a new instance of LockTracker with specified parameters
func NewLockTracker(maxNoMatch int, minScore, highThresh, lowThresh float64, algorithm MatchingAlgorithm, factory LockFactory) *LockTracker {
	return &LockTracker{
		maxNoMatch: maxNoMatch,
		minScore:   minScore,
		highThresh: highThresh,
		lowThresh:  lowThresh,
		algorithm:  algorithm,
		newLock:    factory,
		Locks:      make(map[uuid.UUID]TargetLock),
	}
}

// lockPair is a helper struct to pair lock ID with its predicted bounding box
type lockPair struct {
	ID   uuid.UUID
	BBox BoundingBox
}

// MatchDetections matches detections of the current tick with existing locks.
// Unmatched high confidence detections spawn new locks, locks unmatched for
// more than maxNoMatch ticks are dropped.
func (tracker *LockTracker) MatchDetections(detections []BoundingBox) error {
	// Advance every lock's Kalman filter and mark it unmatched for this tick
	for _, lock := range tracker.Locks {
		lock.Deactivate()
		lock.PredictNextPosition()
	}

	// Collect locks still eligible for matching
	activeLockPairs := make([]lockPair, 0, len(tracker.Locks))
	for id, lock := range tracker.Locks {
		if lock.GetNoMatchTimes() < tracker.maxNoMatch {
			activeLockPairs = append(activeLockPairs, lockPair{
				ID:   id,
				BBox: lock.GetPredictedBBox(),
			})
		}
	}

	matchedLocks := make(map[uuid.UUID]struct{})
	matchedDetections := make(map[int]struct{})

	// 1. First stage: match high confidence detections
	highDetectionIndices := make([]int, 0)
	for i := range detections {
		if detections[i].Score >= tracker.highThresh {
			highDetectionIndices = append(highDetectionIndices, i)
		}
	}
	if len(activeLockPairs) > 0 && len(highDetectionIndices) > 0 {
		scoreMatrix := tracker.createScoreMatrix(activeLockPairs, highDetectionIndices, detections)
		matches := tracker.performMatching(scoreMatrix, activeLockPairs, highDetectionIndices)
		err := tracker.processMatches(matches, activeLockPairs, highDetectionIndices, scoreMatrix, detections, matchedLocks, matchedDetections)
		if err != nil {
			return fmt.Errorf("error processing matches in stage 1: %w", err)
		}
	}

	// 2. Second stage: match low confidence detections with remaining locks
	unmatchedLockPairs := make([]lockPair, 0)
	for _, pair := range activeLockPairs {
		if _, found := matchedLocks[pair.ID]; !found {
			unmatchedLockPairs = append(unmatchedLockPairs, pair)
		}
	}
	lowDetectionIndices := make([]int, 0)
	for i := range detections {
		if _, found := matchedDetections[i]; found {
			continue
		}
		if detections[i].Score < tracker.highThresh && detections[i].Score >= tracker.lowThresh {
			lowDetectionIndices = append(lowDetectionIndices, i)
		}
	}
	if len(unmatchedLockPairs) > 0 && len(lowDetectionIndices) > 0 {
		scoreMatrix := tracker.createScoreMatrix(unmatchedLockPairs, lowDetectionIndices, detections)
		matches := tracker.performMatching(scoreMatrix, unmatchedLockPairs, lowDetectionIndices)
		err := tracker.processMatches(matches, unmatchedLockPairs, lowDetectionIndices, scoreMatrix, detections, matchedLocks, matchedDetections)
		if err != nil {
			return fmt.Errorf("error processing matches in stage 2: %w", err)
		}
	}

	// 3. Spawn new locks for unmatched high confidence detections
	for _, detIdx := range highDetectionIndices {
		if _, found := matchedDetections[detIdx]; !found {
			newLock := tracker.newLock(detections[detIdx])
			newLock.Activate()
			tracker.Locks[newLock.GetID()] = newLock
		}
	}

	// 4. Increment no match counter for unmatched locks
	for id, lock := range tracker.Locks {
		if _, found := matchedLocks[id]; !found {
			lock.IncNoMatch()
		}
	}

	// 5. Remove locks that stayed unmatched for too long
	for id, lock := range tracker.Locks {
		if lock.GetNoMatchTimes() >= tracker.maxNoMatch {
			delete(tracker.Locks, id)
		}
	}

	return nil
}

// GetActiveLocks returns a slice of locks still considered alive
func (tracker *LockTracker) GetActiveLocks() []TargetLock {
	activeLocks := make([]TargetLock, 0, len(tracker.Locks))
	for _, lock := range tracker.Locks {
		if lock.GetNoMatchTimes() < tracker.maxNoMatch {
			activeLocks = append(activeLocks, lock)
		}
	}
	return activeLocks
}

// GetLock returns lock by its identifier
func (tracker *LockTracker) GetLock(id uuid.UUID) (TargetLock, bool) {
	lock, ok := tracker.Locks[id]
	return lock, ok
}

// NearestActiveLock returns the alive lock whose center is closest to the given point
func (tracker *LockTracker) NearestActiveLock(p Point) (TargetLock, bool) {
	var nearest TargetLock
	minDistance := -1.0
	for _, lock := range tracker.Locks {
		if lock.GetNoMatchTimes() >= tracker.maxNoMatch {
			continue
		}
		dist := lock.DistanceTo(p)
		if minDistance < 0 || dist < minDistance {
			minDistance = dist
			nearest = lock
		}
	}
	return nearest, nearest != nil
}

// createScoreMatrix is helper function to build the affinity matrix.
// Rows are locks of the current stage, columns are detections of the stage.
// Score favors IoU with the predicted box when boxes overlap and falls back
// to a center-distance similarity when they do not.
func (tracker *LockTracker) createScoreMatrix(
	lockPairs []lockPair,
	detectionIndices []int,
	allDetections []BoundingBox,
) [][]float64 {
	scoreMatrix := make([][]float64, len(lockPairs))
	for i, pair := range lockPairs {
		row := make([]float64, len(detectionIndices))
		for j, detIdx := range detectionIndices {
			detection := allDetections[detIdx]
			iouValue := IoU(pair.BBox, detection)

			distance := euclideanDistance(pair.BBox.Center(), detection.Center())
			// Convert to 0-1 similarity
			distanceScore := 1.0 / (1.0 + distance*0.01)

			if iouValue > 0.05 {
				row[j] = iouValue*0.8 + distanceScore*0.2
			} else {
				// Lower weight for pure distance matching
				row[j] = distanceScore * 0.5
			}
		}
		scoreMatrix[i] = row
	}
	return scoreMatrix
}

// performMatching is helper function to perform matching using Hungarian or greedy algorithm.
// Returns a slice of [2]int, where each element is {lockIndexInLockPairs, detectionIndexInDetectionIndices}.
func (tracker *LockTracker) performMatching(
	scoreMatrix [][]float64,
	lockPairs []lockPair,
	detectionIndices []int,
) [][2]int {
	switch tracker.algorithm {
	case MatchingAlgorithmHungarian:
		numLocks := len(lockPairs)
		numDetections := len(detectionIndices)
		if numLocks == 0 || numDetections == 0 {
			return [][2]int{}
		}

		var paddedMatrix [][]float64
		if numLocks == numDetections {
			// Square matrix - use as is
			paddedMatrix = scoreMatrix
		} else {
			// Rectangular matrix - pad with zero scores to make it square
			paddedSize := maxInt(numLocks, numDetections)
			paddedMatrix = make([][]float64, paddedSize)
			for i := 0; i < paddedSize; i++ {
				paddedMatrix[i] = make([]float64, paddedSize)
			}
			for i := 0; i < numLocks; i++ {
				copy(paddedMatrix[i], scoreMatrix[i])
			}
		}
		assignmentsMap := hungarian.SolveMax(paddedMatrix)
		// Convert map[int]map[int]float64 to [][2]int
		matches := make([][2]int, 0)
		for lockIndex, rowMap := range assignmentsMap {
			for detectionIndex := range rowMap {
				// Assignments landing in the padded area are dummies
				if lockIndex < numLocks && detectionIndex < numDetections {
					matches = append(matches, [2]int{lockIndex, detectionIndex})
				}
				break
			}
		}
		return matches
	case MatchingAlgorithmGreedy:
		return tracker.performGreedyMatching(scoreMatrix, lockPairs, detectionIndices)
	default:
		return tracker.performGreedyMatching(scoreMatrix, lockPairs, detectionIndices)
	}
}

// performGreedyMatching accepts candidate pairs best score first.
// Priority queue guarantees that each lock and each detection is claimed by
// the highest-scoring pair mentioning it.
func (tracker *LockTracker) performGreedyMatching(
	scoreMatrix [][]float64,
	lockPairs []lockPair,
	detectionIndices []int,
) [][2]int {
	matches := make([][2]int, 0)
	if len(lockPairs) == 0 || len(detectionIndices) == 0 {
		return matches
	}

	priorityQueue := make(scoreHeap, 0, len(lockPairs)*len(detectionIndices))
	for i := range lockPairs {
		for j := range detectionIndices {
			if scoreMatrix[i][j] < tracker.minScore {
				continue
			}
			priorityQueue.Push(&scoredPair{
				lockIdx: i,
				detIdx:  j,
				score:   scoreMatrix[i][j],
			})
		}
	}

	reservedLocks := make(map[int]struct{})
	reservedDetections := make(map[int]struct{})
	for priorityQueue.Len() > 0 {
		pair := priorityQueue.Pop()
		if _, found := reservedLocks[pair.lockIdx]; found {
			continue
		}
		if _, found := reservedDetections[pair.detIdx]; found {
			continue
		}
		matches = append(matches, [2]int{pair.lockIdx, pair.detIdx})
		reservedLocks[pair.lockIdx] = struct{}{}
		reservedDetections[pair.detIdx] = struct{}{}
	}
	return matches
}

// processMatches updates locks and marks matched entities.
func (tracker *LockTracker) processMatches(
	matches [][2]int,
	lockPairs []lockPair,
	detectionIndices []int,
	scoreMatrix [][]float64,
	allDetections []BoundingBox,
	matchedLocks map[uuid.UUID]struct{},
	matchedDetections map[int]struct{},
) error {
	for _, match := range matches {
		lockIdxInStage := match[0]
		detIdxInStage := match[1]
		scoreVal := scoreMatrix[lockIdxInStage][detIdxInStage]
		if scoreVal < tracker.minScore {
			continue
		}
		lockID := lockPairs[lockIdxInStage].ID
		originalDetIdx := detectionIndices[detIdxInStage]
		if lock, ok := tracker.Locks[lockID]; ok {
			err := lock.Update(allDetections[originalDetIdx])
			if err != nil {
				return fmt.Errorf("failed to update lock %s: %w", lockID, err)
			}
			lock.ResetNoMatch()
			matchedLocks[lockID] = struct{}{}
			matchedDetections[originalDetIdx] = struct{}{}
		}
	}
	return nil
}
