package state

import "strings"

// SetDistanceBand clamps idx into [0, len(DistanceBands)-1] and stores it.
// It returns the stored index.
func (s *Store) SetDistanceBand(idx int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distanceBandIndex = clamp(idx, 0, len(DistanceBands)-1)
	return s.distanceBandIndex
}

// DistanceBand returns the label of the current distance band.
func (s *Store) DistanceBand() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DistanceBands[s.distanceBandIndex]
}

// DistanceBandByLabel resolves a band label, ignoring case.
func DistanceBandByLabel(label string) (int, bool) {
	for i, band := range DistanceBands {
		if strings.EqualFold(band, strings.TrimSpace(label)) {
			return i, true
		}
	}
	return 0, false
}

// SetNavTargetIndex stores max(0, idx) and returns it.
func (s *Store) SetNavTargetIndex(idx int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navTargetIndex = max(0, idx)
	return s.navTargetIndex
}

// NavTargetIndex returns the nav target knob.
func (s *Store) NavTargetIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navTargetIndex
}

// SetNavEpoch stores max(0, epoch) and returns it.
func (s *Store) SetNavEpoch(epoch int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navEpoch = max(0, epoch)
	return s.navEpoch
}

// NavEpoch returns the nav epoch knob.
func (s *Store) NavEpoch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navEpoch
}

// SetQuestID stores max(0, id) and returns it.
func (s *Store) SetQuestID(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questID = max(0, id)
	return s.questID
}

// QuestID returns the quest id knob.
func (s *Store) QuestID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questID
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
