package component

import "github.com/milk9111/stickclash/common"

// CombatResolver performs hitbox/hurtbox overlap tests between fighters.
// It does not de-duplicate hits across ticks: an overlap that persists keeps
// reporting, and the attack's own state timing bounds the hit count.
type CombatResolver struct {
	frame int
	// Recent collisions recorded during Resolve, used for debug highlighting.
	Recent []CollisionRecord
}

// CollisionRecord stores a recent collision pair for debug highlighting.
type CollisionRecord struct {
	Hit        common.Rect
	Hurt       common.Rect
	FramesLeft int
}

const highlightFrames = 6

// NewCombatResolver creates a resolver instance.
func NewCombatResolver() *CombatResolver {
	return &CombatResolver{}
}

// Tick advances the frame counter and expires old highlight records.
// Call once per game frame.
func (r *CombatResolver) Tick() {
	if r == nil {
		return
	}
	r.frame++
	out := r.Recent[:0]
	for _, rec := range r.Recent {
		rec.FramesLeft--
		if rec.FramesLeft > 0 {
			out = append(out, rec)
		}
	}
	r.Recent = out
}

// Frame returns the number of ticks resolved so far.
func (r *CombatResolver) Frame() int {
	if r == nil {
		return 0
	}
	return r.frame
}

// Resolve reports the first overlapping hitbox/hurtbox pair between dealer and
// target. Boxes sharing an owner never collide.
func (r *CombatResolver) Resolve(dealer DamageDealerComponent, target HurtboxComponent) (CollisionRecord, bool) {
	if r == nil || dealer == nil || target == nil {
		return CollisionRecord{}, false
	}

	dealing := dealer.ActiveHitboxes()
	receiving := target.Hurtboxes()
	if len(dealing) == 0 || len(receiving) == 0 {
		return CollisionRecord{}, false
	}

	for _, hb := range dealing {
		for _, hu := range receiving {
			if hb.OwnerID == hu.OwnerID {
				continue
			}
			if !hb.Rect.Intersects(hu.Rect) {
				continue
			}
			rec := CollisionRecord{Hit: hb.Rect, Hurt: hu.Rect, FramesLeft: highlightFrames}
			r.Recent = append(r.Recent, rec)
			return rec, true
		}
	}
	return CollisionRecord{}, false
}
