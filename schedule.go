// Package trvsched implements the simple daily heating schedules of a
// thermostatic radiator valve: a fixed set of slots, each persisted as
// one byte of wear-limited non-volatile storage, queried by the control
// loop to decide heating setbacks.
package trvsched

import "errors"

// Errors returned by Engine.Set.
var (
	ErrInvalidSlot = errors.New("invalid schedule slot")
	ErrInvalidTime = errors.New("on time out of range")
)

// A ForcedState pins every schedule predicate to a fixed answer,
// bypassing the store entirely. Meant for deterministic deployment
// tests.
type ForcedState uint8

// Available ForcedState values.
const (
	ForcedOff ForcedState = iota
	ForcedSoon
	ForcedNow
)

// An Option tweaks an Engine at construction time.
type Option func(*Engine)

// WithForcedState makes AnySet, AnyWarmNow and AnyWarmSoon answer
// according to state instead of scanning the store.
func WithForcedState(state ForcedState) Option {
	return func(e *Engine) { e.forced = &state }
}

// WithGuard replaces the default mutex guard around store accesses.
func WithGuard(g Guard) Option {
	return func(e *Engine) { e.guard = g }
}

// Engine answers schedule set/clear/query calls for a fixed set of
// daily WARM schedules. Each slot stores its on time as a single byte,
// compressed to the configured granularity; the erased byte value
// means the slot is not set.
type Engine struct {
	params Params
	store  ByteStore
	guard  Guard
	clock  Clock
	policy BiasPolicy
	forced *ForcedState

	// Largest valid compressed on time; anything above it reads as
	// unset, including the erased byte.
	maxCompressed byte

	prewarm    int
	preprewarm int
}

// New builds an Engine over store. params is normalized and validated
// first. A nil clock means the system local clock, a nil policy a
// permanently neutral bias.
func New(params Params, store ByteStore, clock Clock, policy BiasPolicy, opts ...Option) (*Engine, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = LocalClock{}
	}
	if policy == nil {
		policy = FixedBias(BiasNeutral)
	}

	// The pre-warm lead-in scales with the configured base (eco) on
	// period but never drops below half an hour, which may already be
	// barely enough for a very cold room on a poor heating system.
	prewarm := params.GranularityMins + params.EcoOnPeriodMins/2
	if prewarm < 30 {
		prewarm = 30
	}

	e := &Engine{
		params:        params,
		store:         store,
		guard:         &MutexGuard{},
		clock:         clock,
		policy:        policy,
		maxCompressed: byte(MinsPerDay/params.GranularityMins - 1),
		prewarm:       prewarm,
		preprewarm:    3 * (prewarm / 2),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// PrewarmMins returns the pre-warm lead-in applied before each
// scheduled on time.
func (e *Engine) PrewarmMins() int { return e.prewarm }

// PreprewarmMins returns the forward-look horizon of AnyWarmSoon,
// about one and a half times the pre-warm lead-in so that a deeply
// set-back room can be brought up in time.
func (e *Engine) PreprewarmMins() int { return e.preprewarm }

// onPeriod returns the current scheduled WARM period length in
// minutes. When the eco and comfort periods differ it is split three
// ways on the warmth bias, for a gentle change in behaviour along the
// dial rather than a single jump.
func (e *Engine) onPeriod() int {
	eco, comfort := e.params.EcoOnPeriodMins, e.params.ComfortOnPeriodMins
	if eco == comfort {
		return eco
	}
	switch e.policy.CurrentBias() {
	case BiasEco:
		return eco
	case BiasComfort:
		return comfort
	default:
		return (eco + comfort) / 2
	}
}

func (e *Engine) slotAddr(slot int) uint16 {
	return e.params.BaseAddr + uint16(slot)
}

// OnTime returns the effective on time of the given slot, already
// wound back by the pre-warm lead-in (wrapping at midnight), or
// ok=false when the slot is out of range or not set.
func (e *Engine) OnTime(slot int) (on MinuteOfDay, ok bool) {
	if slot < 0 || slot >= e.params.MaxSchedules {
		return 0, false
	}

	var b byte
	e.guard.Do(func() { b = e.store.ReadByte(e.slotAddr(slot)) })
	if b > e.maxCompressed {
		return 0, false // erased, schedule not set
	}

	start := int(b) * e.params.GranularityMins
	if e.prewarm > start {
		start += MinsPerDay // wrap-around at midnight
	}
	start -= e.prewarm
	return MinuteOfDay(start), true
}

// OffTime returns the off time of the given slot, or ok=false when the
// slot is out of range or not set. Relative to the on time reported by
// OnTime the pre-warm lead-in is added back, so the WARM window as
// seen from the stored on time is exactly one on period long.
func (e *Engine) OffTime(slot int) (off MinuteOfDay, ok bool) {
	on, ok := e.OnTime(slot)
	if !ok {
		return 0, false
	}

	end := int(on) + e.prewarm + e.onPeriod()
	if end >= MinsPerDay {
		end -= MinsPerDay // wrap-around at midnight
	}
	return MinuteOfDay(end), true
}

// Set programs the slot to come on at start, rounded down to the
// schedule granularity. On failure nothing is written. Each accepted
// change may cost a non-volatile write cycle, so over-frequent
// reprogramming should be avoided.
func (e *Engine) Set(slot int, start MinuteOfDay) error {
	if slot < 0 || slot >= e.params.MaxSchedules {
		return ErrInvalidSlot
	}
	if !start.Valid() {
		return ErrInvalidTime
	}

	b := byte(int(start) / e.params.GranularityMins)
	e.guard.Do(func() { e.store.UpdateByte(e.slotAddr(slot), b) })
	return nil
}

// Clear unsets the slot, so it produces neither on nor off events.
// Out-of-range slots are ignored.
func (e *Engine) Clear(slot int) {
	if slot < 0 || slot >= e.params.MaxSchedules {
		return
	}
	e.guard.Do(func() { e.store.EraseByte(e.slotAddr(slot)) })
}

// AnySet tells whether at least one slot is programmed. The whole scan
// runs under a single guard acquisition for a consistent snapshot.
func (e *Engine) AnySet() bool {
	if e.forced != nil {
		return *e.forced != ForcedOff
	}

	any := false
	e.guard.Do(func() {
		for slot := 0; slot < e.params.MaxSchedules; slot++ {
			if e.store.ReadByte(e.slotAddr(slot)) <= e.maxCompressed {
				any = true
				break
			}
		}
	})
	return any
}

// warmAt reports whether probe falls inside some slot's WARM window
// [on,off), coping with windows spanning midnight.
func (e *Engine) warmAt(probe MinuteOfDay) bool {
	mm := int(probe)
	for slot := 0; slot < e.params.MaxSchedules; slot++ {
		on, ok := e.OnTime(slot)
		if !ok || mm < int(on) {
			continue
		}
		off, _ := e.OffTime(slot)
		end := int(off)
		if end < int(on) {
			end += MinsPerDay // schedule wraps around midnight
		}
		if mm < end {
			return true
		}
	}
	return false
}

// AnyWarmNow reports whether any schedule's WARM window is open right
// now, even when schedules overlap. Can be used to suppress setbacks
// during on times.
func (e *Engine) AnyWarmNow() bool {
	if e.forced != nil {
		return *e.forced == ForcedNow
	}
	return e.warmAt(e.clock.MinutesSinceMidnight())
}

// AnyWarmSoon reports whether some schedule's WARM window will have
// opened PreprewarmMins from now, even when schedules overlap. Can be
// used to lift a room out of a deep setback early enough to reach the
// WARM target on time.
func (e *Engine) AnyWarmSoon() bool {
	if e.forced != nil {
		return *e.forced == ForcedSoon
	}

	probe := int(e.clock.MinutesSinceMidnight()) + e.preprewarm
	if probe >= MinsPerDay {
		probe -= MinsPerDay
	}
	return e.warmAt(MinuteOfDay(probe))
}
