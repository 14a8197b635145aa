package schedule

import (
	"log"
	"time"
)

// Coordinator owns the idle timer and the power-up spawn timer.
// At most one idle timer is live at any time.
type Coordinator struct {
	sched         *Scheduler
	idleDelay     time.Duration
	spawnInterval time.Duration
	onIdle        func(now time.Time)
	onSpawn       func(now time.Time)

	idle  Handle
	spawn Handle
}

// NewCoordinator wires the two callbacks to sched. Nothing is scheduled until
// ResetIdle or StartSpawning is called.
func NewCoordinator(sched *Scheduler, idleDelay, spawnInterval time.Duration, onIdle, onSpawn func(now time.Time)) *Coordinator {
	return &Coordinator{
		sched:         sched,
		idleDelay:     idleDelay,
		spawnInterval: spawnInterval,
		onIdle:        onIdle,
		onSpawn:       onSpawn,
	}
}

// ResetIdle cancels the pending idle timer and schedules a new one.
func (c *Coordinator) ResetIdle() {
	c.sched.Cancel(c.idle)
	c.idle = c.sched.After(c.idleDelay, func(now time.Time) {
		c.idle = 0
		c.onIdle(now)
	})
}

// IdlePending reports whether the idle timer is armed.
func (c *Coordinator) IdlePending() bool {
	return c.sched.Active(c.idle)
}

// StartSpawning starts the repeating spawn timer. Calling it while already
// spawning is a no-op.
func (c *Coordinator) StartSpawning() {
	if c.sched.Active(c.spawn) {
		return
	}
	c.spawn = c.sched.Every(c.spawnInterval, c.onSpawn)
}

// Spawning reports whether the spawn timer is running.
func (c *Coordinator) Spawning() bool {
	return c.sched.Active(c.spawn)
}

// StopSpawning cancels the spawn timer.
func (c *Coordinator) StopSpawning() {
	c.sched.Cancel(c.spawn)
	c.spawn = 0
}

// Stop cancels both timers.
func (c *Coordinator) Stop() {
	c.sched.Cancel(c.idle)
	c.idle = 0
	c.StopSpawning()
	log.Printf("Timers stopped")
}
