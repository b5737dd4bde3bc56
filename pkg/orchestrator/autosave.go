package orchestrator

import "time"

// Start launches the periodic autosave loop. Calling Start on a running
// orchestrator is a no-op.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return
	}
	o.running = true
	o.autosaveStop = make(chan struct{})
	o.autosaveDone = make(chan struct{})
	go o.autosaveLoop(o.autosaveStop, o.autosaveDone)
}

// Stop halts the autosave loop and waits for it to drain. Safe to call on a
// stopped orchestrator.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.running = false
	stop, done := o.autosaveStop, o.autosaveDone
	o.mu.Unlock()

	if o.publishDebounce != nil {
		o.publishDebounce.Cancel()
	}
	close(stop)
	<-done
}

func (o *Orchestrator) autosaveLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(o.autosaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			o.Autosave()
		}
	}
}

// Autosave writes the current values to the store when there is anything to
// save. It is exported so callers can force a snapshot, for example before
// shutdown.
func (o *Orchestrator) Autosave() bool {
	values := o.Values()
	if len(values) == 0 {
		return false
	}
	if !o.store.Save(AutosaveKey, values, 0) {
		o.logger.Error("autosave failed", "key", AutosaveKey)
		return false
	}
	o.logger.Debug("autosaved", "fields", len(values))
	o.publish(EventAutosaved, FieldChange{})
	return true
}
