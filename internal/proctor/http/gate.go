package http

// violationGate enforces one-shot reporting for a single proctoring
// connection: the first violation since connect (or since the last reset)
// reaches the warning counter, everything after is suppressed until the
// client resets. The connection's read loop is the only caller, so no
// locking is needed.
type violationGate struct {
	armed bool
}

func newViolationGate() *violationGate {
	return &violationGate{armed: true}
}

// Fire reports whether this violation should reach the counter, disarming
// the gate when it does.
func (g *violationGate) Fire() bool {
	if !g.armed {
		return false
	}
	g.armed = false
	return true
}

// Reset re-arms the gate. Sent by the client when the violation modal is
// acknowledged or the quiz restarts.
func (g *violationGate) Reset() {
	g.armed = true
}
