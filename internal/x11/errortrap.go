package x11

// ErrorTrap suppresses X error reporting on a Display for the duration of
// a risky request sequence and records the first error seen. LastError
// disarms the trap and must be called on every exit path, early returns
// included, so a stale trap never swallows later errors.
type ErrorTrap interface {
	// LastError disarms the trap and reports the first X error recorded
	// while it was armed, or nil.
	LastError() error
}

type errorTrap struct {
	d   *Display
	err error
}

// TrapErrors arms an error trap on the display. Traps do not nest:
// arming a second trap before the first is disarmed is a programming
// error.
func (d *Display) TrapErrors() ErrorTrap {
	if d.trap != nil {
		panic("x11: error trap already armed")
	}
	t := &errorTrap{d: d}
	d.trap = t
	return t
}

func (t *errorTrap) record(err error) {
	if t.err == nil {
		t.err = err
	}
}

func (t *errorTrap) LastError() error {
	if t.d != nil {
		t.d.trap = nil
		t.d = nil
	}
	return t.err
}
