// Package focus implements the focus-context stack: an ordered set of input
// scopes with activation callbacks, barrier contexts, help aggregation and
// reclamation of contexts whose backing element went away.
package focus

import (
	"errors"
	"fmt"

	"focusnav/internal/input"
)

// Context is one input scope on the stack. Identity is the value itself,
// so implementations should be pointers.
type Context interface {
	Name() string
	// CapturesAllInput marks a barrier: keys and help stop here
	CapturesAllInput() bool
	HelpEntries() []input.HelpEntry
	Tick(now uint64)
	HandleKey(k input.Key) bool
	OnActivate() error
	OnDeactivate() error
}

// Backed is implemented by contexts tied to an external element. A context
// whose element is no longer active is removed by the stale sweep.
type Backed interface {
	Backing() any
	Active() bool
}

// SelfManaged is implemented by contexts that pop themselves and must not
// be swept
type SelfManaged interface {
	ManagesOwnLifecycle() bool
}

// ErrActivation is wrapped by every error returned for a failed activation
var ErrActivation = errors.New("context activation failed")

// PanicError carries a panic recovered from a context callback
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Baseline is the bottom context the host keeps on the stack. It handles
// nothing and contributes fixed help entries.
type Baseline struct {
	name string
	help []input.HelpEntry
}

// NewBaseline creates a baseline context
func NewBaseline(name string, help ...input.HelpEntry) *Baseline {
	return &Baseline{name: name, help: help}
}

func (b *Baseline) Name() string                   { return b.name }
func (b *Baseline) CapturesAllInput() bool         { return false }
func (b *Baseline) HelpEntries() []input.HelpEntry { return b.help }
func (b *Baseline) Tick(uint64)                    {}
func (b *Baseline) HandleKey(input.Key) bool       { return false }
func (b *Baseline) OnActivate() error              { return nil }
func (b *Baseline) OnDeactivate() error            { return nil }
