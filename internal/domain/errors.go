package domain

import "errors"

// ErrEmptyTask is returned when a task has no orders or no available
// machines. Behavior of the core on such input is undefined by the
// spec; callers must reject it before invoking the engine.
var ErrEmptyTask = errors.New("packplan: task has no orders or no available machines")

// ErrUnknownReference is fatal: an assignment referenced an order or
// machine id the task does not contain. It indicates an internal
// consistency violation in a search operator, never a property of
// caller input, and must never be retried.
var ErrUnknownReference = errors.New("packplan: assignment references an unknown order or machine id")
