// Package ordering maintains dense, zero-based position sequences over
// sibling rows that share a container (a project's columns, a column's
// cards). All shifts are applied as single batch updates so rows outside
// the affected window are never written.
package ordering

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrPositionOutOfRange reports a position argument outside the container's
// valid range. The shift primitives assume bounds already hold; validation
// belongs to the service calling them.
var ErrPositionOutOfRange = errors.New("ordering: position out of range")

// Scope identifies one dense sibling group: rows of Model whose
// ContainerKey column equals ContainerID. Live optionally narrows the group
// to the rows that occupy position slots (cards exclude soft-deleted rows).
type Scope struct {
	Model        interface{}
	ContainerKey string
	ContainerID  uint
	Live         func(tx *gorm.DB) *gorm.DB
}

func (s Scope) query(db *gorm.DB) *gorm.DB {
	q := db.Model(s.Model).Where(s.ContainerKey+" = ?", s.ContainerID)
	if s.Live != nil {
		q = s.Live(q)
	}
	return q
}

// Count returns the number of live rows in the scope.
func Count(db *gorm.DB, s Scope) (int, error) {
	var n int64
	if err := s.query(db).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("ordering: count %s=%d: %w", s.ContainerKey, s.ContainerID, err)
	}
	return int(n), nil
}

// OpenGap shifts every row with position >= pos up by one, making room for
// an insert at pos. UpdateColumn keeps updated_at untouched on shifted rows.
func OpenGap(db *gorm.DB, s Scope, pos int) error {
	err := s.query(db).
		Where("position >= ?", pos).
		UpdateColumn("position", gorm.Expr("position + 1")).Error
	if err != nil {
		return fmt.Errorf("ordering: open gap at %d in %s=%d: %w", pos, s.ContainerKey, s.ContainerID, err)
	}
	return nil
}

// CloseGap shifts every row with position > pos down by one, closing the
// hole left by removing the row at pos. The caller is responsible for
// actually removing that row (or excluding it from the scope's Live filter)
// before the sequence is read again.
func CloseGap(db *gorm.DB, s Scope, pos int) error {
	err := s.query(db).
		Where("position > ?", pos).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
	if err != nil {
		return fmt.Errorf("ordering: close gap at %d in %s=%d: %w", pos, s.ContainerKey, s.ContainerID, err)
	}
	return nil
}

// ShiftWithin slides the rows between oldPos and newPos to make room for a
// move inside the same scope. Only rows in the closed window between the
// two positions are touched; the moved row itself is written by the caller.
// No-op when oldPos == newPos.
func ShiftWithin(db *gorm.DB, s Scope, oldPos, newPos int) error {
	var err error
	switch {
	case oldPos == newPos:
		return nil
	case oldPos < newPos:
		// Moving forward: (oldPos, newPos] slides down one.
		err = s.query(db).
			Where("position > ? AND position <= ?", oldPos, newPos).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	default:
		// Moving backward: [newPos, oldPos) slides up one.
		err = s.query(db).
			Where("position >= ? AND position < ?", newPos, oldPos).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
	}
	if err != nil {
		return fmt.Errorf("ordering: shift %d -> %d in %s=%d: %w", oldPos, newPos, s.ContainerKey, s.ContainerID, err)
	}
	return nil
}

// ValidateInsert checks an insert position against the scope's live count
// (0 <= pos <= count; pos == count appends) and returns the count.
func ValidateInsert(db *gorm.DB, s Scope, pos int) (int, error) {
	n, err := Count(db, s)
	if err != nil {
		return 0, err
	}
	if pos < 0 || pos > n {
		return n, fmt.Errorf("ordering: insert position %d outside [0, %d]: %w", pos, n, ErrPositionOutOfRange)
	}
	return n, nil
}

// ValidateMove checks a move target position (0 <= pos < count) and returns
// the count.
func ValidateMove(db *gorm.DB, s Scope, pos int) (int, error) {
	n, err := Count(db, s)
	if err != nil {
		return 0, err
	}
	if pos < 0 || pos >= n {
		return n, fmt.Errorf("ordering: move position %d outside [0, %d): %w", pos, n, ErrPositionOutOfRange)
	}
	return n, nil
}
