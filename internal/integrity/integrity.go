// Package integrity verifies and repairs the dense-ordering invariant: in
// every container the live positions must be exactly {0..N-1}.
package integrity

import (
	"fmt"
	"sort"

	"github.com/oriente/oriente/internal/models"
	"gorm.io/gorm"
)

// Issue describes one container whose position sequence is not dense.
type Issue struct {
	Entity      string // "column" or "card"
	ContainerID uint   // project for columns, column for cards
	Positions   []int  // sorted live positions as found
}

func (i Issue) String() string {
	return fmt.Sprintf("%s container %d: positions %v", i.Entity, i.ContainerID, i.Positions)
}

// Check scans every project's columns and every column's live cards and
// reports containers with gaps or duplicate positions.
func Check(db *gorm.DB) ([]Issue, error) {
	var issues []Issue

	var projects []models.Project
	if err := db.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("integrity: load projects: %w", err)
	}

	for _, p := range projects {
		var cols []models.Column
		if err := db.Where("project_id = ?", p.ID).Order("position ASC").Find(&cols).Error; err != nil {
			return nil, fmt.Errorf("integrity: load columns of project %d: %w", p.ID, err)
		}

		positions := make([]int, 0, len(cols))
		for _, c := range cols {
			positions = append(positions, c.Position)
		}
		if !dense(positions) {
			issues = append(issues, Issue{Entity: "column", ContainerID: p.ID, Positions: positions})
		}

		for _, col := range cols {
			var cards []models.Card
			err := db.Where("column_id = ? AND status <> ?", col.ID, models.CardStatusDeleted).
				Order("position ASC").Find(&cards).Error
			if err != nil {
				return nil, fmt.Errorf("integrity: load cards of column %d: %w", col.ID, err)
			}
			cardPositions := make([]int, 0, len(cards))
			for _, c := range cards {
				cardPositions = append(cardPositions, c.Position)
			}
			if !dense(cardPositions) {
				issues = append(issues, Issue{Entity: "card", ContainerID: col.ID, Positions: cardPositions})
			}
		}
	}

	return issues, nil
}

// Repair renumbers every broken container found by Check, keeping the
// current order (position, then id, so duplicates resolve stably).
// Returns the number of containers repaired.
func Repair(db *gorm.DB) (int, error) {
	issues, err := Check(db)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, issue := range issues {
		err := db.Transaction(func(tx *gorm.DB) error {
			switch issue.Entity {
			case "column":
				var cols []models.Column
				if err := tx.Where("project_id = ?", issue.ContainerID).
					Order("position ASC, id ASC").Find(&cols).Error; err != nil {
					return fmt.Errorf("integrity: reload columns of project %d: %w", issue.ContainerID, err)
				}
				for i, c := range cols {
					if c.Position == i {
						continue
					}
					if err := tx.Model(&models.Column{}).Where("id = ?", c.ID).
						UpdateColumn("position", i).Error; err != nil {
						return fmt.Errorf("integrity: renumber column %d: %w", c.ID, err)
					}
				}
			case "card":
				var cards []models.Card
				err := tx.Where("column_id = ? AND status <> ?", issue.ContainerID, models.CardStatusDeleted).
					Order("position ASC, id ASC").Find(&cards).Error
				if err != nil {
					return fmt.Errorf("integrity: reload cards of column %d: %w", issue.ContainerID, err)
				}
				for i, c := range cards {
					if c.Position == i {
						continue
					}
					if err := tx.Model(&models.Card{}).Where("id = ?", c.ID).
						UpdateColumn("position", i).Error; err != nil {
						return fmt.Errorf("integrity: renumber card %d: %w", c.ID, err)
					}
				}
			}
			return nil
		})
		if err != nil {
			return repaired, err
		}
		repaired++
	}

	return repaired, nil
}

// dense reports whether positions are exactly {0..N-1}. Input may be in
// any order.
func dense(positions []int) bool {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i {
			return false
		}
	}
	return true
}
