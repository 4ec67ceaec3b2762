package shared

import "time"

// DropPoint represents a candidate downturn point flagged by the detector.
type DropPoint struct {
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
	Reasons    []Reason  `json:"reasons"`
	Confluence uint32    `json:"confluence"`
}

// NewDropPoint initializes a new drop point.
func NewDropPoint(date time.Time, price float64, reasons []Reason) DropPoint {
	return DropPoint{
		Date:       date,
		Price:      price,
		Reasons:    reasons,
		Confluence: uint32(len(reasons)),
	}
}

// ValidatedDrop represents a drop point classified against realized forward
// price movement.
type ValidatedDrop struct {
	DropPoint
	MinForwardPrice float64 `json:"minforwardprice"`
	PctChange       float64 `json:"pctchange"`
}
