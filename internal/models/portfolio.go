package models

// DefaultPortfolioName is used when a portfolio is created without a name.
const DefaultPortfolioName = "Untitled"

// Portfolio is the top-level grouping of investments. Deleting a portfolio
// is blocked while it still owns investments; financial history never
// disappears because a container record was removed.
type Portfolio struct {
	Base
	Name string `gorm:"not null;default:'Untitled'" json:"name"`

	Investments []Investment `gorm:"foreignKey:PortfolioID" json:"investments,omitempty"`
}
