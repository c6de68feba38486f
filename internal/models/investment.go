package models

// Investment links a portfolio to an asset it holds or has held. The
// referenced portfolio and asset must outlive the investment: both are
// protected from deletion while the investment exists. The investment in
// turn owns its transaction history, which is removed with it.
type Investment struct {
	Base
	PortfolioID string `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	AssetID     string `gorm:"type:uuid;not null;index" json:"asset_id"`

	Portfolio    Portfolio     `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
	Asset        Asset         `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:InvestmentID" json:"transactions,omitempty"`
}
