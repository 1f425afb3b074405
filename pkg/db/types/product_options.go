package types

import "github.com/jerseyforge/jerseyforge-backend/pkg/enums"

// Color is a named swatch offered on a product.
type Color struct {
	Name string `json:"name" validate:"required"`
	Hex  string `json:"hex" validate:"required,hexcolor"`
}

// CustomizationOptions describes which jersey personalizations a product
// supports.
type CustomizationOptions struct {
	AllowPlayerName    bool `json:"allowPlayerName"`
	AllowPlayerNumber  bool `json:"allowPlayerNumber"`
	AllowTeamLogo      bool `json:"allowTeamLogo"`
	AllowColorChange   bool `json:"allowColorChange"`
	AllowSizeSelection bool `json:"allowSizeSelection"`
}

// Customization carries the per-line personalization captured at add time.
type Customization struct {
	PlayerName          *string `json:"playerName,omitempty"`
	PlayerNumber        *string `json:"playerNumber,omitempty"`
	TeamLogo            *string `json:"teamLogo,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// SizeList is the ordered set of sizes a product ships in.
type SizeList []enums.Size
