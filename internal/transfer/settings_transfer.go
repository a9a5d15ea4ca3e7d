package transfer

type SettingsUpdate struct {
	Name             string `json:"name"`
	Bio              string `json:"bio"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}
