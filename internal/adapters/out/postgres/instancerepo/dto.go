// Package instancerepo persists the deployment-wide settings: the
// administrator identity and the request id counter. They live in a single
// row of instance_settings.
package instancerepo

// singletonID is the primary key of the only instance_settings row.
const singletonID = 1

// InstanceSettingsDTO is the single row of instance_settings.
type InstanceSettingsDTO struct {
	ID             int    `gorm:"primaryKey;autoIncrement:false"`
	AdminID        string `gorm:"not null"`
	RequestCounter uint64 `gorm:"not null;default:0"`
}

// TableName overrides GORM's default naming.
func (InstanceSettingsDTO) TableName() string {
	return "instance_settings"
}
