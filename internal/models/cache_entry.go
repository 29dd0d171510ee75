package models

// CacheEntry is one row of the local key/value cache. Keys are the settings
// field names plus the reserved version marker and legacy keys.
type CacheEntry struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
