package model

// AdminStats is the dashboard summary.
type AdminStats struct {
	Packages  int64 `json:"packages"`
	Media     int64 `json:"media"`
	Inquiries int64 `json:"inquiries"`
}

// SeedResult reports what a seeding run did.
type SeedResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *SeedCounts `json:"data,omitempty"`
}

// SeedCounts is the number of records inserted per collection.
type SeedCounts struct {
	Packages    int `json:"packages"`
	Media       int `json:"media"`
	Backgrounds int `json:"backgrounds"`
	Inquiries   int `json:"inquiries"`
}
