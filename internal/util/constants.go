package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
)

// Point awards, applied through user repository increments only.
const (
	PointsReportCreated  = 10
	PointsReportResolved = 20
)

// Badge awarded on quiz scores at or above BadgeThresholdPercent.
const (
	EcoExpertBadge        = "Eco Expert"
	EcoExpertDescription  = "Scored 90% or higher on an environmental quiz"
	BadgeThresholdPercent = 90
)
