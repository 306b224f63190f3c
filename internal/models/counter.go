package models

// Allocator namespaces. Each namespace is an independent ID series.
const (
	NamespaceTools   = "tools"
	NamespaceReviews = "reviews"
)

// Counter holds the last issued sequence value for one namespace.
// Incremented with a single atomic upsert, never read-modify-write.
type Counter struct {
	Namespace string `gorm:"type:varchar(30);primaryKey" json:"namespace"`
	Seq       int64  `gorm:"not null" json:"seq"`
}
